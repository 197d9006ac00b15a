package salon

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterActive(t *testing.T) {
	t.Parallel()

	list := Samples()
	list[1].Ativo = false

	active := FilterActive(list)
	require.Len(t, active, 2)
	for _, s := range active {
		require.NotEqual(t, "2", s.ID)
	}
}

func TestSearch(t *testing.T) {
	t.Parallel()

	list := Samples()

	tests := []struct {
		term string
		ids  []string
	}{
		{term: "", ids: []string{"1", "2", "3"}},
		{term: "paulista", ids: []string{"2"}},
		{term: "HAIR", ids: []string{"3"}},
		{term: "rua", ids: []string{"1", "3"}},
		{term: "inexistente", ids: []string{}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.term, func(t *testing.T) {
			t.Parallel()
			got := Search(list, tt.term)
			ids := make([]string, 0, len(got))
			for _, s := range got {
				ids = append(ids, s.ID)
			}
			require.Equal(t, tt.ids, ids)
		})
	}
}

func TestFind(t *testing.T) {
	t.Parallel()

	s, ok := Find(Samples(), "3")
	require.True(t, ok)
	require.Equal(t, "Hair & Style", s.Nome)

	_, ok = Find(Samples(), "99")
	require.False(t, ok)
}
