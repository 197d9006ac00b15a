package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStringListValue(t *testing.T) {
	v, err := StringList(nil).Value()
	require.NoError(t, err)
	require.Equal(t, "[]", v)

	v, err = StringList{"Corte", "Unhas"}.Value()
	require.NoError(t, err)
	require.Equal(t, `["Corte","Unhas"]`, v)
}

func TestStringListScan(t *testing.T) {
	var s StringList

	require.NoError(t, s.Scan([]byte(`["Corte"]`)))
	require.Equal(t, StringList{"Corte"}, s)

	require.NoError(t, s.Scan(`null`))
	require.Equal(t, StringList{}, s)

	require.NoError(t, s.Scan(nil))
	require.Equal(t, StringList{}, s)

	require.Error(t, s.Scan(42))
}
