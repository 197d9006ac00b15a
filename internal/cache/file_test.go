package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/saloes-online/internal/domain/salon"
)

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "saloes.json")
	c := NewFileCache(path)

	list, found, err := c.Load(ctx)
	require.NoError(t, err)
	require.False(t, found)
	require.Nil(t, list)

	require.NoError(t, c.Save(ctx, salon.Samples()))

	list, found, err = c.Load(ctx)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, salon.Samples(), list)

	require.NoError(t, c.Clear(ctx))
	require.NoError(t, c.Clear(ctx))

	_, found, err = c.Load(ctx)
	require.NoError(t, err)
	require.False(t, found)
}

func TestFileCacheEmptyListIsFound(t *testing.T) {
	ctx := context.Background()
	c := NewFileCache(filepath.Join(t.TempDir(), "saloes.json"))

	require.NoError(t, c.Save(ctx, nil))

	list, found, err := c.Load(ctx)
	require.NoError(t, err)
	require.True(t, found)
	require.Empty(t, list)
}

func TestFileCacheReadsBrowserFormat(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "saloes.json")

	raw := `[{"id":"1700000000000","nome":"Studio X","endereco":"Rua A, 1","telefone":"111",` +
		`"siteUrl":"https://x.com","horarioFuncionamento":"Seg-Sex","ativo":false}]`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	list, found, err := NewFileCache(path).Load(ctx)
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, list, 1)
	require.Equal(t, "https://x.com", list[0].SiteURL)
	require.Equal(t, "Seg-Sex", list[0].HorarioFuncionamento)
	require.Equal(t, []string{}, list[0].Servicos)
	require.False(t, list[0].Ativo)
}

func TestFileCacheCorrupted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saloes.json")
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o644))

	_, _, err := NewFileCache(path).Load(context.Background())
	require.Error(t, err)
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(nil)

	_, found, _ := m.Load(ctx)
	require.False(t, found)

	require.NoError(t, m.Save(ctx, salon.Samples()[:1]))
	list, found, _ := m.Load(ctx)
	require.True(t, found)
	require.Len(t, list, 1)
}
