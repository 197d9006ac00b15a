package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/saloes-online/internal/cache"
	"github.com/BruksfildServices01/saloes-online/internal/domain/salon"
	"github.com/BruksfildServices01/saloes-online/internal/httperr"
	"github.com/BruksfildServices01/saloes-online/internal/infra/repository"
)

var errDown = errors.New("connection refused")

func studioX() salon.Input {
	return salon.Input{Nome: "Studio X", Endereco: "Rua A, 1", Telefone: "111"}
}

func ids(list []salon.Salon) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		out = append(out, s.ID)
	}
	return out
}

func TestRefreshWithoutRemote(t *testing.T) {
	ctx := context.Background()

	t.Run("first run uses samples", func(t *testing.T) {
		st := New(nil, cache.NewMemory(nil))
		require.NoError(t, st.Refresh(ctx))
		require.Equal(t, salon.Samples(), st.All())
		require.Equal(t, SourceSamples, st.Source())
		require.False(t, st.RemoteConfigured())
	})

	t.Run("uses last cache", func(t *testing.T) {
		cached := salon.Samples()[:1]
		st := New(nil, cache.NewMemory(cached))
		require.NoError(t, st.Refresh(ctx))
		require.Equal(t, cached, st.All())
		require.Equal(t, SourceCache, st.Source())
	})
}

func TestLocalWrites(t *testing.T) {
	ctx := context.Background()
	local := cache.NewMemory(nil)

	gen := []string{"1", "1", "novo"}
	st := New(nil, local, WithIDGenerator(func() string {
		id := gen[0]
		gen = gen[1:]
		return id
	}))
	require.NoError(t, st.Refresh(ctx))

	created, err := st.Add(ctx, studioX())
	require.NoError(t, err)
	require.Equal(t, "novo", created.ID, "id must not collide with existing ones")
	require.Equal(t, []string{}, created.Servicos)
	require.True(t, created.Ativo)

	got, ok := st.Get("novo")
	require.True(t, ok)
	require.Equal(t, "Studio X", got.Nome)
	require.Equal(t, "Rua A, 1", got.Endereco)
	require.Equal(t, "111", got.Telefone)

	// persistido imediatamente
	saved, found, err := local.Load(ctx)
	require.NoError(t, err)
	require.True(t, found)
	require.Contains(t, ids(saved), "novo")

	email := "x@studio.com"
	updated, err := st.Update(ctx, "novo", salon.Patch{Email: &email})
	require.NoError(t, err)
	require.Equal(t, email, updated.Email)
	require.Equal(t, "Studio X", updated.Nome)
	require.Equal(t, "Rua A, 1", updated.Endereco)

	toggled, err := st.ToggleActive(ctx, "novo")
	require.NoError(t, err)
	require.False(t, toggled.Ativo)
	require.NotContains(t, ids(st.Active()), "novo")
	require.Contains(t, ids(st.All()), "novo")
	require.Equal(t, []string{"novo"}, ids(st.Search("studio x", false)))
	require.Empty(t, st.Search("studio x", true))

	require.NoError(t, st.Delete(ctx, "novo"))
	require.NoError(t, st.Delete(ctx, "novo"))
	require.NotContains(t, ids(st.All()), "novo")

	_, err = st.Update(ctx, "novo", salon.Patch{Email: &email})
	require.ErrorIs(t, err, salon.ErrNotFound)
	require.Contains(t, st.LastError(), "não encontrado")

	_, err = st.ToggleActive(ctx, "novo")
	require.ErrorIs(t, err, salon.ErrNotFound)
}

func TestAddValidation(t *testing.T) {
	st := New(nil, cache.NewMemory(nil))
	require.NoError(t, st.Refresh(context.Background()))

	_, err := st.Add(context.Background(), salon.Input{Nome: "Sem endereço", Telefone: "1"})
	require.True(t, httperr.IsBusiness(err, "endereco_required"))
	require.Len(t, st.All(), 3)
	require.Equal(t, "Erro ao adicionar salão: endereço é obrigatório", st.LastError())
}

func TestRefreshFromRemote(t *testing.T) {
	ctx := context.Background()
	remote := repository.NewSalonMemoryRepository(salon.Samples()[2])
	local := cache.NewMemory(nil)
	mirror := cache.NewMemory(nil)

	st := New(remote, local, WithMirror(mirror))
	require.NoError(t, st.Refresh(ctx))

	require.Equal(t, []string{"3"}, ids(st.All()))
	require.Equal(t, SourceRemote, st.Source())

	mirrored, found, _ := mirror.Load(ctx)
	require.True(t, found)
	require.Equal(t, []string{"3"}, ids(mirrored))

	_, found, _ = local.Load(ctx)
	require.False(t, found, "remote list must not be written to the local cache")

	// remoto caiu: o espelho vem antes do cache local
	remote.SetErr(errDown)
	require.ErrorIs(t, st.Refresh(ctx), errDown)
	require.Equal(t, []string{"3"}, ids(st.All()))
	require.Equal(t, SourceCache, st.Source())
}

func TestRefreshKeepsLocalDataPendingMigration(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		remote []salon.Salon
	}{
		{name: "empty remote", remote: nil},
		{name: "remote with other records", remote: []salon.Salon{{ID: "r1", Nome: "Remoto", Endereco: "Rua R", Telefone: "9", Ativo: true}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			local := cache.NewMemory(salon.Samples())
			mirror := cache.NewMemory(nil)
			remote := repository.NewSalonMemoryRepository(tt.remote...)

			st := New(remote, local, WithMirror(mirror))
			require.NoError(t, st.Refresh(ctx))
			require.NoError(t, st.Refresh(ctx))
			require.Len(t, st.All(), len(tt.remote))

			pending, found, err := local.Load(ctx)
			require.NoError(t, err)
			require.True(t, found)
			require.Equal(t, salon.Samples(), pending)
		})
	}
}

func TestRefreshFallsBackWhenRemoteDown(t *testing.T) {
	ctx := context.Background()

	t.Run("last cached list", func(t *testing.T) {
		remote := repository.NewSalonMemoryRepository()
		remote.SetErr(errDown)
		st := New(remote, cache.NewMemory(salon.Samples()[1:2]))

		err := st.Refresh(ctx)
		require.ErrorIs(t, err, errDown)
		require.Equal(t, []string{"2"}, ids(st.All()))
		require.Equal(t, SourceCache, st.Source())
		require.Contains(t, st.LastError(), "connection refused")
	})

	t.Run("samples on first run", func(t *testing.T) {
		down := NewReconnecting(func(context.Context) (salon.Repository, error) {
			return nil, errDown
		}, errDown, 0)
		st := New(down, cache.NewMemory(nil))

		require.Error(t, st.Refresh(ctx))
		require.Equal(t, salon.Samples(), st.All())
		require.NotEmpty(t, st.Active())
	})
}

func TestRemoteWrites(t *testing.T) {
	ctx := context.Background()
	remote := repository.NewSalonMemoryRepository(salon.Samples()...)
	st := New(remote, cache.NewMemory(nil))
	require.NoError(t, st.Refresh(ctx))

	created, err := st.Add(ctx, studioX())
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, created.ID, st.All()[0].ID, "re-fetch brings the newest record first")

	desc := "Novo endereço"
	updated, err := st.Update(ctx, created.ID, salon.Patch{Descricao: &desc})
	require.NoError(t, err)
	require.Equal(t, desc, updated.Descricao)
	require.Equal(t, "111", updated.Telefone)

	toggled, err := st.ToggleActive(ctx, created.ID)
	require.NoError(t, err)
	require.False(t, toggled.Ativo)

	require.NoError(t, st.Delete(ctx, created.ID))
	require.NoError(t, st.Delete(ctx, created.ID))
	require.Len(t, st.All(), 3)
}

func TestRemoteWriteFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	remote := repository.NewSalonMemoryRepository(salon.Samples()...)
	st := New(remote, cache.NewMemory(nil))
	require.NoError(t, st.Refresh(ctx))
	before := st.All()

	remote.SetErr(errDown)

	_, err := st.Add(ctx, studioX())
	require.ErrorIs(t, err, errDown)
	require.Equal(t, before, st.All())
	require.Contains(t, st.LastError(), "Erro ao adicionar salão")

	require.ErrorIs(t, st.Delete(ctx, "1"), errDown)
	require.Equal(t, before, st.All())

	_, err = st.ToggleActive(ctx, "1")
	require.ErrorIs(t, err, errDown)
	require.Equal(t, before, st.All())

	// sucesso limpa o erro
	remote.SetErr(nil)
	require.NoError(t, st.Refresh(ctx))
	require.Empty(t, st.LastError())
}

func TestConcurrentRemoteWrites(t *testing.T) {
	ctx := context.Background()
	remote := repository.NewSalonMemoryRepository()
	st := New(remote, cache.NewMemory(nil))
	require.NoError(t, st.Refresh(ctx))

	const n = 20
	errs := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := studioX()
			in.Nome = fmt.Sprintf("Studio %d", i)
			_, err := st.Add(ctx, in)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	require.Len(t, st.All(), n)
	require.False(t, st.Busy())
	require.Equal(t, n, st.State().Total)
}

func TestMessage(t *testing.T) {
	require.Equal(t, "", Message(nil))
	require.Equal(t, "salão não encontrado", Message(fmt.Errorf("x: %w", salon.ErrNotFound)))
	require.Equal(t, "boom", Message(errors.New("boom")))
}
