package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/BruksfildServices01/saloes-online/internal/domain/salon"
)

// OpenFunc abre o backend remoto.
type OpenFunc func(ctx context.Context) (salon.Repository, error)

// Reconnecting é o backend configurado que não respondeu no boot. Cada chamada
// tenta abri-lo de novo (no máximo uma vez por intervalo) e, enquanto não
// conseguir, devolve o erro da última tentativa: leituras caem no cache e
// escritas reportam a falha. Depois da primeira abertura bem-sucedida tudo é
// delegado ao repositório aberto.
type Reconnecting struct {
	open  OpenFunc
	retry time.Duration
	now   func() time.Time

	mu      sync.Mutex
	repo    salon.Repository
	lastErr error
	lastTry time.Time
}

// NewReconnecting recebe o erro da tentativa feita no boot.
func NewReconnecting(open OpenFunc, initial error, retry time.Duration) *Reconnecting {
	return &Reconnecting{
		open:    open,
		retry:   retry,
		now:     time.Now,
		lastErr: initial,
		lastTry: time.Now(),
	}
}

func (r *Reconnecting) Connected() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.repo != nil
}

func (r *Reconnecting) get(ctx context.Context) (salon.Repository, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.repo != nil {
		return r.repo, nil
	}
	if r.lastErr != nil && r.now().Sub(r.lastTry) < r.retry {
		return nil, r.lastErr
	}

	r.lastTry = r.now()
	repo, err := r.open(ctx)
	if err != nil {
		r.lastErr = err
		return nil, err
	}
	r.repo, r.lastErr = repo, nil
	return repo, nil
}

func (r *Reconnecting) List(ctx context.Context) ([]salon.Salon, error) {
	repo, err := r.get(ctx)
	if err != nil {
		return nil, err
	}
	return repo.List(ctx)
}

func (r *Reconnecting) Get(ctx context.Context, id string) (salon.Salon, error) {
	repo, err := r.get(ctx)
	if err != nil {
		return salon.Salon{}, err
	}
	return repo.Get(ctx, id)
}

func (r *Reconnecting) Create(ctx context.Context, s salon.Salon) (salon.Salon, error) {
	repo, err := r.get(ctx)
	if err != nil {
		return salon.Salon{}, err
	}
	return repo.Create(ctx, s)
}

func (r *Reconnecting) Update(ctx context.Context, id string, p salon.Patch) error {
	repo, err := r.get(ctx)
	if err != nil {
		return err
	}
	return repo.Update(ctx, id, p)
}

func (r *Reconnecting) Delete(ctx context.Context, id string) error {
	repo, err := r.get(ctx)
	if err != nil {
		return err
	}
	return repo.Delete(ctx, id)
}

func (r *Reconnecting) SetActive(ctx context.Context, id string, ativo bool) error {
	repo, err := r.get(ctx)
	if err != nil {
		return err
	}
	return repo.SetActive(ctx, id, ativo)
}

func (r *Reconnecting) Count(ctx context.Context) (int64, error) {
	repo, err := r.get(ctx)
	if err != nil {
		return 0, err
	}
	return repo.Count(ctx)
}

func (r *Reconnecting) InsertMany(ctx context.Context, list []salon.Salon) (int, error) {
	repo, err := r.get(ctx)
	if err != nil {
		return 0, err
	}
	return repo.InsertMany(ctx, list)
}
