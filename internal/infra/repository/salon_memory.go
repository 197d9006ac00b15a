package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/saloes-online/internal/domain/salon"
)

// SalonMemoryRepository implementa salon.Repository em memória, na mesma ordem
// do banco (mais recentes primeiro). Err, quando definido, é devolvido por
// todas as operações, simulando o backend fora do ar.
type SalonMemoryRepository struct {
	mu    sync.Mutex
	rows  []salon.Salon
	Err   error
	Calls int
}

func NewSalonMemoryRepository(initial ...salon.Salon) *SalonMemoryRepository {
	return &SalonMemoryRepository{rows: salon.Clone(initial)}
}

func (r *SalonMemoryRepository) SetErr(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Err = err
}

func (r *SalonMemoryRepository) enter() error {
	r.mu.Lock()
	r.Calls++
	return r.Err
}

func (r *SalonMemoryRepository) List(_ context.Context) ([]salon.Salon, error) {
	err := r.enter()
	defer r.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return salon.Clone(r.rows), nil
}

func (r *SalonMemoryRepository) Get(_ context.Context, id string) (salon.Salon, error) {
	err := r.enter()
	defer r.mu.Unlock()
	if err != nil {
		return salon.Salon{}, err
	}
	if s, ok := salon.Find(r.rows, id); ok {
		return salon.Clone([]salon.Salon{s})[0], nil
	}
	return salon.Salon{}, salon.ErrNotFound
}

func (r *SalonMemoryRepository) Create(_ context.Context, s salon.Salon) (salon.Salon, error) {
	err := r.enter()
	defer r.mu.Unlock()
	if err != nil {
		return salon.Salon{}, err
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	s = salon.Normalize(s)
	r.rows = append([]salon.Salon{s}, r.rows...)
	return s, nil
}

func (r *SalonMemoryRepository) Update(_ context.Context, id string, p salon.Patch) error {
	err := r.enter()
	defer r.mu.Unlock()
	if err != nil {
		return err
	}
	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows[i] = p.Apply(r.rows[i])
			return nil
		}
	}
	return salon.ErrNotFound
}

func (r *SalonMemoryRepository) Delete(_ context.Context, id string) error {
	err := r.enter()
	defer r.mu.Unlock()
	if err != nil {
		return err
	}
	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows = append(r.rows[:i:i], r.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *SalonMemoryRepository) SetActive(_ context.Context, id string, active bool) error {
	err := r.enter()
	defer r.mu.Unlock()
	if err != nil {
		return err
	}
	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows[i].Ativo = active
			return nil
		}
	}
	return salon.ErrNotFound
}

func (r *SalonMemoryRepository) Count(_ context.Context) (int64, error) {
	err := r.enter()
	defer r.mu.Unlock()
	if err != nil {
		return 0, err
	}
	return int64(len(r.rows)), nil
}

func (r *SalonMemoryRepository) InsertMany(_ context.Context, list []salon.Salon) (int, error) {
	err := r.enter()
	defer r.mu.Unlock()
	if err != nil {
		return 0, err
	}
	for _, s := range list {
		if s.ID == "" {
			s.ID = uuid.NewString()
		}
		r.rows = append([]salon.Salon{salon.Normalize(s)}, r.rows...)
	}
	return len(list), nil
}

var _ salon.Repository = (*SalonMemoryRepository)(nil)
