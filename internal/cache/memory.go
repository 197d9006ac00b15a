package cache

import (
	"context"
	"sync"

	"github.com/BruksfildServices01/saloes-online/internal/domain/salon"
)

// Memory é um cache volátil, usado em testes e quando nenhum outro está disponível.
type Memory struct {
	mu    sync.Mutex
	list  []salon.Salon
	found bool

	// SaveErr, quando definido, é devolvido por Save.
	SaveErr error
}

func NewMemory(initial []salon.Salon) *Memory {
	m := &Memory{}
	if initial != nil {
		m.list = salon.Clone(initial)
		m.found = true
	}
	return m
}

func (m *Memory) Load(_ context.Context) ([]salon.Salon, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.found {
		return nil, false, nil
	}
	return salon.Clone(m.list), true, nil
}

func (m *Memory) Save(_ context.Context, list []salon.Salon) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.list = salon.Clone(list)
	m.found = true
	return nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.list = nil
	m.found = false
	return nil
}

var _ salon.Cache = (*Memory)(nil)
