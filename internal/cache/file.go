package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BruksfildServices01/saloes-online/internal/domain/salon"
)

// FileCache guarda a lista serializada num único arquivo JSON.
type FileCache struct {
	path string
	mu   sync.Mutex
}

func NewFileCache(path string) *FileCache {
	return &FileCache{path: path}
}

func (f *FileCache) Path() string {
	return f.path
}

func (f *FileCache) Load(_ context.Context) ([]salon.Salon, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("erro ao ler cache local: %w", err)
	}

	list, err := decode(b)
	if err != nil {
		return nil, false, err
	}
	return list, true, nil
}

func (f *FileCache) Save(_ context.Context, list []salon.Salon) error {
	b, err := encode(list)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if dir := filepath.Dir(f.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("erro ao salvar cache local: %w", err)
		}
	}

	// grava num temporário e renomeia para não deixar arquivo pela metade
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("erro ao salvar cache local: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("erro ao salvar cache local: %w", err)
	}
	return nil
}

func (f *FileCache) Clear(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("erro ao limpar cache local: %w", err)
	}
	return nil
}

func encode(list []salon.Salon) ([]byte, error) {
	if list == nil {
		list = []salon.Salon{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar salões: %w", err)
	}
	return b, nil
}

func decode(b []byte) ([]salon.Salon, error) {
	var list []salon.Salon
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, fmt.Errorf("cache local corrompido: %w", err)
	}
	for i := range list {
		list[i] = salon.Normalize(list[i])
	}
	return list, nil
}

var _ salon.Cache = (*FileCache)(nil)
