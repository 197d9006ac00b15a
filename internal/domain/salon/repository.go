package salon

import "context"

// Repository é o backend remoto (tabela saloes).
type Repository interface {
	// List devolve todos os salões, mais recentes primeiro.
	List(ctx context.Context) ([]Salon, error)
	Get(ctx context.Context, id string) (Salon, error)
	Create(ctx context.Context, s Salon) (Salon, error)
	Update(ctx context.Context, id string, p Patch) error
	// Delete não falha para ids inexistentes.
	Delete(ctx context.Context, id string) error
	SetActive(ctx context.Context, id string, active bool) error

	Count(ctx context.Context) (int64, error)
	InsertMany(ctx context.Context, list []Salon) (int, error)
}

// Cache é o estado local persistido, usado só como fallback.
type Cache interface {
	// Load informa found=false quando nunca houve nada salvo.
	Load(ctx context.Context) (list []Salon, found bool, err error)
	Save(ctx context.Context, list []Salon) error
	Clear(ctx context.Context) error
}
