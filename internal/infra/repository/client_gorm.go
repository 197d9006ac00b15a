package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/saloes-online/internal/models"
)

type ClientGormRepository struct {
	db *gorm.DB
}

func NewClientGormRepository(db *gorm.DB) *ClientGormRepository {
	return &ClientGormRepository{db: db}
}

// List devolve os clientes mais recentes primeiro, com o salão carregado;
// salaoID vazio lista todos.
func (r *ClientGormRepository) List(ctx context.Context, salaoID string) ([]models.Client, error) {
	q := r.db.WithContext(ctx).Preload("Salao")
	if salaoID != "" {
		q = q.Where("salao_id = ?", salaoID)
	}

	var clients []models.Client
	if err := q.
		Order("created_at DESC").
		Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *ClientGormRepository) Create(ctx context.Context, client *models.Client) error {
	if client.ID == "" {
		client.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(client).Error
}

func (r *ClientGormRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Client{}).Error
}
