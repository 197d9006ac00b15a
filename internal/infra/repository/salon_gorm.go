package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/saloes-online/internal/domain/salon"
	"github.com/BruksfildServices01/saloes-online/internal/models"
)

type SalonGormRepository struct {
	db *gorm.DB
}

func NewSalonGormRepository(db *gorm.DB) *SalonGormRepository {
	return &SalonGormRepository{db: db}
}

// --------------------------------------------------
// Leitura
// --------------------------------------------------

func (r *SalonGormRepository) List(ctx context.Context) ([]salon.Salon, error) {
	var rows []models.Salon
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]salon.Salon, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomain(row))
	}
	return out, nil
}

func (r *SalonGormRepository) Get(ctx context.Context, id string) (salon.Salon, error) {
	var row models.Salon
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return salon.Salon{}, salon.ErrNotFound
		}
		return salon.Salon{}, err
	}
	return toDomain(row), nil
}

func (r *SalonGormRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Salon{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// --------------------------------------------------
// Escrita
// --------------------------------------------------

func (r *SalonGormRepository) Create(ctx context.Context, s salon.Salon) (salon.Salon, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}

	row := toModel(s)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return salon.Salon{}, err
	}
	return toDomain(row), nil
}

func (r *SalonGormRepository) Update(ctx context.Context, id string, p salon.Patch) error {
	updates := patchColumns(p)
	if len(updates) == 0 {
		_, err := r.Get(ctx, id)
		return err
	}

	res := r.db.WithContext(ctx).
		Model(&models.Salon{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return salon.ErrNotFound
	}
	return nil
}

func (r *SalonGormRepository) SetActive(ctx context.Context, id string, active bool) error {
	res := r.db.WithContext(ctx).
		Model(&models.Salon{}).
		Where("id = ?", id).
		Update("ativo", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return salon.ErrNotFound
	}
	return nil
}

func (r *SalonGormRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Salon{}).Error
}

func (r *SalonGormRepository) InsertMany(ctx context.Context, list []salon.Salon) (int, error) {
	if len(list) == 0 {
		return 0, nil
	}

	rows := make([]models.Salon, 0, len(list))
	for _, s := range list {
		if s.ID == "" {
			s.ID = uuid.NewString()
		}
		rows = append(rows, toModel(s))
	}

	if err := r.db.WithContext(ctx).CreateInBatches(&rows, 100).Error; err != nil {
		return 0, err
	}
	return len(rows), nil
}

// --------------------------------------------------
// Conversão
// --------------------------------------------------

func toDomain(row models.Salon) salon.Salon {
	logo := row.Logo
	if logo == "" {
		logo = row.LogoURL
	}

	return salon.Normalize(salon.Salon{
		ID:                   row.ID,
		Nome:                 row.Nome,
		Endereco:             row.Endereco,
		Telefone:             row.Telefone,
		Email:                row.Email,
		Logo:                 logo,
		SiteURL:              row.SiteURL,
		HorarioFuncionamento: row.HorarioFuncionamento,
		Servicos:             []string(row.Servicos),
		Descricao:            row.Descricao,
		Ativo:                row.Ativo == nil || *row.Ativo,
	})
}

func toModel(s salon.Salon) models.Salon {
	servicos := s.Servicos
	if servicos == nil {
		servicos = []string{}
	}
	ativo := s.Ativo

	return models.Salon{
		ID:                   s.ID,
		Nome:                 s.Nome,
		Endereco:             s.Endereco,
		Telefone:             s.Telefone,
		Email:                s.Email,
		Logo:                 s.Logo,
		SiteURL:              s.SiteURL,
		HorarioFuncionamento: s.HorarioFuncionamento,
		Servicos:             models.StringList(servicos),
		Descricao:            s.Descricao,
		Ativo:                &ativo,
	}
}

func patchColumns(p salon.Patch) map[string]any {
	updates := map[string]any{}

	if p.Nome != nil {
		updates["nome"] = *p.Nome
	}
	if p.Endereco != nil {
		updates["endereco"] = *p.Endereco
	}
	if p.Telefone != nil {
		updates["telefone"] = *p.Telefone
	}
	if p.Email != nil {
		updates["email"] = *p.Email
	}
	if p.Logo != nil {
		updates["logo"] = *p.Logo
	}
	if p.SiteURL != nil {
		updates["site_url"] = *p.SiteURL
	}
	if p.HorarioFuncionamento != nil {
		updates["horario_funcionamento"] = *p.HorarioFuncionamento
	}
	if p.Servicos != nil {
		updates["servicos"] = models.StringList(salon.CleanServicos(*p.Servicos))
	}
	if p.Descricao != nil {
		updates["descricao"] = *p.Descricao
	}
	if p.Ativo != nil {
		updates["ativo"] = *p.Ativo
	}

	return updates
}

// Compile-time check
var _ salon.Repository = (*SalonGormRepository)(nil)
