package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/saloes-online/internal/models"
)

// ErrNoStore é devolvido pela listagem quando não há banco.
var ErrNoStore = errors.New("audit store not configured")

// Logger grava os eventos na tabela audit_logs. Sem banco, eles vão para o log.
type Logger struct {
	db  *gorm.DB
	log *zap.Logger
}

func New(db *gorm.DB, log *zap.Logger) *Logger {
	if log == nil {
		log = zap.NewNop()
	}
	return &Logger{db: db, log: log}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	if l.db == nil {
		l.log.Info("audit",
			zap.String("actor", ev.Actor),
			zap.String("action", ev.Action),
			zap.String("entity", ev.Entity),
			zap.String("entity_id", ev.EntityID),
			zap.String("metadata", metaJSON),
		)
		return nil
	}

	row := models.AuditLog{
		Actor:    ev.Actor,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: metaJSON,
	}

	return l.db.WithContext(ctx).Create(&row).Error
}

// Filter são os filtros da listagem; campos vazios não filtram.
type Filter struct {
	Action   string
	Entity   string
	EntityID string
	Actor    string
	From     time.Time
	To       time.Time

	Page  int
	Limit int
}

type Page struct {
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
	Total int64             `json:"total"`
	Logs  []models.AuditLog `json:"logs"`
}

// List devolve os eventos mais recentes primeiro. To é exclusivo.
func (l *Logger) List(ctx context.Context, f Filter) (Page, error) {
	if l.db == nil {
		return Page{}, ErrNoStore
	}

	q := l.db.WithContext(ctx).Model(&models.AuditLog{})
	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if f.EntityID != "" {
		q = q.Where("entity_id = ?", f.EntityID)
	}
	if f.Actor != "" {
		q = q.Where("actor = ?", f.Actor)
	}
	if !f.From.IsZero() {
		q = q.Where("created_at >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("created_at < ?", f.To)
	}

	out := Page{Page: f.Page, Limit: f.Limit, Logs: []models.AuditLog{}}
	if err := q.Count(&out.Total).Error; err != nil {
		return Page{}, fmt.Errorf("count audit logs: %w", err)
	}

	if err := q.
		Order("created_at DESC").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&out.Logs).Error; err != nil {
		return Page{}, fmt.Errorf("list audit logs: %w", err)
	}
	return out, nil
}
