package diagnostics

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Tabelas e colunas que a aplicação espera encontrar.
var (
	Tables       = []string{"saloes", "clientes"}
	SalonColumns = []string{"ativo", "site_url", "horario_funcionamento", "servicos", "descricao"}
)

type Schema interface {
	Ping(ctx context.Context) error
	HasTable(ctx context.Context, table string) bool
	HasColumn(ctx context.Context, table, column string) bool
}

type Bucket interface {
	Bucket() string
	BucketExists(ctx context.Context) (bool, error)
}

type TableReport struct {
	Name   string `json:"name"`
	Exists bool   `json:"exists"`
}

type Report struct {
	DatabaseConfigured bool          `json:"database_configured"`
	Connected          bool          `json:"connected"`
	ConnectionError    string        `json:"connection_error,omitempty"`
	Tables             []TableReport `json:"tables,omitempty"`
	MissingColumns     []string      `json:"missing_columns,omitempty"`

	StorageConfigured bool   `json:"storage_configured"`
	BucketName        string `json:"bucket,omitempty"`
	BucketExists      bool   `json:"bucket_exists"`
	BucketError       string `json:"bucket_error,omitempty"`
}

// OK é verdadeiro quando tudo que está configurado responde e o schema está completo.
func (r Report) OK() bool {
	if r.DatabaseConfigured {
		if !r.Connected || len(r.MissingColumns) > 0 {
			return false
		}
		for _, t := range r.Tables {
			if !t.Exists {
				return false
			}
		}
	}
	if r.StorageConfigured && !r.BucketExists {
		return false
	}
	return true
}

// Probe só observa: não cria tabela, coluna nem bucket.
type Probe struct {
	schema Schema
	bucket Bucket
}

// NewProbe aceita nil em qualquer lado para o que não está configurado.
func NewProbe(schema Schema, bucket Bucket) *Probe {
	return &Probe{schema: schema, bucket: bucket}
}

func (p *Probe) Run(ctx context.Context) Report {
	var r Report

	if p.schema != nil {
		r.DatabaseConfigured = true
		p.checkDatabase(ctx, &r)
	}

	if p.bucket != nil {
		r.StorageConfigured = true
		r.BucketName = p.bucket.Bucket()
		exists, err := p.bucket.BucketExists(ctx)
		if err != nil {
			r.BucketError = err.Error()
		}
		r.BucketExists = exists
	}

	return r
}

func (p *Probe) checkDatabase(ctx context.Context, r *Report) {
	if err := p.schema.Ping(ctx); err != nil {
		r.ConnectionError = Explain(err)
		return
	}
	r.Connected = true

	for _, name := range Tables {
		r.Tables = append(r.Tables, TableReport{Name: name, Exists: p.schema.HasTable(ctx, name)})
	}

	if !p.schema.HasTable(ctx, "saloes") {
		return
	}
	for _, col := range SalonColumns {
		if !p.schema.HasColumn(ctx, "saloes", col) {
			r.MissingColumns = append(r.MissingColumns, col)
		}
	}
}

// Explain traduz os erros mais comuns do Postgres para o operador.
func Explain(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "28P01", "28000":
			return "credenciais inválidas: " + pgErr.Message
		case "3D000":
			return "banco de dados não existe: " + pgErr.Message
		case "42P01":
			return "tabela não existe: " + pgErr.Message
		case "42703":
			return "coluna não existe: " + pgErr.Message
		}
		return fmt.Sprintf("%s (%s)", pgErr.Message, pgErr.Code)
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return "não foi possível conectar: " + connErr.Error()
	}
	return err.Error()
}

// GormSchema implementa Schema sobre uma conexão gorm.
type GormSchema struct {
	db *gorm.DB
}

func NewGormSchema(db *gorm.DB) *GormSchema {
	return &GormSchema{db: db}
}

func (g *GormSchema) Ping(ctx context.Context) error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (g *GormSchema) HasTable(ctx context.Context, table string) bool {
	return g.db.WithContext(ctx).Migrator().HasTable(table)
}

func (g *GormSchema) HasColumn(ctx context.Context, table, column string) bool {
	return g.db.WithContext(ctx).Migrator().HasColumn(table, column)
}
