package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/saloes-online/internal/config"
	"github.com/BruksfildServices01/saloes-online/internal/models"
)

// Open conecta no Postgres e garante as tabelas. Erros voltam para o chamador,
// que decide seguir só com o cache local.
func Open(cfg *config.Config) (*gorm.DB, error) {
	if !cfg.DatabaseConfigured() {
		return nil, fmt.Errorf("DATABASE_URL: %w", ErrNotConfigured)
	}

	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Salon{},
		&models.Client{},
		&models.AuditLog{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	// registros antigos guardavam o logo em logo_url
	db.Exec(`
        UPDATE saloes
        SET logo = logo_url
        WHERE (logo IS NULL OR logo = '') AND logo_url IS NOT NULL AND logo_url <> ''
    `)

	return db, nil
}

// OpenRaw conecta sem migrar; usado pelos diagnósticos, que só observam o schema.
func OpenRaw(cfg *config.Config) (*gorm.DB, error) {
	if !cfg.DatabaseConfigured() {
		return nil, fmt.Errorf("DATABASE_URL: %w", ErrNotConfigured)
	}

	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	return db, nil
}
