package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/saloes-online/internal/app"
	"github.com/BruksfildServices01/saloes-online/internal/audit"
	"github.com/BruksfildServices01/saloes-online/internal/auth"
	"github.com/BruksfildServices01/saloes-online/internal/catalog"
	"github.com/BruksfildServices01/saloes-online/internal/config"
	"github.com/BruksfildServices01/saloes-online/internal/infra/repository"
	"github.com/BruksfildServices01/saloes-online/internal/logger"
	"github.com/BruksfildServices01/saloes-online/internal/middleware"
	"github.com/BruksfildServices01/saloes-online/internal/routes"
	"github.com/BruksfildServices01/saloes-online/internal/usecase/lead"
	"github.com/BruksfildServices01/saloes-online/internal/usecase/migration"
	"github.com/BruksfildServices01/saloes-online/internal/validators"
)

func main() {
	cfg := config.Load()
	log := logger.Must(cfg.LogLevel)
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	localCache, closeCache := app.Cache(ctx, cfg, log)
	defer closeCache()
	mirrorCache, closeMirror := app.Mirror(ctx, cfg, log)
	defer closeMirror()

	db, remote, _ := app.Remote(cfg, log)

	auditStore := audit.New(db, log)
	auditDispatcher := audit.NewDispatcher(auditStore, log)
	defer auditDispatcher.Close()

	migrator := migration.New(remote, localCache, auditDispatcher, log)
	if cfg.AutoMigrate {
		// sem terminal para perguntar: migra e guarda backup, mas mantém o cache
		migrated, err := migrator.AutoMigrateIfNeeded(ctx, migration.Options{
			Confirm:   func(q string) bool { return q != migration.QuestionClear },
			BackupDir: cfg.MigrationBackupDir,
		})
		if err != nil {
			log.Error("auto migration failed", zap.Error(err))
		} else if migrated {
			log.Info("local cache migrated to remote backend")
		}
	}

	store := catalog.New(remote, localCache,
		catalog.WithMirror(mirrorCache),
		catalog.WithLogger(log),
	)
	if err := store.Refresh(ctx); err != nil {
		log.Warn("initial load used local fallback", zap.Error(err))
	}
	log.Info("catalog loaded",
		zap.String("source", string(store.Source())),
		zap.Int("total", len(store.All())),
	)

	authService, err := auth.NewService(cfg)
	if err != nil {
		log.Fatal("invalid admin credentials", zap.Error(err))
	}

	email, sms := app.Notifiers(cfg)
	if email == nil {
		log.Warn("EmailJS not configured, leads will only be logged")
	}
	domainChecker := validators.NewEmailDomainChecker()
	leads := lead.NewSubmitLead(email, sms, domainChecker.Valid, auditDispatcher, log)

	deps := routes.Deps{
		Config:   cfg,
		Log:      log,
		Store:    store,
		Auth:     authService,
		Leads:    leads,
		Migrator: migrator,
		Audit:    auditDispatcher,
	}
	if logos := app.Storage(cfg); logos != nil {
		deps.Logos = logos
	}
	if db != nil {
		deps.Clients = repository.NewClientGormRepository(db)
		deps.AuditLogs = auditStore
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))
	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
