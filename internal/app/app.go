// Package app monta as dependências compartilhadas pelo servidor e pela CLI.
package app

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/saloes-online/internal/cache"
	"github.com/BruksfildServices01/saloes-online/internal/catalog"
	"github.com/BruksfildServices01/saloes-online/internal/config"
	dbpkg "github.com/BruksfildServices01/saloes-online/internal/db"
	"github.com/BruksfildServices01/saloes-online/internal/domain/salon"
	"github.com/BruksfildServices01/saloes-online/internal/infra/repository"
	"github.com/BruksfildServices01/saloes-online/internal/notify"
	"github.com/BruksfildServices01/saloes-online/internal/storage"
)

// reconnectInterval limita as tentativas de reabrir um banco que não subiu.
const reconnectInterval = 15 * time.Second

// Cache escolhe o backend do cache local. Se o Redis pedido não responder,
// cai para o arquivo. close nunca é nil.
func Cache(ctx context.Context, cfg *config.Config, log *zap.Logger) (c salon.Cache, closeFn func()) {
	return openCache(ctx, cfg, log, cfg.CacheFile, cfg.RedisKey)
}

// Mirror é onde fica a cópia da última lista lida do banco. Mora em outro
// arquivo (ou chave) para não sobrescrever o cache local ainda não migrado.
func Mirror(ctx context.Context, cfg *config.Config, log *zap.Logger) (c salon.Cache, closeFn func()) {
	return openCache(ctx, cfg, log, cfg.CacheMirrorFile, cfg.RedisMirrorKey)
}

func openCache(ctx context.Context, cfg *config.Config, log *zap.Logger, path, key string) (salon.Cache, func()) {
	file := cache.NewFileCache(path)
	if !cfg.UseRedisCache() {
		return file, func() {}
	}

	rc, err := cache.NewRedisCacheFromURL(cfg.RedisURL, key)
	if err != nil {
		log.Warn("redis cache unavailable, using file cache", zap.String("key", key), zap.Error(err))
		return file, func() {}
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rc.Ping(pingCtx); err != nil {
		log.Warn("redis cache unavailable, using file cache", zap.String("key", key), zap.Error(err))
		_ = rc.Close()
		return file, func() {}
	}

	return rc, func() { _ = rc.Close() }
}

// Remote abre o banco. Sem DATABASE_URL devolve (nil, nil, nil). Com a URL
// configurada mas o banco fora do ar, devolve o erro e um repositório que
// tenta reconectar nas chamadas seguintes; até lá leituras caem no cache e
// escritas reportam a falha. O *gorm.DB só existe quando o boot conectou.
func Remote(cfg *config.Config, log *zap.Logger) (*gorm.DB, salon.Repository, error) {
	db, err := dbpkg.Open(cfg)
	switch {
	case errors.Is(err, dbpkg.ErrNotConfigured):
		log.Info("remote backend not configured, using local cache")
		return nil, nil, nil
	case err != nil:
		log.Error("remote backend unavailable, will retry on demand", zap.Error(err))
		return nil, catalog.NewReconnecting(reopen(cfg, log), err, reconnectInterval), err
	}
	return db, repository.NewSalonGormRepository(db), nil
}

func reopen(cfg *config.Config, log *zap.Logger) catalog.OpenFunc {
	return func(context.Context) (salon.Repository, error) {
		db, err := dbpkg.Open(cfg)
		if err != nil {
			log.Warn("remote backend still unavailable", zap.Error(err))
			return nil, err
		}
		log.Info("remote backend reconnected")
		return repository.NewSalonGormRepository(db), nil
	}
}

// Storage devolve nil quando o bucket não está configurado.
func Storage(cfg *config.Config) *storage.LogoStorage {
	if !cfg.StorageConfigured() {
		return nil
	}
	return storage.NewLogoStorage(cfg)
}

// Notifiers devolve e-mail e SMS; cada um é nil quando não configurado.
func Notifiers(cfg *config.Config) (email, sms notify.Notifier) {
	if cfg.EmailConfigured() {
		email = notify.NewEmailJS(notify.EmailJSConfig{
			ServiceID:  cfg.EmailServiceID,
			TemplateID: cfg.EmailTemplateID,
			PublicKey:  cfg.EmailPublicKey,
			PrivateKey: cfg.EmailPrivateKey,
			Endpoint:   cfg.EmailAPIEndpoint,
		}, nil)
	}
	if cfg.SMSConfigured() {
		sms = notify.NewTwilioSMS(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFrom, cfg.AdminPhone)
	}
	return email, sms
}
