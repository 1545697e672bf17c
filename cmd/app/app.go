package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"devchatClient/internal/api"
	"devchatClient/internal/config"
	"devchatClient/internal/database"
	"devchatClient/internal/logger"
	"devchatClient/internal/repository"
	"devchatClient/internal/service"
	"devchatClient/internal/session"
	"devchatClient/internal/storage"
)

// App wires storage, the session store, the API gateway and the services
// shared by the web and terminal clients. The caller closes the returned
// storage.
func App(cfg *config.Config) (storage.Storage, *session.Store, *service.Service, error) {
	st, err := NewStorage(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open %s session storage: %w", cfg.Storage.Driver, err)
	}

	store := session.NewStore(st)

	// a rejected token signs that client out everywhere it is used
	client := api.NewClient(cfg.APIBaseURL, cfg.APITimeout, func(ctx context.Context, namespace string) {
		if err := store.Expire(ctx, namespace); err != nil {
			logger.Log.Error("failed to clear expired session",
				zap.String("namespace", namespace),
				zap.Error(err),
			)
		}
	})

	services := service.NewService(client, store, st, cfg)

	return st, store, services, nil
}

// NewStorage opens the backend named by cfg.Storage.Driver.
func NewStorage(cfg *config.Config) (storage.Storage, error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres, config.DriverSQLite:
		db, err := database.ConnectDB(cfg)
		if err != nil {
			return nil, err
		}
		return storage.NewSQLStorage(db, repository.NewRepository(db.DB)), nil
	case config.DriverRedis:
		return storage.NewRedisStorage(cfg.Storage.RedisURL)
	default:
		return storage.NewMemoryStorage(), nil
	}
}
