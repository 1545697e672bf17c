package storage

import (
	"context"

	"devchatClient/internal/database"
	"devchatClient/internal/repository"
)

// SQLStorage stores items in the client_storage table of a postgres or
// sqlite database.
type SQLStorage struct {
	db   *database.DB
	repo repository.StorageRepository
}

func NewSQLStorage(db *database.DB, repo *repository.Repository) *SQLStorage {
	return &SQLStorage{db: db, repo: repo.Storage}
}

func (s *SQLStorage) GetItems(ctx context.Context, namespace string) (map[string]string, error) {
	return s.repo.GetItems(ctx, namespace)
}

func (s *SQLStorage) SetItems(ctx context.Context, namespace string, items map[string]string) error {
	return s.repo.SetItems(ctx, namespace, items)
}

func (s *SQLStorage) RemoveItems(ctx context.Context, namespace string, keys ...string) error {
	return s.repo.RemoveItems(ctx, namespace, keys...)
}

// Namespaces reports how many clients currently hold persisted state.
func (s *SQLStorage) Namespaces(ctx context.Context) (int, error) {
	return s.repo.CountNamespaces(ctx)
}

func (s *SQLStorage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLStorage) Close() error {
	return s.db.CloseDB()
}
