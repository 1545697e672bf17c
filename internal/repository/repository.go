package repository

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrItemNotFound = errors.New("storage item not found")

// StorageRepository keeps string items partitioned by namespace, the SQL
// counterpart of a browser's local storage.
type StorageRepository interface {
	GetItem(ctx context.Context, namespace, key string) (string, error)
	GetItems(ctx context.Context, namespace string) (map[string]string, error)
	SetItems(ctx context.Context, namespace string, items map[string]string) error
	RemoveItems(ctx context.Context, namespace string, keys ...string) error
	CountNamespaces(ctx context.Context) (int, error)
}

type Repository struct {
	Storage StorageRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		Storage: NewStorageRepository(db),
	}
}
