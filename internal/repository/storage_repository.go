package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/jmoiron/sqlx"
)

const (
	selectItemQuery = `SELECT item_value FROM client_storage WHERE namespace = ? AND item_key = ?`

	selectItemsQuery = `SELECT item_key, item_value FROM client_storage WHERE namespace = ?`

	upsertItemQuery = `INSERT INTO client_storage (namespace, item_key, item_value, updated_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP) ON CONFLICT (namespace, item_key) DO UPDATE SET item_value = excluded.item_value, updated_at = CURRENT_TIMESTAMP`

	deleteItemQuery = `DELETE FROM client_storage WHERE namespace = ? AND item_key = ?`

	countNamespacesQuery = `SELECT COUNT(DISTINCT namespace) FROM client_storage`
)

type storageRepository struct {
	db *sqlx.DB
}

type storageItem struct {
	Key   string `db:"item_key"`
	Value string `db:"item_value"`
}

func NewStorageRepository(db *sqlx.DB) StorageRepository {
	return &storageRepository{db: db}
}

func (r *storageRepository) GetItem(ctx context.Context, namespace, key string) (string, error) {
	var value string

	err := r.db.GetContext(ctx, &value, r.db.Rebind(selectItemQuery), namespace, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrItemNotFound
		}
		return "", fmt.Errorf("failed to read storage item %s: %w", key, err)
	}

	return value, nil
}

func (r *storageRepository) GetItems(ctx context.Context, namespace string) (map[string]string, error) {
	var rows []storageItem

	err := r.db.SelectContext(ctx, &rows, r.db.Rebind(selectItemsQuery), namespace)
	if err != nil {
		return nil, fmt.Errorf("failed to read storage namespace: %w", err)
	}

	items := make(map[string]string, len(rows))
	for _, row := range rows {
		items[row.Key] = row.Value
	}

	return items, nil
}

// SetItems writes all items in one transaction, in key order.
func (r *storageRepository) SetItems(ctx context.Context, namespace string, items map[string]string) error {
	if len(items) == 0 {
		return nil
	}

	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := r.db.Rebind(upsertItemQuery)
	for _, k := range keys {
		if _, err := tx.ExecContext(ctx, query, namespace, k, items[k]); err != nil {
			return fmt.Errorf("failed to write storage item %s: %w", k, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit storage items: %w", err)
	}

	return nil
}

func (r *storageRepository) RemoveItems(ctx context.Context, namespace string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := r.db.Rebind(deleteItemQuery)
	for _, k := range keys {
		if _, err := tx.ExecContext(ctx, query, namespace, k); err != nil {
			return fmt.Errorf("failed to remove storage item %s: %w", k, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit storage removal: %w", err)
	}

	return nil
}

func (r *storageRepository) CountNamespaces(ctx context.Context) (int, error) {
	var count int

	if err := r.db.GetContext(ctx, &count, countNamespacesQuery); err != nil {
		return 0, fmt.Errorf("failed to count storage namespaces: %w", err)
	}

	return count, nil
}
