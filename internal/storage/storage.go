// Package storage persists small string items per client namespace. It plays
// the role a browser's local storage plays for a single-page client.
package storage

import (
	"context"
)

type Storage interface {
	GetItems(ctx context.Context, namespace string) (map[string]string, error)
	SetItems(ctx context.Context, namespace string, items map[string]string) error
	RemoveItems(ctx context.Context, namespace string, keys ...string) error
	Ping(ctx context.Context) error
	Close() error
}
