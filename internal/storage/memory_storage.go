package storage

import (
	"context"
	"maps"
	"sync"
)

// MemoryStorage keeps items in process memory. State is lost on restart.
type MemoryStorage struct {
	mu    sync.RWMutex
	items map[string]map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{items: make(map[string]map[string]string)}
}

func (s *MemoryStorage) GetItems(_ context.Context, namespace string) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return maps.Clone(s.items[namespace]), nil
}

func (s *MemoryStorage) SetItems(_ context.Context, namespace string, items map[string]string) error {
	if len(items) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ns, ok := s.items[namespace]
	if !ok {
		ns = make(map[string]string, len(items))
		s.items[namespace] = ns
	}
	maps.Copy(ns, items)
	return nil
}

func (s *MemoryStorage) RemoveItems(_ context.Context, namespace string, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ns, ok := s.items[namespace]
	if !ok {
		return nil
	}
	for _, k := range keys {
		delete(ns, k)
	}
	if len(ns) == 0 {
		delete(s.items, namespace)
	}
	return nil
}

func (s *MemoryStorage) Namespaces(context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items), nil
}

func (s *MemoryStorage) Ping(context.Context) error {
	return nil
}

func (s *MemoryStorage) Close() error {
	return nil
}
