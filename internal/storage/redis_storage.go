package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStorage keeps each namespace in one Redis hash.
type RedisStorage struct {
	client *redis.Client
	prefix string
}

func NewRedisStorage(redisURL string) (*RedisStorage, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewRedisStorageWithClient(client), nil
}

func NewRedisStorageWithClient(client *redis.Client) *RedisStorage {
	return &RedisStorage{
		client: client,
		prefix: "devchat:storage:",
	}
}

func (s *RedisStorage) key(namespace string) string {
	return s.prefix + namespace
}

func (s *RedisStorage) GetItems(ctx context.Context, namespace string) (map[string]string, error) {
	items, err := s.client.HGetAll(ctx, s.key(namespace)).Result()
	if err != nil {
		return nil, fmt.Errorf("read storage namespace: %w", err)
	}
	return items, nil
}

func (s *RedisStorage) SetItems(ctx context.Context, namespace string, items map[string]string) error {
	if len(items) == 0 {
		return nil
	}

	values := make(map[string]interface{}, len(items))
	for k, v := range items {
		values[k] = v
	}

	if err := s.client.HSet(ctx, s.key(namespace), values).Err(); err != nil {
		return fmt.Errorf("write storage items: %w", err)
	}
	return nil
}

func (s *RedisStorage) RemoveItems(ctx context.Context, namespace string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	if err := s.client.HDel(ctx, s.key(namespace), keys...).Err(); err != nil {
		return fmt.Errorf("remove storage items: %w", err)
	}
	return nil
}

// Namespaces counts the namespaces holding at least one item. Redis drops a
// hash together with its last field.
func (s *RedisStorage) Namespaces(ctx context.Context) (int, error) {
	count := 0
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		count++
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("count storage namespaces: %w", err)
	}
	return count, nil
}

func (s *RedisStorage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStorage) Close() error {
	return s.client.Close()
}
