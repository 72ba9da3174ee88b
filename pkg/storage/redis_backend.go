package storage

import (
	"context"
	"errors"

	"github.com/go-redis/redis/v8"

	apperrors "ticket-system/pkg/errors"
)

// RedisBackend - альтернативный бэкенд хранилища на Redis.
type RedisBackend struct {
	client *redis.Client
}

func NewRedisBackend(client *redis.Client) *RedisBackend {
	return &RedisBackend{client: client}
}

func (b *RedisBackend) Get(ctx context.Context, key string) (string, error) {
	value, err := b.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperrors.ErrKeyNotFound
		}
		return "", err
	}
	return value, nil
}

func (b *RedisBackend) Set(ctx context.Context, key string, value string) error {
	// Без TTL: хранилище долговременное, а не кеш с истечением.
	return b.client.Set(ctx, key, value, 0).Err()
}

func (b *RedisBackend) Del(ctx context.Context, key string) error {
	return b.client.Del(ctx, key).Err()
}

func (b *RedisBackend) Clear(ctx context.Context) error {
	return b.client.FlushDB(ctx).Err()
}
