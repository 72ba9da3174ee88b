package storage

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	apperrors "ticket-system/pkg/errors"
)

// Backend - контракт долговременного key-value хранилища.
// Реализации: локальные файлы (file_backend.go) и redis (redis_backend.go).
type Backend interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Del(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// Store - типизированный key -> JSON-blob адаптер поверх Backend.
// Политика отказов: логировать и деградировать (nil / no-op), никогда
// не пробрасывать ошибку вызывающему. О семантике тикетов не знает.
type Store struct {
	backend Backend
	logger  *zap.Logger
}

func NewStore(backend Backend, logger *zap.Logger) *Store {
	return &Store{backend: backend, logger: logger}
}

// Get возвращает nil, если ключа нет, значение повреждено или чтение
// завершилось ошибкой.
func Get[T any](ctx context.Context, s *Store, key string) *T {
	raw, err := s.backend.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, apperrors.ErrKeyNotFound) {
			s.logger.Error("Ошибка чтения из хранилища",
				zap.String("key", key),
				zap.Error(err),
			)
		}
		return nil
	}

	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		s.logger.Error("Повреждённое значение в хранилище",
			zap.String("key", key),
			zap.Error(err),
		)
		return nil
	}
	return &value
}

// Set сериализует значение в JSON и пишет. Ошибка записи проглатывается:
// вызывающий должен допускать, что запись могла молча не состояться.
func Set[T any](ctx context.Context, s *Store, key string, value T) {
	raw, err := json.Marshal(value)
	if err != nil {
		s.logger.Error("Ошибка сериализации значения",
			zap.String("key", key),
			zap.Error(err),
		)
		return
	}
	if err := s.backend.Set(ctx, key, string(raw)); err != nil {
		s.logger.Error("Ошибка записи в хранилище",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

func (s *Store) Remove(ctx context.Context, key string) {
	if err := s.backend.Del(ctx, key); err != nil {
		s.logger.Error("Ошибка удаления из хранилища",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

func (s *Store) Clear(ctx context.Context) {
	if err := s.backend.Clear(ctx); err != nil {
		s.logger.Error("Ошибка очистки хранилища", zap.Error(err))
	}
}
