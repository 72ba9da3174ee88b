package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	apperrors "ticket-system/pkg/errors"
)

// FileBackend хранит каждое значение в отдельном файле <key>.json
// внутри базовой директории. Локальный аналог durable key-value
// хранилища браузера.
type FileBackend struct {
	basePath string
}

func NewFileBackend(basePath string) (*FileBackend, error) {
	if _, err := os.Stat(basePath); os.IsNotExist(err) {
		if err := os.MkdirAll(basePath, 0o755); err != nil {
			return nil, fmt.Errorf("не удалось создать директорию хранилища: %w", err)
		}
	}
	return &FileBackend{basePath: basePath}, nil
}

func (b *FileBackend) path(key string) string {
	return filepath.Join(b.basePath, key+".json")
}

func (b *FileBackend) Get(ctx context.Context, key string) (string, error) {
	raw, err := os.ReadFile(b.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", apperrors.ErrKeyNotFound
		}
		return "", err
	}
	return string(raw), nil
}

func (b *FileBackend) Set(ctx context.Context, key string, value string) error {
	return os.WriteFile(b.path(key), []byte(value), 0o644)
}

func (b *FileBackend) Del(ctx context.Context, key string) error {
	// Если файла и так нет, считаем операцию успешной.
	if err := os.Remove(b.path(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (b *FileBackend) Clear(ctx context.Context) error {
	matches, err := filepath.Glob(filepath.Join(b.basePath, "*.json"))
	if err != nil {
		return err
	}
	for _, m := range matches {
		if err := os.Remove(m); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}
