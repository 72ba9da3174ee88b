package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "ticket-system/pkg/errors"
)

type testRecord struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newTestStore(t *testing.T) (*Store, *FileBackend) {
	t.Helper()
	backend, err := NewFileBackend(t.TempDir())
	require.NoError(t, err, "Не удалось создать файловый бэкенд")
	return NewStore(backend, zap.NewNop()), backend
}

func TestStore_GetMissingKey(t *testing.T) {
	store, _ := newTestStore(t)

	value := Get[testRecord](context.Background(), store, "missing")
	assert.Nil(t, value, "Отсутствующий ключ - nil, а не ошибка")
}

func TestStore_SetGetRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	Set(ctx, store, "record", testRecord{Name: "demo", Count: 3})

	value := Get[testRecord](ctx, store, "record")
	require.NotNil(t, value)
	assert.Equal(t, testRecord{Name: "demo", Count: 3}, *value)
}

func TestStore_MalformedValue(t *testing.T) {
	store, backend := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, backend.Set(ctx, "broken", "{не json"))

	value := Get[testRecord](ctx, store, "broken")
	assert.Nil(t, value, "Повреждённое значение деградирует до nil")
}

func TestStore_Remove(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	Set(ctx, store, "record", testRecord{Name: "demo"})
	store.Remove(ctx, "record")

	assert.Nil(t, Get[testRecord](ctx, store, "record"))
}

func TestStore_RemoveMissingKeyIsNoop(t *testing.T) {
	store, _ := newTestStore(t)

	// Не должно ни паниковать, ни логировать ошибку как фатальную
	store.Remove(context.Background(), "missing")
}

func TestStore_Clear(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	Set(ctx, store, "first", testRecord{Name: "a"})
	Set(ctx, store, "second", testRecord{Name: "b"})
	store.Clear(ctx)

	assert.Nil(t, Get[testRecord](ctx, store, "first"))
	assert.Nil(t, Get[testRecord](ctx, store, "second"))
}

func TestFileBackend_GetMissing(t *testing.T) {
	backend, err := NewFileBackend(t.TempDir())
	require.NoError(t, err)

	_, err = backend.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrKeyNotFound)
}

func TestFileBackend_DelMissing(t *testing.T) {
	backend, err := NewFileBackend(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, backend.Del(context.Background(), "missing"))
}
