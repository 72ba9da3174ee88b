package query

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ticket-system/pkg/eventbus"
)

type testEvent struct {
	tags []string
}

func (e testEvent) Name() string              { return "test.event" }
func (e testEvent) InvalidatedTags() []string { return e.tags }

func TestQuery_RunStoresResult(t *testing.T) {
	bus := eventbus.New(zap.NewNop())
	value := 1

	q := New(bus,
		func(ctx context.Context) (*int, error) { return &value, nil },
		func(data *int) []string { return []string{"Value:LIST"} },
	)
	defer q.Close()

	result := q.Run(context.Background())
	require.NotNil(t, result.Data)
	assert.Equal(t, 1, *result.Data)
	assert.NoError(t, result.Error)
	assert.False(t, result.IsLoading)
}

func TestQuery_RefetchesOnInvalidation(t *testing.T) {
	bus := eventbus.New(zap.NewNop())
	fetches := 0

	q := New(bus,
		func(ctx context.Context) (*int, error) {
			fetches++
			return &fetches, nil
		},
		func(data *int) []string { return []string{"Value:LIST"} },
	)
	defer q.Close()

	q.Run(context.Background())
	require.Equal(t, 1, fetches)

	bus.Publish(context.Background(), testEvent{tags: []string{"Value:LIST"}})
	assert.Equal(t, 2, fetches, "Инвалидация тега перезапускает запрос")
	assert.Equal(t, 2, *q.Result().Data)

	bus.Publish(context.Background(), testEvent{tags: []string{"Other:LIST"}})
	assert.Equal(t, 2, fetches, "Чужой тег запрос не трогает")
}

func TestQuery_NoRefetchBeforeFirstRun(t *testing.T) {
	bus := eventbus.New(zap.NewNop())
	fetches := 0

	q := New(bus,
		func(ctx context.Context) (*int, error) {
			fetches++
			return &fetches, nil
		},
		func(data *int) []string { return []string{"Value:LIST"} },
	)
	defer q.Close()

	bus.Publish(context.Background(), testEvent{tags: []string{"Value:LIST"}})
	assert.Equal(t, 0, fetches, "До первого Run подписка пуста")
}

func TestQuery_ErrorResult(t *testing.T) {
	bus := eventbus.New(zap.NewNop())

	q := New(bus,
		func(ctx context.Context) (*int, error) {
			return nil, fmt.Errorf("fetch упал")
		},
		func(data *int) []string { return []string{"Value:LIST"} },
	)
	defer q.Close()

	result := q.Run(context.Background())
	assert.Nil(t, result.Data)
	assert.Error(t, result.Error)
	assert.False(t, result.IsLoading)
}
