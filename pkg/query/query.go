package query

import (
	"context"
	"sync"

	"ticket-system/pkg/eventbus"
)

// Result - состояние запроса, каким его видит потребитель.
type Result[T any] struct {
	Data      *T
	Error     error
	IsLoading bool
}

type FetchFunc[T any] func(ctx context.Context) (*T, error)

// TagsFunc объявляет теги результата: идентичность вернувшихся записей
// плюс коллекционный тег. data может быть nil (неуспешный fetch).
type TagsFunc[T any] func(data *T) []string

// Query - ручка запроса: хранит последний Result и перезапускает fetch,
// когда мутация инвалидирует один из его тегов.
type Query[T any] struct {
	mu     sync.Mutex
	fetch  FetchFunc[T]
	tags   TagsFunc[T]
	sub    *eventbus.Subscription
	result Result[T]
}

// New подписывает запрос на шину. До первого Run подписка пуста и
// инвалидации её не затрагивают.
func New[T any](bus *eventbus.Bus, fetch FetchFunc[T], tags TagsFunc[T]) *Query[T] {
	q := &Query[T]{fetch: fetch, tags: tags}
	q.sub = bus.Subscribe(func(ctx context.Context, _ string) error {
		q.Run(ctx)
		return nil
	})
	return q
}

// Run выполняет fetch и перетегирует подписку по фактическому результату.
func (q *Query[T]) Run(ctx context.Context) Result[T] {
	q.mu.Lock()
	q.result.IsLoading = true
	q.mu.Unlock()

	data, err := q.fetch(ctx)

	q.mu.Lock()
	q.result = Result[T]{Data: data, Error: err, IsLoading: false}
	current := q.result
	q.mu.Unlock()

	if q.tags != nil {
		q.sub.SetTags(q.tags(data)...)
	}
	return current
}

// Result возвращает последнее известное состояние, не перезапуская fetch.
func (q *Query[T]) Result() Result[T] {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.result
}

func (q *Query[T]) Close() {
	q.sub.Close()
}
