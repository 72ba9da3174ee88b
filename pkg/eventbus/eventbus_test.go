package eventbus

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type testEvent struct {
	tags []string
}

func (e testEvent) Name() string              { return "test.event" }
func (e testEvent) InvalidatedTags() []string { return e.tags }

func TestBus_DeliversOnMatchingTag(t *testing.T) {
	bus := New(zap.NewNop())
	calls := 0

	bus.Subscribe(func(ctx context.Context, tag string) error {
		calls++
		assert.Equal(t, "Ticket:LIST", tag)
		return nil
	}, "Ticket:LIST")

	bus.Publish(context.Background(), testEvent{tags: []string{"Ticket:LIST"}})
	assert.Equal(t, 1, calls)
}

func TestBus_IgnoresUnrelatedTags(t *testing.T) {
	bus := New(zap.NewNop())
	calls := 0

	bus.Subscribe(func(ctx context.Context, tag string) error {
		calls++
		return nil
	}, "Ticket:42")

	bus.Publish(context.Background(), testEvent{tags: []string{"Ticket:LIST"}})
	assert.Equal(t, 0, calls)
}

func TestBus_DeliversOncePerEvent(t *testing.T) {
	bus := New(zap.NewNop())
	calls := 0

	// Подписка пересекается с событием по двум тегам, но вызывается один раз
	bus.Subscribe(func(ctx context.Context, tag string) error {
		calls++
		return nil
	}, "Ticket:42", "Ticket:LIST")

	bus.Publish(context.Background(), testEvent{tags: []string{"Ticket:42", "Ticket:LIST"}})
	assert.Equal(t, 1, calls)
}

func TestBus_SetTagsReplacesSet(t *testing.T) {
	bus := New(zap.NewNop())
	calls := 0

	sub := bus.Subscribe(func(ctx context.Context, tag string) error {
		calls++
		return nil
	}, "Ticket:old")

	sub.SetTags("Ticket:new")

	bus.Publish(context.Background(), testEvent{tags: []string{"Ticket:old"}})
	assert.Equal(t, 0, calls)

	bus.Publish(context.Background(), testEvent{tags: []string{"Ticket:new"}})
	assert.Equal(t, 1, calls)
}

func TestBus_ClosedSubscriptionNotCalled(t *testing.T) {
	bus := New(zap.NewNop())
	calls := 0

	sub := bus.Subscribe(func(ctx context.Context, tag string) error {
		calls++
		return nil
	}, "Ticket:LIST")
	sub.Close()

	bus.Publish(context.Background(), testEvent{tags: []string{"Ticket:LIST"}})
	assert.Equal(t, 0, calls)
}

func TestBus_ListenerErrorDoesNotStopDelivery(t *testing.T) {
	bus := New(zap.NewNop())
	secondCalled := false

	bus.Subscribe(func(ctx context.Context, tag string) error {
		return fmt.Errorf("обработчик упал")
	}, "Ticket:LIST")
	bus.Subscribe(func(ctx context.Context, tag string) error {
		secondCalled = true
		return nil
	}, "Ticket:LIST")

	bus.Publish(context.Background(), testEvent{tags: []string{"Ticket:LIST"}})
	assert.True(t, secondCalled, "Ошибка одного обработчика не мешает остальным")
}

func TestBus_RetagFromListener(t *testing.T) {
	bus := New(zap.NewNop())
	calls := 0

	var sub *Subscription
	sub = bus.Subscribe(func(ctx context.Context, tag string) error {
		calls++
		// Обработчик вправе перетегировать собственную подписку
		sub.SetTags("Ticket:next")
		return nil
	}, "Ticket:LIST")

	bus.Publish(context.Background(), testEvent{tags: []string{"Ticket:LIST"}})
	bus.Publish(context.Background(), testEvent{tags: []string{"Ticket:next"}})
	assert.Equal(t, 2, calls)
}
