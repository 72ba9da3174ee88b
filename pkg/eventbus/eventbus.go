package eventbus

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Event - мутация, объявляющая, какие теги она инвалидирует.
type Event interface {
	Name() string
	InvalidatedTags() []string
}

// Listener - обработчик инвалидации. tag - первый из тегов подписки,
// затронутых событием.
type Listener func(ctx context.Context, tag string) error

// Subscription - подписка с изменяемым набором тегов. Запрос после каждого
// выполнения перезаписывает свои теги (записи, которые он вернул, плюс
// коллекционный тег).
type Subscription struct {
	bus      *Bus
	listener Listener
	tags     map[string]struct{}
}

// Bus - шина инвалидации: мутация публикует событие, подписчики с
// пересекающимися тегами перезапускают свой запрос. Доставка синхронная,
// подписчик вызывается не более одного раза на событие.
type Bus struct {
	mu     sync.RWMutex
	subs   map[*Subscription]struct{}
	logger *zap.Logger
}

func New(logger *zap.Logger) *Bus {
	return &Bus{
		subs:   make(map[*Subscription]struct{}),
		logger: logger,
	}
}

func toSet(tags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}
	return set
}

func (b *Bus) Subscribe(listener Listener, tags ...string) *Subscription {
	s := &Subscription{bus: b, listener: listener, tags: toSet(tags)}
	b.mu.Lock()
	b.subs[s] = struct{}{}
	b.mu.Unlock()
	return s
}

// SetTags заменяет набор тегов подписки целиком.
func (s *Subscription) SetTags(tags ...string) {
	s.bus.mu.Lock()
	s.tags = toSet(tags)
	s.bus.mu.Unlock()
}

func (s *Subscription) Close() {
	s.bus.mu.Lock()
	delete(s.bus.subs, s)
	s.bus.mu.Unlock()
}

// Publish доставляет событие всем подпискам, чьи теги пересекаются с
// инвалидированными. Ошибки обработчиков логируются, а не игнорируются.
func (b *Bus) Publish(ctx context.Context, event Event) {
	invalidated := event.InvalidatedTags()

	type delivery struct {
		sub *Subscription
		tag string
	}

	// Срез затронутых подписок собираем под локом, вызываем без него:
	// обработчик вправе перетегировать свою подписку.
	var matched []delivery
	b.mu.RLock()
	for s := range b.subs {
		for _, tag := range invalidated {
			if _, ok := s.tags[tag]; ok {
				matched = append(matched, delivery{sub: s, tag: tag})
				break
			}
		}
	}
	b.mu.RUnlock()

	for _, d := range matched {
		if err := d.sub.listener(ctx, d.tag); err != nil {
			b.logger.Error("Ошибка в обработчике инвалидации",
				zap.String("event", event.Name()),
				zap.String("tag", d.tag),
				zap.Error(err),
			)
		}
	}
}
