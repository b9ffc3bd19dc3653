package eventbus

import (
	"context"
	"log/slog"
	"sync"
)

// Handler processes a published payload for a routing key.
type Handler func(ctx context.Context, routingKey string, payload []byte)

// InProcessBus is an in-memory bus for local mode (no RabbitMQ). Events
// are delivered synchronously to registered handlers.
type InProcessBus struct {
	logger *slog.Logger

	mu       sync.Mutex
	handlers map[string][]Handler
}

// NewInProcessBus creates a new in-process bus.
func NewInProcessBus(logger *slog.Logger) *InProcessBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &InProcessBus{
		logger:   logger,
		handlers: make(map[string][]Handler),
	}
}

// Subscribe registers a handler for a routing key. The empty key
// subscribes to every event.
func (b *InProcessBus) Subscribe(routingKey string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[routingKey] = append(b.handlers[routingKey], h)
}

// Publish delivers the payload synchronously to matching handlers.
func (b *InProcessBus) Publish(ctx context.Context, routingKey string, payload []byte) error {
	b.mu.Lock()
	handlers := make([]Handler, 0, len(b.handlers[routingKey])+len(b.handlers[""]))
	handlers = append(handlers, b.handlers[routingKey]...)
	handlers = append(handlers, b.handlers[""]...)
	b.mu.Unlock()

	for _, h := range handlers {
		h(ctx, routingKey, payload)
	}

	b.logger.Debug("event dispatched",
		"routing_key", routingKey,
		"handlers", len(handlers),
	)
	return nil
}

// Close is a no-op for the in-process bus.
func (b *InProcessBus) Close() error {
	return nil
}

var _ Publisher = (*InProcessBus)(nil)
