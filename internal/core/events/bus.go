package events

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

type Event interface {
	EventType() string
	EventID() string
	OccurredAt() time.Time
	Payload() interface{}
}

type BaseEvent struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) EventID() string {
	return e.ID
}

func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

func (e BaseEvent) Payload() interface{} {
	return e.Data
}

type Handler func(ctx context.Context, event Event) error

// EventBus is the in-process fanout connecting the inspection lifecycle to
// its consumers: completing an inspection triggers action plan creation, the
// overdue scanner feeds notification handlers. One instance lives for the
// whole process; subscriptions happen at startup.
type EventBus struct {
	handlers map[string][]Handler
	logger   *slog.Logger
	mu       sync.RWMutex
}

func NewEventBus(logger *slog.Logger) *EventBus {
	return &EventBus{
		handlers: make(map[string][]Handler),
		logger:   logger,
	}
}

func (eb *EventBus) Subscribe(eventType string, handler Handler) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.handlers[eventType] = append(eb.handlers[eventType], handler)
	eb.logger.Info("event subscription added",
		"type", eventType,
		"handlers", len(eb.handlers[eventType]))
}

// HandlerCount reports how many handlers are subscribed to an event type.
// Startup wiring uses it to verify the action plan consumer is attached.
func (eb *EventBus) HandlerCount(eventType string) int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.handlers[eventType])
}

func (eb *EventBus) subscribers(eventType string) []Handler {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return eb.handlers[eventType]
}

// Publish delivers the event to every subscriber on its own goroutine.
// Handler failures are logged and do not reach the publisher; inspection
// completion must not roll back because a downstream consumer hiccuped.
func (eb *EventBus) Publish(ctx context.Context, event Event) error {
	handlers := eb.subscribers(event.EventType())
	if len(handlers) == 0 {
		eb.logger.Debug("event dropped, nobody subscribed", "type", event.EventType())
		return nil
	}

	eb.logger.Info("dispatching event",
		"type", event.EventType(),
		"id", event.EventID(),
		"handlers", len(handlers))

	for _, handler := range handlers {
		go func(h Handler) {
			if err := h(ctx, event); err != nil {
				eb.logger.Error("event handler returned an error",
					"type", event.EventType(),
					"id", event.EventID(),
					"error", err)
			}
		}(handler)
	}

	return nil
}

// PublishSync runs handlers inline and stops at the first failure. The CLI
// event command and tests use it to observe handler results directly.
func (eb *EventBus) PublishSync(ctx context.Context, event Event) error {
	handlers := eb.subscribers(event.EventType())
	if len(handlers) == 0 {
		eb.logger.Debug("event dropped, nobody subscribed", "type", event.EventType())
		return nil
	}

	eb.logger.Info("dispatching event inline",
		"type", event.EventType(),
		"id", event.EventID(),
		"handlers", len(handlers))

	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			eb.logger.Error("event handler returned an error",
				"type", event.EventType(),
				"id", event.EventID(),
				"error", err)
			return fmt.Errorf("handling %s: %w", event.EventType(), err)
		}
	}

	return nil
}
