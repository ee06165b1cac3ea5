package events

import (
	"context"
	"log/slog"
	"sync"
)

// MockEventPublisher records published events in memory. It doubles as
// the publisher for deployments with no broker configured and as the
// assertion point in tests.
type MockEventPublisher struct {
	mu     sync.Mutex
	events []Event
	logger *slog.Logger
}

func NewMockEventPublisher(logger *slog.Logger) *MockEventPublisher {
	return &MockEventPublisher{logger: logger}
}

func (p *MockEventPublisher) Publish(ctx context.Context, event Event) error {
	p.mu.Lock()
	p.events = append(p.events, event)
	p.mu.Unlock()

	p.logger.Debug("Recorded event", "event_type", event.Type, "event_id", event.ID)
	return nil
}

func (p *MockEventPublisher) Close() error { return nil }

// GetPublishedEvents returns a copy of everything published so far.
func (p *MockEventPublisher) GetPublishedEvents() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]Event, len(p.events))
	copy(out, p.events)
	return out
}

// ClearEvents discards recorded events.
func (p *MockEventPublisher) ClearEvents() {
	p.mu.Lock()
	p.events = nil
	p.mu.Unlock()
}
