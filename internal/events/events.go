package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event source and schema version stamped on every published event.
const (
	EventSource  = "portfolio-service"
	EventVersion = "1.0"
)

// Domain event types emitted by the portfolio services.
const (
	EventPracticeCreated = "portfolio.practice_created"
	EventPracticeDeleted = "portfolio.practice_deleted"
	EventSeminarCreated  = "portfolio.seminar_created"
	EventSeminarDeleted  = "portfolio.seminar_deleted"
	EventProfileUpdated  = "portfolio.profile_updated"
	EventProofExtracted  = "portfolio.proof_extracted"
)

// Event is the envelope published to the event stream.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// NewEvent builds an envelope with identity and provenance filled in.
func NewEvent(eventType string, data interface{}) Event {
	return Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Source:    EventSource,
		Version:   EventVersion,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// EventPublisher publishes domain events to an external stream.
// Publishing is best-effort: callers log failures but never roll back
// the originating mutation.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}
