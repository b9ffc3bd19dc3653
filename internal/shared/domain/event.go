// Package domain holds the event contract shared across contexts.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent represents something that happened in the domain.
type DomainEvent interface {
	EventID() uuid.UUID
	SubjectID() string
	RoutingKey() string
	OccurredAt() time.Time
}

// BaseEvent provides common event functionality. Subject IDs are opaque
// strings because the identity provider owns principal identifiers.
type BaseEvent struct {
	ID      uuid.UUID `json:"event_id"`
	Subject string    `json:"subject_id"`
	Key     string    `json:"routing_key"`
	At      time.Time `json:"occurred_at"`
}

// NewBaseEvent creates a new base event.
func NewBaseEvent(subjectID, routingKey string) BaseEvent {
	return BaseEvent{
		ID:      uuid.New(),
		Subject: subjectID,
		Key:     routingKey,
		At:      time.Now().UTC(),
	}
}

func (e BaseEvent) EventID() uuid.UUID    { return e.ID }
func (e BaseEvent) SubjectID() string     { return e.Subject }
func (e BaseEvent) RoutingKey() string    { return e.Key }
func (e BaseEvent) OccurredAt() time.Time { return e.At }
