package models

import (
	"time"

	"github.com/google/uuid"
)

// Account event types published to Kafka.
const (
	EventUserRegistered = "user.registered"
	EventUserCreated    = "user.created"
	EventUserUpdated    = "user.updated"
	EventUserDeleted    = "user.deleted"
)

// UserEvent is the message published for every account lifecycle change.
type UserEvent struct {
	EventID    string    `json:"event_id"`    // Unique event ID
	Type       string    `json:"type"`        // One of the Event* constants
	UserID     uuid.UUID `json:"user_id"`     // Affected user
	Username   string    `json:"username"`    // Username at event time
	OccurredAt time.Time `json:"occurred_at"` // Event timestamp
}
