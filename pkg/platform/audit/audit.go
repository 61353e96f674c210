// Package audit captures configuration-change events: who changed which
// toggle or override record, when, and to what. Events are persisted through
// a Store and optionally fanned out to a Sink (e.g. a Kafka topic) for
// downstream consumers.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	id "campus/pkg/domain"
)

// Action identifies what kind of configuration change an event records.
type Action string

const (
	ActionOverrideSet     Action = "course_override_set"
	ActionOverrideDeleted Action = "course_override_deleted"
	ActionSwitchSet       Action = "switch_set"
	ActionFlagSet         Action = "flag_set"
	ActionConfigSeeded    Action = "config_seeded"
)

// Event is emitted from admin and seeding paths. Keep it transport-agnostic
// so stores and sinks can fan out.
type Event struct {
	ID        uuid.UUID `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Action    Action    `json:"action"`
	// ActorID is the admin who performed the change; zero for system actions
	// such as startup seeding.
	ActorID id.UserID `json:"actor_id"`
	// Key is the toggle or override key the event concerns.
	Key string `json:"key"`
	// CourseID is the serialized course key for course-scoped changes,
	// empty otherwise.
	CourseID string `json:"course_id,omitempty"`
	// Detail is a short human-readable description of the new state.
	Detail string `json:"detail,omitempty"`
	// RequestID is the correlation ID from the HTTP request context.
	RequestID string `json:"request_id,omitempty"`
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListRecent(ctx context.Context, limit int) ([]Event, error)
}

// Sink receives events after they are persisted. Sink failures are logged,
// not propagated: losing a fan-out copy must not fail the admin operation.
type Sink interface {
	Publish(ctx context.Context, event Event) error
}
