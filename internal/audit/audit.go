// Package audit delivers fire-and-forget notifications about session
// events. Sinks are advisory: the session core ignores their errors and
// never blocks on them.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/inboxpilot/dashboard-client/internal/logging"
)

// EventType enumerates supported activity categories.
type EventType string

const (
	EventLoginSuccess     EventType = "auth.login.success"
	EventLoginFailure     EventType = "auth.login.failure"
	EventSignupSuccess    EventType = "auth.signup.success"
	EventSignupFailure    EventType = "auth.signup.failure"
	EventLogout           EventType = "auth.logout"
	EventOnboardingUpdate EventType = "onboarding.draft.updated"
	EventOnboardingClear  EventType = "onboarding.draft.cleared"
	EventSessionRestored  EventType = "session.restored"
	EventSessionMigrated  EventType = "session.migrated"
	EventSessionCorrupt   EventType = "session.corrupt"
)

// Event captures audit-friendly information about an action.
type Event struct {
	ID         string
	Type       EventType
	UserID     int64
	Email      string
	Metadata   map[string]any
	OccurredAt time.Time
}

// Sink consumes activity events for auditing/telemetry purposes.
type Sink interface {
	Record(ctx context.Context, event Event) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, event Event) error

// Record implements Sink.
func (f SinkFunc) Record(ctx context.Context, event Event) error {
	if f == nil {
		return nil
	}
	return f(ctx, event)
}

type noopSink struct{}

func (noopSink) Record(context.Context, Event) error { return nil }

// Normalize returns a usable sink even when the caller passed nil.
func Normalize(s Sink) Sink {
	if s == nil {
		return noopSink{}
	}
	return s
}

// New fills in the event's ID and timestamp.
func New(eventType EventType, userID int64, email string) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		UserID:     userID,
		Email:      email,
		OccurredAt: time.Now().UTC(),
	}
}

// LogSink writes events to the structured log. It is the default sink of
// the interactive shell.
type LogSink struct {
	log logging.Logger
}

func NewLogSink(log logging.Logger) *LogSink {
	if log == nil {
		log = logging.NewNop()
	}
	return &LogSink{log: log}
}

func (s *LogSink) Record(ctx context.Context, event Event) error {
	s.log.Info(ctx, "activity",
		"event_id", event.ID,
		"event_type", string(event.Type),
		"user_id", event.UserID,
		"email", event.Email,
	)
	return nil
}
