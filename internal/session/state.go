// Package session owns the client's authentication state: it seeds it
// synchronously from the durable store at startup, reconciles it
// asynchronously afterwards, and keeps store, gateway, and in-memory state
// in step on every login, signup, logout, and onboarding edit.
package session

import "github.com/inboxpilot/dashboard-client/internal/models"

// State is the single source of truth for "who is logged in".
//
// Invariant: IsAuthenticated implies User != nil with a non-zero id and a
// non-empty email. IsLoading is true only between process start and the
// first CheckAuthStatus resolution, or while a network auth call is in
// flight.
type State struct {
	User            *models.User
	IsAuthenticated bool
	IsLoading       bool
	OnboardingData  *models.OnboardingData
}

// clone returns a copy safe to hand to callers. Pointer targets are copied
// one level deep; the User.Metadata map is shared.
func (s State) clone() State {
	out := s
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	if s.OnboardingData != nil {
		d := *s.OnboardingData
		out.OnboardingData = &d
	}
	return out
}

// Result is the outcome of a state-mutating operation. Error carries a
// user-displayable message, never a raw transport error.
type Result struct {
	Success bool
	User    *models.User
	Error   string
}

func failure(msg string) Result {
	return Result{Error: msg}
}
