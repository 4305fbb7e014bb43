package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inboxpilot/dashboard-client/internal/models"
)

func TestRedirectPath(t *testing.T) {
	onboarded := &models.User{ID: 7, Email: "a@b.com", OnboardingCompleted: true}
	fresh := &models.User{ID: 7, Email: "a@b.com", OnboardingCompleted: false}
	draft := &models.OnboardingData{BusinessName: "Acme"}

	tests := []struct {
		name  string
		state State
		want  Route
	}{
		{"anonymous, no draft", State{}, RouteLogin},
		{"anonymous, draft in progress", State{OnboardingData: draft}, RouteSignup},
		{"authenticated, onboarding incomplete", State{User: fresh, IsAuthenticated: true}, RouteOnboarding},
		{"authenticated, onboarded", State{User: onboarded, IsAuthenticated: true}, RouteDashboard},
		{"authenticated, draft leftover still routes by user", State{User: onboarded, IsAuthenticated: true, OnboardingData: draft}, RouteDashboard},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, RedirectPath(tc.state))
		})
	}
}

func TestRedirectPath_HasNoSideEffects(t *testing.T) {
	state := State{User: &models.User{ID: 7, Email: "a@b.com"}, IsAuthenticated: true}
	before := *state.User

	_ = RedirectPath(state)
	_ = RedirectPath(state)

	assert.Equal(t, before, *state.User)
}
