// Package gateway talks to the identity backend: login, signup, and
// best-effort logout. The session core depends only on the Gateway
// interface; the HTTP implementation lives in this package too.
package gateway

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/inboxpilot/dashboard-client/internal/models"
)

// AuthPayload is what a successful login or signup yields: the account
// record and, when the backend issues one, a bearer token.
type AuthPayload struct {
	User        models.User
	AccessToken string
}

// SignupRequest is the merged signup payload: credentials plus whatever the
// onboarding draft collected before the account existed.
type SignupRequest struct {
	Email            string   `json:"email"`
	Password         string   `json:"password"`
	Name             string   `json:"name"`
	BusinessName     string   `json:"business_name,omitempty"`
	BusinessEmail    string   `json:"business_email,omitempty"`
	Industry         string   `json:"industry,omitempty"`
	TeamSize         string   `json:"team_size,omitempty"`
	Services         []string `json:"services,omitempty"`
	PrivacyConsent   bool     `json:"privacy_consent"`
	TermsAccepted    bool     `json:"terms_accepted"`
	MarketingConsent bool     `json:"marketing_consent"`
}

// Validate checks the fields the backend will reject anyway, so a doomed
// request never leaves the client.
func (r SignupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Password, validation.Required),
		validation.Field(&r.Name, validation.Required),
	)
}

// Gateway is the network contract the session core requires.
//
// Implementations classify failures into the error types of this package:
// *RateLimitError, *CredentialsError, and the common.ErrUnavailable /
// common.ErrMalformedResponse sentinels. Logout is best effort; its error
// must never block a local logout.
type Gateway interface {
	Login(ctx context.Context, email, password string) (*AuthPayload, error)
	Signup(ctx context.Context, req SignupRequest) (*AuthPayload, error)
	Logout(ctx context.Context) error

	// SetAccessToken installs a previously persisted bearer token so calls
	// made after a restart (logout in particular) stay authenticated.
	SetAccessToken(token string)
}
