package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/inboxpilot/dashboard-client/internal/audit"
	"github.com/inboxpilot/dashboard-client/internal/common"
	"github.com/inboxpilot/dashboard-client/internal/gateway"
	"github.com/inboxpilot/dashboard-client/internal/logging"
	"github.com/inboxpilot/dashboard-client/internal/models"
	"github.com/inboxpilot/dashboard-client/internal/store"
)

// User-facing failure messages. Raw transport errors never reach callers.
const (
	msgInvalidResponse = "Invalid response from server"
	msgUnavailable     = "Unable to reach the server. Please try again."
	msgGenericFailure  = "Something went wrong. Please try again."
)

// Manager is the authentication state machine. Construct one per process
// and inject it into every consumer; the state is never a package-level
// global.
//
// Initialization is two-phase: Bootstrap seeds the state synchronously
// from the store so route guards never observe a false "logged out" flash,
// then CheckAuthStatus reconciles asynchronously. Reconciliation never
// regresses a validly seeded state except on demonstrably corrupt data.
type Manager struct {
	store store.Store
	gw    gateway.Gateway
	sink  audit.Sink
	log   logging.Logger

	mu    sync.RWMutex
	state State
}

// Option customizes a Manager.
type Option func(*Manager)

// WithAuditSink wires a fire-and-forget activity sink. Sink errors are
// ignored.
func WithAuditSink(s audit.Sink) Option {
	return func(m *Manager) { m.sink = audit.Normalize(s) }
}

// WithLogger injects the structured logger.
func WithLogger(l logging.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// NewManager builds the state machine over the given store and gateway.
// The zero state is Unauthenticated with IsLoading=true until Bootstrap
// runs.
func NewManager(st store.Store, gw gateway.Gateway, opts ...Option) *Manager {
	m := &Manager{
		store: st,
		gw:    gw,
		sink:  audit.Normalize(nil),
		log:   logging.NewNop(),
		state: State{IsLoading: true},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns a copy of the current auth state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.clone()
}

// RedirectPath computes the navigation target for the current state.
func (m *Manager) RedirectPath() Route {
	return RedirectPath(m.State())
}

// Bootstrap seeds the auth state synchronously from the store. Call it
// before the first route decision is rendered. A well-formed local record
// is trusted for the initial render without a backend round-trip: every
// write path required a successful gateway call, so this is a cache-trust
// policy, not a security boundary.
//
// When no usable record exists the state stays Unauthenticated with
// IsLoading=true, deferring to CheckAuthStatus.
func (m *Manager) Bootstrap(ctx context.Context) State {
	user, token, outcome := readCanonicalUser(ctx, m.store)

	switch outcome {
	case recordFound, recordMigrated:
		m.restoreToken(ctx, token)
		m.update(func(s *State) {
			u := user
			s.User = &u
			s.IsAuthenticated = true
			s.IsLoading = false
		})
		if outcome == recordMigrated {
			m.log.Info(ctx, "migrated legacy session record", "user_id", user.ID)
			_ = m.sink.Record(ctx, audit.New(audit.EventSessionMigrated, user.ID, user.Email))
		} else {
			_ = m.sink.Record(ctx, audit.New(audit.EventSessionRestored, user.ID, user.Email))
		}

	case recordCorrupt:
		m.recoverFromCorrupt(ctx)
		m.update(func(s *State) {
			*s = State{IsLoading: true}
		})

	default:
		m.update(func(s *State) {
			*s = State{IsLoading: true}
		})
	}

	return m.State()
}

// CheckAuthStatus reconciles the in-memory state with the store. It covers
// the legacy-migration path, recovers from corrupt records by wiping them,
// opportunistically loads a pending onboarding draft, and always leaves
// IsLoading=false.
func (m *Manager) CheckAuthStatus(ctx context.Context) State {
	user, token, outcome := readCanonicalUser(ctx, m.store)

	switch outcome {
	case recordFound, recordMigrated:
		m.restoreToken(ctx, token)
		draft := readDraft(ctx, m.store)
		m.update(func(s *State) {
			u := user
			s.User = &u
			s.IsAuthenticated = true
			s.IsLoading = false
			s.OnboardingData = draft
		})

	case recordCorrupt:
		m.recoverFromCorrupt(ctx)
		m.update(func(s *State) {
			*s = State{}
		})

	default: // absent: never regress a validly seeded state
		draft := readDraft(ctx, m.store)
		m.update(func(s *State) {
			s.IsLoading = false
			s.OnboardingData = draft
		})
	}

	return m.State()
}

// Login authenticates against the gateway and, on success, writes the
// canonical record through to the store before flipping the in-memory
// state. Failures leave user and IsAuthenticated untouched.
func (m *Manager) Login(ctx context.Context, email, password string) Result {
	m.setLoading(true)
	defer m.setLoading(false)

	payload, err := m.gw.Login(ctx, email, password)
	if err != nil {
		_ = m.sink.Record(ctx, audit.New(audit.EventLoginFailure, 0, email))
		return failure(userMessage(err))
	}

	if err := payload.User.Validate(); err != nil {
		m.log.Warn(ctx, "login succeeded but response lacks user identity", "error", err)
		return failure(msgInvalidResponse)
	}

	if err := m.persistSession(ctx, payload.User, payload.AccessToken); err != nil {
		m.log.Error(ctx, "failed to persist session, clearing partial record", "error", err)
		m.recoverFromCorrupt(ctx)
		return failure(msgGenericFailure)
	}

	u := payload.User
	m.update(func(s *State) {
		user := u
		s.User = &user
		s.IsAuthenticated = true
	})
	_ = m.sink.Record(ctx, audit.New(audit.EventLoginSuccess, u.ID, u.Email))

	return Result{Success: true, User: &u}
}

// Signup creates an account from the provided credentials merged with the
// in-memory onboarding draft. On success the draft is cleared from both
// memory and storage.
func (m *Manager) Signup(ctx context.Context, email, password, name string) Result {
	req := m.buildSignupRequest(email, password, name)
	if err := req.Validate(); err != nil {
		return failure(err.Error())
	}

	m.setLoading(true)
	defer m.setLoading(false)

	payload, err := m.gw.Signup(ctx, req)
	if err != nil {
		_ = m.sink.Record(ctx, audit.New(audit.EventSignupFailure, 0, email))
		return failure(userMessage(err))
	}

	if err := payload.User.Validate(); err != nil {
		m.log.Warn(ctx, "signup succeeded but response lacks user identity", "error", err)
		return failure(msgInvalidResponse)
	}

	if err := m.persistSession(ctx, payload.User, payload.AccessToken); err != nil {
		m.log.Error(ctx, "failed to persist session, clearing partial record", "error", err)
		m.recoverFromCorrupt(ctx)
		return failure(msgGenericFailure)
	}

	if err := m.store.Delete(ctx, KeyOnboarding); err != nil {
		m.log.Warn(ctx, "failed to clear onboarding draft", "error", err)
	}

	u := payload.User
	m.update(func(s *State) {
		user := u
		s.User = &user
		s.IsAuthenticated = true
		s.OnboardingData = nil
	})
	_ = m.sink.Record(ctx, audit.New(audit.EventSignupSuccess, u.ID, u.Email))

	return Result{Success: true, User: &u}
}

// Logout revokes the backend session on a best-effort basis and clears
// local state unconditionally; a failing network call never leaves the
// client stuck logged in.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.gw.Logout(ctx); err != nil {
		m.log.Warn(ctx, "backend logout failed, clearing local session anyway", "error", err)
	}

	var userID int64
	var email string
	if cur := m.State(); cur.User != nil {
		userID, email = cur.User.ID, cur.User.Email
	}

	deleteErr := m.store.Delete(ctx, authKeys...)
	m.gw.SetAccessToken("")
	m.update(func(s *State) {
		*s = State{}
	})
	_ = m.sink.Record(ctx, audit.New(audit.EventLogout, userID, email))

	if deleteErr != nil {
		return fmt.Errorf("failed to clear session store: %w", deleteErr)
	}
	return nil
}

// UpdateUser writes a modified user record through to the store and memory.
// No network call is made.
func (m *Manager) UpdateUser(ctx context.Context, user models.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("invalid user record: %w", err)
	}
	if err := writeCanonicalUser(ctx, m.store, user); err != nil {
		return err
	}
	m.update(func(s *State) {
		u := user
		s.User = &u
	})
	return nil
}

// SetOnboardingData stages (or replaces) the pre-signup draft in memory and
// storage.
func (m *Manager) SetOnboardingData(ctx context.Context, draft models.OnboardingData) error {
	raw, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to encode onboarding draft: %w", err)
	}
	if err := m.store.Set(ctx, KeyOnboarding, string(raw)); err != nil {
		return err
	}
	m.update(func(s *State) {
		d := draft
		s.OnboardingData = &d
	})

	userID, email := m.identity()
	_ = m.sink.Record(ctx, audit.New(audit.EventOnboardingUpdate, userID, email))
	return nil
}

// ClearOnboardingData drops the draft from memory and storage.
func (m *Manager) ClearOnboardingData(ctx context.Context) error {
	if err := m.store.Delete(ctx, KeyOnboarding); err != nil {
		return err
	}
	m.update(func(s *State) {
		s.OnboardingData = nil
	})

	userID, email := m.identity()
	_ = m.sink.Record(ctx, audit.New(audit.EventOnboardingClear, userID, email))
	return nil
}

// --- internals ---

func (m *Manager) update(fn func(s *State)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(&m.state)
}

func (m *Manager) setLoading(v bool) {
	m.update(func(s *State) { s.IsLoading = v })
}

func (m *Manager) identity() (int64, string) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state.User == nil {
		return 0, ""
	}
	return m.state.User.ID, m.state.User.Email
}

// restoreToken hands a persisted bearer token back to the gateway so calls
// made after a restart stay authenticated. An expired token is only worth
// a log line; the cached session itself stays trusted.
func (m *Manager) restoreToken(ctx context.Context, token string) {
	if token == "" {
		return
	}
	m.gw.SetAccessToken(token)
	if exp, ok := TokenExpiry(token); ok && exp.Before(time.Now()) {
		m.log.Warn(ctx, "stored access token is expired", "expired_at", exp)
	}
}

// recoverFromCorrupt wipes every auth key. Treated as an implicit logout,
// never surfaced to the user as an error.
func (m *Manager) recoverFromCorrupt(ctx context.Context) {
	m.log.Warn(ctx, "clearing corrupt or partial session record")
	if err := m.store.Delete(ctx, authKeys...); err != nil {
		m.log.Error(ctx, "failed to wipe session keys", "error", err)
	}
	m.gw.SetAccessToken("")
	_ = m.sink.Record(ctx, audit.New(audit.EventSessionCorrupt, 0, ""))
}

// persistSession writes the canonical record (user document, mirrored id,
// bearer token) as one unit.
func (m *Manager) persistSession(ctx context.Context, user models.User, token string) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	values := map[string]string{
		KeyUser:   string(raw),
		KeyUserID: strconv.FormatInt(user.ID, 10),
	}
	if token != "" {
		values[KeyAccessToken] = token
	}
	return m.store.SetMany(ctx, values)
}

// buildSignupRequest merges the staged onboarding draft with the provided
// credentials. The business email defaults to the signup email when the
// draft never set one.
func (m *Manager) buildSignupRequest(email, password, name string) gateway.SignupRequest {
	req := gateway.SignupRequest{
		Email:         email,
		Password:      password,
		Name:          name,
		BusinessEmail: email,
	}

	if draft := m.State().OnboardingData; draft != nil {
		req.BusinessName = draft.BusinessName
		if draft.BusinessEmail != "" {
			req.BusinessEmail = draft.BusinessEmail
		}
		req.Industry = draft.Industry
		req.TeamSize = draft.TeamSize
		req.Services = draft.Services
		req.PrivacyConsent = draft.PrivacyConsent
		req.TermsAccepted = draft.TermsAccepted
		req.MarketingConsent = draft.MarketingConsent
	}

	return req
}

// userMessage maps a gateway failure to the string shown to the user.
func userMessage(err error) string {
	var rl *gateway.RateLimitError
	if errors.As(err, &rl) {
		return rateLimitMessage(rl.RetryAfter)
	}

	var ce *gateway.CredentialsError
	if errors.As(err, &ce) {
		if ce.Message != "" {
			return ce.Message
		}
		return "Invalid email or password"
	}

	if errors.Is(err, common.ErrMalformedResponse) {
		return msgInvalidResponse
	}
	if errors.Is(err, common.ErrUnavailable) {
		return msgUnavailable
	}
	return msgGenericFailure
}

// rateLimitMessage renders the advisory wait time, rounded up to whole
// minutes.
func rateLimitMessage(retryAfter time.Duration) string {
	minutes := int(math.Ceil(retryAfter.Seconds() / 60))
	if minutes <= 1 {
		return "Too many login attempts. Please wait 1 minute and try again."
	}
	return fmt.Sprintf("Too many login attempts. Please wait %d minutes and try again.", minutes)
}
