package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/inboxpilot/dashboard-client/internal/common"
	"github.com/inboxpilot/dashboard-client/internal/logging"
	"github.com/inboxpilot/dashboard-client/internal/models"
)

const (
	loginPath  = "/api/v1/auth/login"
	signupPath = "/api/v1/auth/signup"
	logoutPath = "/api/v1/auth/logout"

	retryBase  = 200 * time.Millisecond
	retryCount = 2
)

// HTTPGateway implements Gateway over the backend's JSON API.
//
// Transport failures are retried with exponential backoff; HTTP-level
// rejections (401, 429, validation errors) are classified and returned
// immediately.
type HTTPGateway struct {
	baseURL string
	client  *http.Client
	log     logging.Logger

	mu          sync.RWMutex
	accessToken string
}

// NewHTTP builds a gateway for the given base URL, e.g.
// "https://api.inboxpilot.com". timeout bounds each HTTP attempt.
func NewHTTP(baseURL string, timeout time.Duration, log logging.Logger) *HTTPGateway {
	if log == nil {
		log = logging.NewNop()
	}
	return &HTTPGateway{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		log:     log,
	}
}

// envelope is the backend's uniform response wrapper.
type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Error      string          `json:"error"`
	RetryAfter int             `json:"retry_after"`
}

type loginData struct {
	User        models.User `json:"user"`
	AccessToken string      `json:"access_token"`
}

type signupData struct {
	User   models.User `json:"user"`
	Tokens struct {
		AccessToken string `json:"access_token"`
	} `json:"tokens"`
}

func (g *HTTPGateway) Login(ctx context.Context, email, password string) (*AuthPayload, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	env, err := g.postJSON(ctx, loginPath, body)
	if err != nil {
		return nil, err
	}

	var data loginData
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return nil, fmt.Errorf("%w: %w", common.ErrMalformedResponse, err)
		}
	}

	g.SetAccessToken(data.AccessToken)
	return &AuthPayload{User: data.User, AccessToken: data.AccessToken}, nil
}

func (g *HTTPGateway) Signup(ctx context.Context, req SignupRequest) (*AuthPayload, error) {
	env, err := g.postJSON(ctx, signupPath, req)
	if err != nil {
		return nil, err
	}

	var data signupData
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return nil, fmt.Errorf("%w: %w", common.ErrMalformedResponse, err)
		}
	}

	g.SetAccessToken(data.Tokens.AccessToken)
	return &AuthPayload{User: data.User, AccessToken: data.Tokens.AccessToken}, nil
}

// Logout tells the backend to revoke the session. Failures are returned for
// diagnostics only; callers clear local state regardless.
func (g *HTTPGateway) Logout(ctx context.Context) error {
	_, err := g.postJSON(ctx, logoutPath, struct{}{})
	if err != nil {
		return err
	}
	g.SetAccessToken("")
	return nil
}

func (g *HTTPGateway) SetAccessToken(token string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.accessToken = token
}

func (g *HTTPGateway) token() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.accessToken
}

// postJSON sends body to path and returns the decoded envelope, retrying
// transport errors with exponential backoff. Non-2xx statuses and
// success=false envelopes are classified into this package's error types.
func (g *HTTPGateway) postJSON(ctx context.Context, path string, body any) (*envelope, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	var env *envelope
	backoff := retry.WithMaxRetries(retryCount, retry.NewExponential(retryBase))

	doErr := retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(payload))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		if t := g.token(); t != "" {
			req.Header.Set("Authorization", "Bearer "+t)
		}

		resp, err := g.client.Do(req)
		if err != nil {
			g.log.Warn(ctx, "gateway request failed, retrying", "path", path, "error", err)
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		env, err = g.classify(ctx, resp, path)
		return err
	})
	if doErr != nil {
		if !isClassified(doErr) {
			return nil, fmt.Errorf("%w: %w", common.ErrUnavailable, doErr)
		}
		return nil, doErr
	}
	return env, nil
}

// classify turns an HTTP response into either a decoded envelope or one of
// the package error types.
func (g *HTTPGateway) classify(ctx context.Context, resp *http.Response, path string) (*envelope, error) {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrUnavailable, err)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &RateLimitError{RetryAfter: retryAfter(&env, resp)}

	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &CredentialsError{Message: env.Error}

	case resp.StatusCode >= 500:
		g.log.Warn(ctx, "gateway server error", "path", path, "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", common.ErrUnavailable, resp.StatusCode)

	case resp.StatusCode >= 400:
		return nil, &CredentialsError{Message: env.Error}
	}

	if decodeErr != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrMalformedResponse, decodeErr)
	}

	if !env.Success {
		// Throttling can also ride on a 200 envelope.
		if env.RetryAfter > 0 {
			return nil, &RateLimitError{RetryAfter: time.Duration(env.RetryAfter) * time.Second}
		}
		return nil, &CredentialsError{Message: env.Error}
	}

	return &env, nil
}

// retryAfter prefers the envelope's retry_after and falls back to the
// Retry-After header.
func retryAfter(env *envelope, resp *http.Response) time.Duration {
	if env != nil && env.RetryAfter > 0 {
		return time.Duration(env.RetryAfter) * time.Second
	}
	if h := resp.Header.Get("Retry-After"); h != "" {
		if secs, err := strconv.Atoi(h); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return time.Minute
}

// isClassified reports whether err already carries one of the gateway's
// error classifications and should not be re-wrapped as unavailable.
func isClassified(err error) bool {
	var rl *RateLimitError
	var ce *CredentialsError
	return errors.As(err, &rl) || errors.As(err, &ce) ||
		errors.Is(err, common.ErrUnavailable) || errors.Is(err, common.ErrMalformedResponse)
}
