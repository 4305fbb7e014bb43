package gateway

import (
	"fmt"
	"time"

	"github.com/inboxpilot/dashboard-client/internal/common"
)

// RateLimitError signals that the backend throttled the call. RetryAfter is
// advisory; callers display it, nothing blocks further calls.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited, retry after %s", e.RetryAfter)
}

// CredentialsError carries the backend's own rejection message, which is
// user-displayable verbatim.
type CredentialsError struct {
	Message string
}

func (e *CredentialsError) Error() string {
	if e.Message == "" {
		return common.ErrUnauthorized.Error()
	}
	return e.Message
}

func (e *CredentialsError) Unwrap() error {
	return common.ErrUnauthorized
}
