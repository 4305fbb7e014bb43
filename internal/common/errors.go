// Package common defines shared constants and sentinel errors used across
// the dashboard client. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Store-level errors.
	ErrNotFound = errors.New("not found")

	// Session-level errors.
	ErrCorruptRecord = errors.New("corrupt persisted record")

	// Gateway-level errors.
	ErrUnavailable       = errors.New("service unavailable")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrMalformedResponse = errors.New("malformed server response")
)
