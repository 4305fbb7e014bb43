// Package store provides the durable, process-wide key-value session store
// backing the auth core. Keys and values are strings; values are JSON
// documents except for the raw bearer token.
//
// Three backends are available: sqlite (default), bbolt, and an in-memory
// store used by tests and ephemeral environments.
package store

import (
	"context"
	"fmt"
)

// Store is the session persistence contract. Get returns
// common.ErrNotFound when the key is absent. SetMany applies all writes as
// a single unit on backends that support atomic batches.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	SetMany(ctx context.Context, values map[string]string) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// Backend names a store implementation selectable via configuration.
type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendBolt   Backend = "bolt"
	BackendMemory Backend = "memory"
)

// Open constructs the store for the configured backend. path is ignored by
// the memory backend.
func Open(ctx context.Context, backend Backend, path string) (Store, error) {
	switch backend {
	case BackendSQLite, "":
		return NewSQLite(ctx, path)
	case BackendBolt:
		return NewBolt(path)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}
