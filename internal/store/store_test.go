package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inboxpilot/dashboard-client/internal/common"
)

// openBackends returns one fresh instance of every backend so the contract
// tests run against each of them.
func openBackends(t *testing.T) map[string]Store {
	t.Helper()
	ctx := context.Background()
	dir := t.TempDir()

	sqlite, err := NewSQLite(ctx, filepath.Join(dir, "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close() })

	boltStore, err := NewBolt(filepath.Join(dir, "session.bolt"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = boltStore.Close() })

	return map[string]Store{
		"sqlite": sqlite,
		"bolt":   boltStore,
		"memory": NewMemory(),
	}
}

func TestStore_SetAndGet(t *testing.T) {
	ctx := context.Background()
	for name, s := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set(ctx, "user_id", "7"))

			v, err := s.Get(ctx, "user_id")
			require.NoError(t, err)
			require.Equal(t, "7", v)

			// overwrite
			require.NoError(t, s.Set(ctx, "user_id", "8"))
			v, err = s.Get(ctx, "user_id")
			require.NoError(t, err)
			require.Equal(t, "8", v)
		})
	}
}

func TestStore_GetMissingReturnsNotFound(t *testing.T) {
	ctx := context.Background()
	for name, s := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(ctx, "nope")
			require.ErrorIs(t, err, common.ErrNotFound)
		})
	}
}

func TestStore_SetMany(t *testing.T) {
	ctx := context.Background()
	for name, s := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.SetMany(ctx, map[string]string{
				"user":         `{"id":1}`,
				"user_id":      "1",
				"access_token": "tok",
			}))

			for key, want := range map[string]string{"user": `{"id":1}`, "user_id": "1", "access_token": "tok"} {
				v, err := s.Get(ctx, key)
				require.NoError(t, err)
				require.Equal(t, want, v)
			}
		})
	}
}

func TestStore_DeleteManyAndMissing(t *testing.T) {
	ctx := context.Background()
	for name, s := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set(ctx, "a", "1"))
			require.NoError(t, s.Set(ctx, "b", "2"))

			// deleting a missing key alongside existing ones is not an error
			require.NoError(t, s.Delete(ctx, "a", "b", "missing"))

			_, err := s.Get(ctx, "a")
			require.ErrorIs(t, err, common.ErrNotFound)
			_, err = s.Get(ctx, "b")
			require.ErrorIs(t, err, common.ErrNotFound)
		})
	}
}

func TestOpen_SelectsBackend(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := Open(ctx, BackendSQLite, filepath.Join(dir, "a.db"))
	require.NoError(t, err)
	require.IsType(t, &SQLiteStore{}, s)
	require.NoError(t, s.Close())

	s, err = Open(ctx, BackendBolt, filepath.Join(dir, "a.bolt"))
	require.NoError(t, err)
	require.IsType(t, &BoltStore{}, s)
	require.NoError(t, s.Close())

	s, err = Open(ctx, BackendMemory, "")
	require.NoError(t, err)
	require.IsType(t, &MemoryStore{}, s)

	// empty backend falls back to sqlite
	s, err = Open(ctx, "", filepath.Join(dir, "b.db"))
	require.NoError(t, err)
	require.IsType(t, &SQLiteStore{}, s)
	require.NoError(t, s.Close())

	_, err = Open(ctx, "etcd", "")
	require.Error(t, err)
}
