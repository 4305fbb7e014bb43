package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/inboxpilot/dashboard-client/internal/common"
)

var boltBucket = []byte("session")

// BoltStore keeps session entries in a single-bucket bbolt file. The file
// lock bbolt takes on open doubles as the single-writer guarantee across
// processes.
type BoltStore struct {
	db *bolt.DB
}

// NewBolt opens (creating if needed) the bbolt file at path and ensures the
// session bucket exists.
func NewBolt(path string) (*BoltStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create store dir: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open session db: %w", err)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(boltBucket)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to init session bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Get(ctx context.Context, key string) (string, error) {
	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(boltBucket).Get([]byte(key))
		if v == nil {
			return common.ErrNotFound
		}
		value = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return "", err
	}
	return string(value), nil
}

func (s *BoltStore) Set(ctx context.Context, key, value string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(boltBucket).Put([]byte(key), []byte(value))
	})
}

// SetMany writes all entries inside one bbolt update transaction.
func (s *BoltStore) SetMany(ctx context.Context, values map[string]string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(boltBucket)
		for key, value := range values {
			if err := b.Put([]byte(key), []byte(value)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *BoltStore) Delete(ctx context.Context, keys ...string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(boltBucket)
		for _, key := range keys {
			if err := b.Delete([]byte(key)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
