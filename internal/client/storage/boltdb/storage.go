package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"
)

var (
	// BoltDB bucket names
	bucketAuth      = []byte("auth")
	bucketQueue     = []byte("queue")
	bucketDocuments = []byte("documents")
)

// Storage is the BoltDB-backed client storage: auth data, the durable
// offline queue and the local document cache. One file, multiple buckets.
type Storage struct {
	db *bbolt.DB
}

// New creates a new BoltDB storage instance.
// dbPath is the path to the BoltDB database file.
func New(ctx context.Context, dbPath string) (*Storage, error) {
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	storage := &Storage{db: db}

	if err := storage.initBuckets(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return storage, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// initBuckets creates the required buckets if they do not exist yet
func (s *Storage) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketAuth); err != nil {
			return fmt.Errorf("failed to create auth bucket: %w", err)
		}

		if _, err := tx.CreateBucketIfNotExists(bucketQueue); err != nil {
			return fmt.Errorf("failed to create queue bucket: %w", err)
		}

		if _, err := tx.CreateBucketIfNotExists(bucketDocuments); err != nil {
			return fmt.Errorf("failed to create documents bucket: %w", err)
		}

		return nil
	})
}
