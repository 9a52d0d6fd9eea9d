// Package boltdb implements the client storage interfaces on top of a
// single bbolt database file.
package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"
)

var (
	// BoltDB top-level bucket names
	bucketAuth      = []byte("auth")
	bucketElements  = []byte("elements")
	bucketChangeLog = []byte("changelog")
	bucketSyncState = []byte("syncstate")
	bucketConflicts = []byte("conflicts")

	// nested bucket / key names
	subEntries    = []byte("entries")
	subIndex      = []byte("index")
	subSynced     = []byte("synced")
	subRejections = []byte("rejections")
	keyCursor     = []byte("cursor")
)

// Storage implements the client storage interfaces on BoltDB.
// Per-project data lives in nested buckets keyed by projectID.
type Storage struct {
	db *bbolt.DB
}

// New opens (or creates) the client database at dbPath.
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

// Close closes the database connection.
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// initBuckets creates the top-level buckets if they don't exist.
func (s *Storage) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketAuth, bucketElements, bucketChangeLog, bucketSyncState, bucketConflicts} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("failed to create %s bucket: %w", name, err)
			}
		}
		return nil
	})
}

// projectBucket returns the nested per-project bucket under parent,
// creating it when create is set. Returns nil when absent and create is
// false.
func projectBucket(tx *bbolt.Tx, parent []byte, projectID string, create bool) (*bbolt.Bucket, error) {
	top := tx.Bucket(parent)
	if top == nil {
		return nil, fmt.Errorf("bucket %s missing", parent)
	}
	if create {
		return top.CreateBucketIfNotExists([]byte(projectID))
	}
	return top.Bucket([]byte(projectID)), nil
}
