package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/loreforge/loreforge/internal/client/storage"
	"github.com/loreforge/loreforge/internal/models"
)

// GetCursor returns the project's sync cursor, or a zero cursor if the
// project has never synced.
func (s *Storage) GetCursor(ctx context.Context, projectID string) (*models.SyncCursor, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	cursor := &models.SyncCursor{ProjectID: projectID}

	err := s.db.View(func(tx *bbolt.Tx) error {
		project, err := projectBucket(tx, bucketSyncState, projectID, false)
		if err != nil {
			return err
		}
		if project == nil {
			return nil
		}
		data := project.Get(keyCursor)
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, cursor); err != nil {
			return fmt.Errorf("failed to unmarshal cursor: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return cursor, nil
}

// SaveCursor durably stores the cursor.
func (s *Storage) SaveCursor(ctx context.Context, cursor *models.SyncCursor) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	data, err := json.Marshal(cursor)
	if err != nil {
		return fmt.Errorf("failed to marshal cursor: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		project, err := projectBucket(tx, bucketSyncState, cursor.ProjectID, true)
		if err != nil {
			return fmt.Errorf("failed to open project bucket: %w", err)
		}
		return project.Put(keyCursor, data)
	})
	if err != nil {
		return fmt.Errorf("failed to save cursor: %w", err)
	}

	return nil
}

// RecordSynced stores the fingerprint/version last agreed with the server.
func (s *Storage) RecordSynced(ctx context.Context, projectID, clientID string, state *models.SyncedState) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal synced state: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		project, err := projectBucket(tx, bucketSyncState, projectID, true)
		if err != nil {
			return fmt.Errorf("failed to open project bucket: %w", err)
		}
		synced, err := project.CreateBucketIfNotExists(subSynced)
		if err != nil {
			return fmt.Errorf("failed to create synced bucket: %w", err)
		}
		return synced.Put([]byte(clientID), data)
	})
	if err != nil {
		return fmt.Errorf("failed to record synced state: %w", err)
	}

	return nil
}

// GetSyncedState returns the last agreed state for an element.
func (s *Storage) GetSyncedState(ctx context.Context, projectID, clientID string) (*models.SyncedState, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var state *models.SyncedState

	err := s.db.View(func(tx *bbolt.Tx) error {
		project, err := projectBucket(tx, bucketSyncState, projectID, false)
		if err != nil {
			return err
		}
		if project == nil {
			return storage.ErrStateNotFound
		}
		synced := project.Bucket(subSynced)
		if synced == nil {
			return storage.ErrStateNotFound
		}
		data := synced.Get([]byte(clientID))
		if data == nil {
			return storage.ErrStateNotFound
		}
		state = &models.SyncedState{}
		if err := json.Unmarshal(data, state); err != nil {
			return fmt.Errorf("failed to unmarshal synced state: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return state, nil
}

// SaveConflict persists a conflict record.
func (s *Storage) SaveConflict(ctx context.Context, record *models.ConflictRecord) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal conflict record: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketConflicts)
		return bucket.Put([]byte(record.ID), data)
	})
	if err != nil {
		return fmt.Errorf("failed to save conflict record: %w", err)
	}

	return nil
}

// ListConflicts returns all retained conflict records for a project.
func (s *Storage) ListConflicts(ctx context.Context, projectID string) ([]*models.ConflictRecord, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var records []*models.ConflictRecord

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketConflicts)
		return bucket.ForEach(func(k, v []byte) error {
			var record models.ConflictRecord
			if err := json.Unmarshal(v, &record); err != nil {
				return fmt.Errorf("failed to unmarshal conflict record: %w", err)
			}
			if record.ProjectID == projectID {
				records = append(records, &record)
			}
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list conflicts: %w", err)
	}

	return records, nil
}

// DeleteConflict removes a reviewed conflict record.
func (s *Storage) DeleteConflict(ctx context.Context, id string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketConflicts)
		if bucket.Get([]byte(id)) == nil {
			return storage.ErrConflictNotFound
		}
		return bucket.Delete([]byte(id))
	})
}

// RecordRejection notes a permanent server rejection for an element.
func (s *Storage) RecordRejection(ctx context.Context, projectID, clientID, reason string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		project, err := projectBucket(tx, bucketSyncState, projectID, true)
		if err != nil {
			return fmt.Errorf("failed to open project bucket: %w", err)
		}
		rejections, err := project.CreateBucketIfNotExists(subRejections)
		if err != nil {
			return fmt.Errorf("failed to create rejections bucket: %w", err)
		}
		return rejections.Put([]byte(clientID), []byte(reason))
	})
	if err != nil {
		return fmt.Errorf("failed to record rejection: %w", err)
	}

	return nil
}

// GetRejection returns the rejection note for an element, or "" if none.
func (s *Storage) GetRejection(ctx context.Context, projectID, clientID string) (string, error) {
	if s.db == nil {
		return "", storage.ErrStorageClosed
	}

	var reason string
	err := s.db.View(func(tx *bbolt.Tx) error {
		project, err := projectBucket(tx, bucketSyncState, projectID, false)
		if err != nil {
			return err
		}
		if project == nil {
			return nil
		}
		if rejections := project.Bucket(subRejections); rejections != nil {
			reason = string(rejections.Get([]byte(clientID)))
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return reason, nil
}

// ClearRejection removes the rejection note for an element.
func (s *Storage) ClearRejection(ctx context.Context, projectID, clientID string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		project, err := projectBucket(tx, bucketSyncState, projectID, false)
		if err != nil {
			return err
		}
		if project == nil {
			return nil
		}
		if rejections := project.Bucket(subRejections); rejections != nil {
			return rejections.Delete([]byte(clientID))
		}
		return nil
	})
}
