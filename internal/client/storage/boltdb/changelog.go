package boltdb

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/loreforge/loreforge/internal/client/storage"
	"github.com/loreforge/loreforge/internal/models"
)

// seqKey encodes a sequence number so that byte order equals numeric order.
func seqKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}

// Append records a local mutation, coalescing with any pending entry for
// the same clientID. The first pending entry's sequence is kept so that
// push order stays stable across coalesced edits.
func (s *Storage) Append(ctx context.Context, entry *models.ChangeLogEntry) (uint64, error) {
	if s.db == nil {
		return 0, storage.ErrStorageClosed
	}

	var assigned uint64

	err := s.db.Update(func(tx *bbolt.Tx) error {
		project, err := projectBucket(tx, bucketChangeLog, entry.ProjectID, true)
		if err != nil {
			return fmt.Errorf("failed to open project bucket: %w", err)
		}
		entries, err := project.CreateBucketIfNotExists(subEntries)
		if err != nil {
			return fmt.Errorf("failed to create entries bucket: %w", err)
		}
		index, err := project.CreateBucketIfNotExists(subIndex)
		if err != nil {
			return fmt.Errorf("failed to create index bucket: %w", err)
		}

		existingSeq := index.Get([]byte(entry.ClientID))
		if existingSeq == nil {
			// No pending entry: assign a fresh sequence.
			seq, err := entries.NextSequence()
			if err != nil {
				return fmt.Errorf("failed to assign sequence: %w", err)
			}
			entry.Sequence = seq
			assigned = seq
			return putEntry(entries, index, entry)
		}

		data := entries.Get(existingSeq)
		if data == nil {
			return fmt.Errorf("change log index out of sync for %s", entry.ClientID)
		}
		var pending models.ChangeLogEntry
		if err := json.Unmarshal(data, &pending); err != nil {
			return fmt.Errorf("failed to unmarshal pending entry: %w", err)
		}

		coalesced, remove, err := coalesce(&pending, entry)
		if err != nil {
			return err
		}

		if remove {
			// create followed by delete before any sync: nothing was ever
			// pushed, so the entry disappears entirely.
			if err := entries.Delete(existingSeq); err != nil {
				return fmt.Errorf("failed to remove coalesced entry: %w", err)
			}
			if err := index.Delete([]byte(entry.ClientID)); err != nil {
				return fmt.Errorf("failed to remove index entry: %w", err)
			}
			assigned = pending.Sequence
			return nil
		}

		assigned = coalesced.Sequence
		return putEntry(entries, index, coalesced)
	})
	if err != nil {
		return 0, err
	}

	return assigned, nil
}

// coalesce folds a new mutation into the pending entry for the same
// clientID. Returns the merged entry, or remove=true when the pair cancels
// out (create+delete before first sync).
func coalesce(pending *models.ChangeLogEntry, next *models.ChangeLogEntry) (*models.ChangeLogEntry, bool, error) {
	if next.Operation == models.OpCreate {
		// A create can only be first for a clientID; clientIDs are never
		// reassigned.
		return nil, false, storage.ErrInvalidOperation
	}
	if pending.Operation == models.OpDelete {
		return nil, false, storage.ErrInvalidOperation
	}

	merged := *pending
	merged.PayloadSnapshot = next.PayloadSnapshot
	merged.AppendedAt = next.AppendedAt

	switch next.Operation {
	case models.OpUpdate:
		// create+update stays a create; update+update stays an update.
	case models.OpDelete:
		if pending.Operation == models.OpCreate {
			return nil, true, nil
		}
		merged.Operation = models.OpDelete
	}

	return &merged, false, nil
}

func putEntry(entries, index *bbolt.Bucket, entry *models.ChangeLogEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal change log entry: %w", err)
	}
	if err := entries.Put(seqKey(entry.Sequence), data); err != nil {
		return fmt.Errorf("failed to save change log entry: %w", err)
	}
	if err := index.Put([]byte(entry.ClientID), seqKey(entry.Sequence)); err != nil {
		return fmt.Errorf("failed to update change log index: %w", err)
	}
	return nil
}

// Drain returns up to maxBatch pending entries in ascending sequence order.
// Entries are not removed; that happens only in Acknowledge.
func (s *Storage) Drain(ctx context.Context, projectID string, maxBatch int) ([]*models.ChangeLogEntry, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var result []*models.ChangeLogEntry

	err := s.db.View(func(tx *bbolt.Tx) error {
		project, err := projectBucket(tx, bucketChangeLog, projectID, false)
		if err != nil {
			return err
		}
		if project == nil {
			return nil
		}
		entries := project.Bucket(subEntries)
		if entries == nil {
			return nil
		}

		c := entries.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			if maxBatch > 0 && len(result) >= maxBatch {
				break
			}
			var entry models.ChangeLogEntry
			if err := json.Unmarshal(v, &entry); err != nil {
				return fmt.Errorf("failed to unmarshal change log entry: %w", err)
			}
			result = append(result, &entry)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to drain change log: %w", err)
	}

	return result, nil
}

// Acknowledge removes the entries whose sequences the server confirmed.
func (s *Storage) Acknowledge(ctx context.Context, projectID string, seqs []uint64) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}
	if len(seqs) == 0 {
		return nil
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		project, err := projectBucket(tx, bucketChangeLog, projectID, false)
		if err != nil {
			return err
		}
		if project == nil {
			return nil
		}
		entries := project.Bucket(subEntries)
		index := project.Bucket(subIndex)
		if entries == nil || index == nil {
			return nil
		}

		for _, seq := range seqs {
			key := seqKey(seq)
			data := entries.Get(key)
			if data == nil {
				// Already acknowledged in a previous, interrupted commit.
				continue
			}
			var entry models.ChangeLogEntry
			if err := json.Unmarshal(data, &entry); err != nil {
				return fmt.Errorf("failed to unmarshal change log entry: %w", err)
			}
			if err := entries.Delete(key); err != nil {
				return fmt.Errorf("failed to delete change log entry: %w", err)
			}
			// The index may already point at a newer pending entry appended
			// mid-cycle; only remove it when it still references this one.
			if idx := index.Get([]byte(entry.ClientID)); idx != nil && binary.BigEndian.Uint64(idx) == seq {
				if err := index.Delete([]byte(entry.ClientID)); err != nil {
					return fmt.Errorf("failed to delete index entry: %w", err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("acknowledge transaction failed: %w", err)
	}

	return nil
}

// PendingCount returns the number of entries awaiting acknowledgment.
func (s *Storage) PendingCount(ctx context.Context, projectID string) (int, error) {
	if s.db == nil {
		return 0, storage.ErrStorageClosed
	}

	count := 0
	err := s.db.View(func(tx *bbolt.Tx) error {
		project, err := projectBucket(tx, bucketChangeLog, projectID, false)
		if err != nil {
			return err
		}
		if project == nil {
			return nil
		}
		if entries := project.Bucket(subEntries); entries != nil {
			count = entries.Stats().KeyN
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count pending entries: %w", err)
	}

	return count, nil
}
