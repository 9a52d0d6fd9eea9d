package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/loreforge/loreforge/internal/client/storage"
	"github.com/loreforge/loreforge/internal/models"
)

// SaveElement stores or replaces an element in its project bucket.
func (s *Storage) SaveElement(ctx context.Context, element *models.Element) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	data, err := json.Marshal(element)
	if err != nil {
		return fmt.Errorf("failed to marshal element: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := projectBucket(tx, bucketElements, element.ProjectID, true)
		if err != nil {
			return fmt.Errorf("failed to open project bucket: %w", err)
		}
		if err := bucket.Put([]byte(element.ClientID), data); err != nil {
			return fmt.Errorf("failed to save element: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

// GetElement retrieves an element by clientID, tombstones included.
func (s *Storage) GetElement(ctx context.Context, projectID, clientID string) (*models.Element, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var element *models.Element

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket, err := projectBucket(tx, bucketElements, projectID, false)
		if err != nil {
			return err
		}
		if bucket == nil {
			return storage.ErrElementNotFound
		}

		data := bucket.Get([]byte(clientID))
		if data == nil {
			return storage.ErrElementNotFound
		}

		element = &models.Element{}
		if err := json.Unmarshal(data, element); err != nil {
			return fmt.Errorf("failed to unmarshal element: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return element, nil
}

// ListElements returns the project's visible (non-deleted) elements.
func (s *Storage) ListElements(ctx context.Context, projectID string) ([]*models.Element, error) {
	return s.listElements(projectID, false)
}

// ListAllElements returns every element including tombstones.
func (s *Storage) ListAllElements(ctx context.Context, projectID string) ([]*models.Element, error) {
	return s.listElements(projectID, true)
}

func (s *Storage) listElements(projectID string, includeDeleted bool) ([]*models.Element, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var elements []*models.Element

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket, err := projectBucket(tx, bucketElements, projectID, false)
		if err != nil {
			return err
		}
		if bucket == nil {
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			var element models.Element
			if err := json.Unmarshal(v, &element); err != nil {
				return fmt.Errorf("failed to unmarshal element: %w", err)
			}
			if !includeDeleted && element.IsDeleted() {
				return nil
			}
			elements = append(elements, &element)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list elements: %w", err)
	}

	return elements, nil
}
