package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/loreforge/loreforge/internal/models"
	"github.com/loreforge/loreforge/internal/server/storage"
)

// GetElement retrieves an element by its client-assigned ID
func (s *Storage) GetElement(ctx context.Context, userID, projectID, clientID string) (*models.ServerElement, error) {
	query := `
		SELECT id, user_id, project_id, client_id, payload, version, created_at, updated_at, deleted_at
		FROM elements
		WHERE user_id = ? AND project_id = ? AND client_id = ?
	`

	element, err := scanElement(s.db.QueryRowContext(ctx, query, userID, projectID, clientID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrElementNotFound
		}
		return nil, fmt.Errorf("failed to get element: %w", err)
	}

	return element, nil
}

// InsertElement creates a new element row
func (s *Storage) InsertElement(ctx context.Context, element *models.ServerElement) error {
	payload, err := json.Marshal(element.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	query := `
		INSERT INTO elements (id, user_id, project_id, client_id, payload, version, created_at, updated_at, deleted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = s.db.ExecContext(ctx, query,
		element.ID,
		element.UserID,
		element.ProjectID,
		element.ClientID,
		string(payload),
		element.Version,
		element.CreatedAt,
		element.UpdatedAt,
		element.DeletedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return storage.ErrElementExists
		}
		return fmt.Errorf("failed to insert element: %w", err)
	}

	return nil
}

// UpdateElement replaces an element row with an optimistic version check
func (s *Storage) UpdateElement(ctx context.Context, element *models.ServerElement, expectedVersion int64) error {
	payload, err := json.Marshal(element.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	query := `
		UPDATE elements
		SET payload = ?, version = ?, updated_at = ?, deleted_at = ?
		WHERE user_id = ? AND project_id = ? AND client_id = ? AND version = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		string(payload),
		element.Version,
		element.UpdatedAt,
		element.DeletedAt,
		element.UserID,
		element.ProjectID,
		element.ClientID,
		expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("failed to update element: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return storage.ErrVersionMismatch
	}

	return nil
}

// ListChangedSince returns elements modified strictly after since, paged
func (s *Storage) ListChangedSince(ctx context.Context, userID, projectID string, since time.Time, limit, offset int) ([]*models.ServerElement, error) {
	query := `
		SELECT id, user_id, project_id, client_id, payload, version, created_at, updated_at, deleted_at
		FROM elements
		WHERE user_id = ? AND project_id = ? AND updated_at > ?
		ORDER BY updated_at, client_id
		LIMIT ? OFFSET ?
	`

	rows, err := s.db.QueryContext(ctx, query, userID, projectID, since, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list changed elements: %w", err)
	}
	defer rows.Close()

	var elements []*models.ServerElement
	for rows.Next() {
		element, err := scanElement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan element: %w", err)
		}
		elements = append(elements, element)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate elements: %w", err)
	}

	return elements, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanElement(row rowScanner) (*models.ServerElement, error) {
	element := &models.ServerElement{}
	var payload string
	var deletedAt sql.NullTime

	err := row.Scan(
		&element.ID,
		&element.UserID,
		&element.ProjectID,
		&element.ClientID,
		&payload,
		&element.Version,
		&element.CreatedAt,
		&element.UpdatedAt,
		&deletedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(payload), &element.Payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		element.DeletedAt = &t
	}

	return element, nil
}
