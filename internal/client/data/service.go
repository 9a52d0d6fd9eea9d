// Package data implements local element CRUD. Every mutation updates the
// element store and appends to the change log in one logical step, so the
// sync coordinator always sees a complete record of local edits.
package data

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/loreforge/loreforge/internal/client/storage"
	"github.com/loreforge/loreforge/internal/models"
	"github.com/loreforge/loreforge/internal/validation"
)

//go:generate go tool moq -out service_mock.go . Service

// Service is the element CRUD surface used by the CLI.
type Service interface {
	// CreateElement creates a new element with a fresh client-assigned ID
	// and records a pending create mutation.
	CreateElement(ctx context.Context, projectID string, payload models.Payload) (*models.Element, error)

	// UpdateElement replaces the payload of an existing visible element and
	// records a pending update mutation. Editing an element clears any
	// rejection note so the change is pushed again.
	UpdateElement(ctx context.Context, projectID, clientID string, payload models.Payload) (*models.Element, error)

	// DeleteElement tombstones an element and records a pending delete.
	DeleteElement(ctx context.Context, projectID, clientID string) error

	// GetElement returns a visible element.
	// Returns storage.ErrElementNotFound for unknown or deleted elements.
	GetElement(ctx context.Context, projectID, clientID string) (*models.Element, error)

	// ListElements returns the project's visible elements.
	ListElements(ctx context.Context, projectID string) ([]*models.Element, error)

	// RejectionReason returns the server rejection note for an element, or
	// "" if its last push was not rejected.
	RejectionReason(ctx context.Context, projectID, clientID string) (string, error)
}

type service struct {
	elements  storage.ElementStorage
	changeLog storage.ChangeLogStorage
	syncState storage.SyncStateStorage
}

// NewService creates a data service.
func NewService(elements storage.ElementStorage, changeLog storage.ChangeLogStorage, syncState storage.SyncStateStorage) Service {
	return &service{
		elements:  elements,
		changeLog: changeLog,
		syncState: syncState,
	}
}

func (s *service) CreateElement(ctx context.Context, projectID string, payload models.Payload) (*models.Element, error) {
	if err := validatePayload(payload); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	element := &models.Element{
		CreatedAt: now,
		UpdatedAt: now,
		ClientID:  uuid.New().String(),
		ProjectID: projectID,
		Payload:   payload.Clone(),
	}

	if err := s.elements.SaveElement(ctx, element); err != nil {
		return nil, fmt.Errorf("failed to save element: %w", err)
	}

	_, err := s.changeLog.Append(ctx, &models.ChangeLogEntry{
		AppendedAt:      now,
		ClientID:        element.ClientID,
		ProjectID:       projectID,
		Operation:       models.OpCreate,
		PayloadSnapshot: payload.Clone(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record create: %w", err)
	}

	return element, nil
}

func (s *service) UpdateElement(ctx context.Context, projectID, clientID string, payload models.Payload) (*models.Element, error) {
	if err := validatePayload(payload); err != nil {
		return nil, err
	}

	element, err := s.visibleElement(ctx, projectID, clientID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	element.UpdatedAt = now
	element.Payload = payload.Clone()

	if err := s.elements.SaveElement(ctx, element); err != nil {
		return nil, fmt.Errorf("failed to save element: %w", err)
	}

	_, err = s.changeLog.Append(ctx, &models.ChangeLogEntry{
		AppendedAt:      now,
		ClientID:        clientID,
		ProjectID:       projectID,
		Operation:       models.OpUpdate,
		PayloadSnapshot: payload.Clone(),
		BaseVersion:     element.Version,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record update: %w", err)
	}

	if err := s.syncState.ClearRejection(ctx, projectID, clientID); err != nil {
		return nil, fmt.Errorf("failed to clear rejection note: %w", err)
	}

	return element, nil
}

func (s *service) DeleteElement(ctx context.Context, projectID, clientID string) error {
	element, err := s.visibleElement(ctx, projectID, clientID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	element.UpdatedAt = now
	element.DeletedAt = &now

	if err := s.elements.SaveElement(ctx, element); err != nil {
		return fmt.Errorf("failed to tombstone element: %w", err)
	}

	_, err = s.changeLog.Append(ctx, &models.ChangeLogEntry{
		AppendedAt:      now,
		ClientID:        clientID,
		ProjectID:       projectID,
		Operation:       models.OpDelete,
		PayloadSnapshot: element.Payload.Clone(),
		BaseVersion:     element.Version,
	})
	if err != nil {
		return fmt.Errorf("failed to record delete: %w", err)
	}

	if err := s.syncState.ClearRejection(ctx, projectID, clientID); err != nil {
		return fmt.Errorf("failed to clear rejection note: %w", err)
	}

	return nil
}

func (s *service) GetElement(ctx context.Context, projectID, clientID string) (*models.Element, error) {
	return s.visibleElement(ctx, projectID, clientID)
}

func (s *service) ListElements(ctx context.Context, projectID string) ([]*models.Element, error) {
	return s.elements.ListElements(ctx, projectID)
}

func (s *service) RejectionReason(ctx context.Context, projectID, clientID string) (string, error) {
	return s.syncState.GetRejection(ctx, projectID, clientID)
}

// visibleElement loads an element and hides tombstones from callers.
func (s *service) visibleElement(ctx context.Context, projectID, clientID string) (*models.Element, error) {
	element, err := s.elements.GetElement(ctx, projectID, clientID)
	if err != nil {
		return nil, err
	}
	if element.IsDeleted() {
		return nil, storage.ErrElementNotFound
	}
	return element, nil
}

func validatePayload(payload models.Payload) error {
	if err := validation.ValidateCategory(payload.Category); err != nil {
		return err
	}
	return validation.ValidateElementName(payload.Name)
}
