package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/loreforge/loreforge/internal/fingerprint"
	"github.com/loreforge/loreforge/internal/models"
	"github.com/loreforge/loreforge/internal/server/storage"
	"github.com/loreforge/loreforge/pkg/api"
)

// contextKey is the type for request context keys set by the auth middleware.
type contextKey string

const (
	// UserIDKey holds the authenticated user id.
	UserIDKey contextKey = "user_id"
	// UsernameKey holds the authenticated username.
	UsernameKey contextKey = "username"
)

// GetUserID extracts the authenticated user id from a request context.
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok
}

// GetUsername extracts the authenticated username from a request context.
func GetUsername(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameKey).(string)
	return username, ok
}

// DefaultPageSize bounds one pull page.
const DefaultPageSize = 100

// SyncHandler serves the two sync primitives: paged pull and batched push.
type SyncHandler struct {
	logger    *slog.Logger
	elements  storage.ElementStorage
	validator *PayloadValidator
	pageSize  int
}

// NewSyncHandler creates a sync handler. pageSize <= 0 selects the default.
func NewSyncHandler(logger *slog.Logger, elements storage.ElementStorage, validator *PayloadValidator, pageSize int) *SyncHandler {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &SyncHandler{
		logger:    logger,
		elements:  elements,
		validator: validator,
		pageSize:  pageSize,
	}
}

// Pull handles GET /api/v1/sync/pull?project_id=...&since=...&cursor=...
// Returns one page of elements changed strictly after the since watermark.
// The cursor is opaque to clients; an empty records slice ends the walk.
func (h *SyncHandler) Pull(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.Error("user id not found in context")
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	projectID := r.URL.Query().Get("project_id")
	if projectID == "" {
		h.sendError(w, "project_id is required", http.StatusBadRequest)
		return
	}

	var since time.Time
	if sinceStr := r.URL.Query().Get("since"); sinceStr != "" {
		var err error
		since, err = time.Parse(time.RFC3339Nano, sinceStr)
		if err != nil {
			h.logger.WarnContext(ctx, "invalid since parameter", slog.String("since", sinceStr), slog.Any("error", err))
			h.sendError(w, "invalid since parameter", http.StatusBadRequest)
			return
		}
	}

	offset := 0
	if cursor := r.URL.Query().Get("cursor"); cursor != "" {
		var err error
		offset, err = strconv.Atoi(cursor)
		if err != nil || offset < 0 {
			h.logger.WarnContext(ctx, "invalid cursor parameter", slog.String("cursor", cursor))
			h.sendError(w, "invalid cursor parameter", http.StatusBadRequest)
			return
		}
	}

	changed, err := h.elements.ListChangedSince(ctx, userID, projectID, since, h.pageSize, offset)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list changed elements", slog.Any("error", err), slog.String("user_id", userID))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	records := make([]api.RemoteRecord, 0, len(changed))
	for _, element := range changed {
		records = append(records, remoteRecord(element))
	}

	resp := api.PullResponse{Records: records}
	// A full page may have more behind it; hand back a resume cursor.
	if len(changed) == h.pageSize {
		resp.NextCursor = strconv.Itoa(offset + len(changed))
	}

	h.logger.InfoContext(ctx, "pull served",
		slog.String("user_id", userID),
		slog.String("project_id", projectID),
		slog.Int("records", len(records)))

	h.sendJSON(w, resp, http.StatusOK)
}

// Push handles POST /api/v1/sync/push. Items are applied in request order
// and each gets its own outcome; one bad item never fails the batch.
func (h *SyncHandler) Push(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.Error("user id not found in context")
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.PushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode push request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.ProjectID == "" {
		h.sendError(w, "project_id is required", http.StatusBadRequest)
		return
	}

	results := make([]api.PushResult, 0, len(req.Items))
	for _, item := range req.Items {
		result, err := h.applyItem(ctx, userID, req.ProjectID, item)
		if err != nil {
			h.logger.ErrorContext(ctx, "failed to apply push item",
				slog.Any("error", err),
				slog.String("client_id", item.ClientID))
			h.sendError(w, "internal server error", http.StatusInternalServerError)
			return
		}
		results = append(results, result)
	}

	h.logger.InfoContext(ctx, "push served",
		slog.String("user_id", userID),
		slog.String("project_id", req.ProjectID),
		slog.Int("items", len(req.Items)))

	h.sendJSON(w, api.PushResponse{Results: results}, http.StatusOK)
}

// applyItem applies one pushed mutation and classifies the outcome.
func (h *SyncHandler) applyItem(ctx context.Context, userID, projectID string, item api.PushItem) (api.PushResult, error) {
	if item.ClientID == "" {
		return rejected(item, "client_id is required"), nil
	}

	if item.Operation != models.OpDelete {
		if err := h.validator.Validate(item.Payload); err != nil {
			return rejected(item, err.Error()), nil
		}
	}

	current, err := h.elements.GetElement(ctx, userID, projectID, item.ClientID)
	if err != nil && !errors.Is(err, storage.ErrElementNotFound) {
		return api.PushResult{}, err
	}
	exists := err == nil

	switch item.Operation {
	case models.OpCreate:
		return h.applyCreate(ctx, userID, projectID, item, current, exists)
	case models.OpUpdate:
		return h.applyUpdate(ctx, item, current, exists)
	case models.OpDelete:
		return h.applyDelete(ctx, item, current, exists)
	default:
		return rejected(item, "unknown operation "+string(item.Operation)), nil
	}
}

func (h *SyncHandler) applyCreate(ctx context.Context, userID, projectID string, item api.PushItem, current *models.ServerElement, exists bool) (api.PushResult, error) {
	if !exists {
		now := time.Now().UTC()
		element := &models.ServerElement{
			ID:        uuid.New().String(),
			UserID:    userID,
			ProjectID: projectID,
			ClientID:  item.ClientID,
			Payload:   item.Payload,
			Version:   1,
			CreatedAt: now,
			UpdatedAt: now,
		}
		err := h.elements.InsertElement(ctx, element)
		if errors.Is(err, storage.ErrElementExists) {
			// Lost the race against a concurrent push of the same element.
			return h.retryAgainstCurrent(ctx, userID, projectID, item)
		}
		if err != nil {
			return api.PushResult{}, err
		}
		return accepted(item, element), nil
	}

	// Re-pushing an already-applied create is a no-op: the server absorbs
	// it when the stored content matches.
	if !current.IsDeleted() {
		same, err := samePayload(current.Payload, item.Payload)
		if err != nil {
			return api.PushResult{}, err
		}
		if same {
			return accepted(item, current), nil
		}
	}
	return conflict(item, current), nil
}

func (h *SyncHandler) applyUpdate(ctx context.Context, item api.PushItem, current *models.ServerElement, exists bool) (api.PushResult, error) {
	if !exists {
		return rejected(item, "element does not exist"), nil
	}

	if item.BaseVersion != current.Version {
		// A stale base with identical content means the acknowledgment was
		// lost, not that anyone diverged.
		if !current.IsDeleted() {
			same, err := samePayload(current.Payload, item.Payload)
			if err != nil {
				return api.PushResult{}, err
			}
			if same {
				return accepted(item, current), nil
			}
		}
		return conflict(item, current), nil
	}

	updated := *current
	updated.Payload = item.Payload
	updated.Version = current.Version + 1
	updated.UpdatedAt = time.Now().UTC()
	updated.DeletedAt = nil

	err := h.elements.UpdateElement(ctx, &updated, current.Version)
	if errors.Is(err, storage.ErrVersionMismatch) {
		current, err = h.elements.GetElement(ctx, updated.UserID, updated.ProjectID, updated.ClientID)
		if err != nil {
			return api.PushResult{}, err
		}
		return conflict(item, current), nil
	}
	if err != nil {
		return api.PushResult{}, err
	}
	return accepted(item, &updated), nil
}

func (h *SyncHandler) applyDelete(ctx context.Context, item api.PushItem, current *models.ServerElement, exists bool) (api.PushResult, error) {
	// Deleting what is already gone is success, not an error.
	if !exists {
		return api.PushResult{
			ClientID: item.ClientID,
			Status:   api.PushStatusAccepted,
		}, nil
	}
	if current.IsDeleted() {
		return accepted(item, current), nil
	}

	if item.BaseVersion != current.Version {
		return conflict(item, current), nil
	}

	now := time.Now().UTC()
	updated := *current
	updated.Version = current.Version + 1
	updated.UpdatedAt = now
	updated.DeletedAt = &now

	err := h.elements.UpdateElement(ctx, &updated, current.Version)
	if errors.Is(err, storage.ErrVersionMismatch) {
		current, err = h.elements.GetElement(ctx, updated.UserID, updated.ProjectID, updated.ClientID)
		if err != nil {
			return api.PushResult{}, err
		}
		return conflict(item, current), nil
	}
	if err != nil {
		return api.PushResult{}, err
	}
	return accepted(item, &updated), nil
}

// retryAgainstCurrent re-reads an element after an insert race and
// classifies the create against the winner.
func (h *SyncHandler) retryAgainstCurrent(ctx context.Context, userID, projectID string, item api.PushItem) (api.PushResult, error) {
	current, err := h.elements.GetElement(ctx, userID, projectID, item.ClientID)
	if err != nil {
		return api.PushResult{}, err
	}
	if !current.IsDeleted() {
		same, err := samePayload(current.Payload, item.Payload)
		if err != nil {
			return api.PushResult{}, err
		}
		if same {
			return accepted(item, current), nil
		}
	}
	return conflict(item, current), nil
}

// samePayload compares payloads by fingerprint, so field ordering and typed
// versus untyped representations cannot cause false mismatches.
func samePayload(a, b models.Payload) (bool, error) {
	fa, err := fingerprint.Compute(a)
	if err != nil {
		return false, err
	}
	fb, err := fingerprint.Compute(b)
	if err != nil {
		return false, err
	}
	return fa == fb, nil
}

func accepted(item api.PushItem, element *models.ServerElement) api.PushResult {
	return api.PushResult{
		ClientID:        item.ClientID,
		Status:          api.PushStatusAccepted,
		ServerID:        element.ID,
		ServerVersion:   element.Version,
		ServerUpdatedAt: element.UpdatedAt,
	}
}

func rejected(item api.PushItem, reason string) api.PushResult {
	return api.PushResult{
		ClientID: item.ClientID,
		Status:   api.PushStatusRejected,
		Reason:   reason,
	}
}

func conflict(item api.PushItem, current *models.ServerElement) api.PushResult {
	state := remoteRecord(current)
	return api.PushResult{
		ClientID:        item.ClientID,
		Status:          api.PushStatusConflict,
		ServerID:        current.ID,
		ServerVersion:   current.Version,
		ServerUpdatedAt: current.UpdatedAt,
		RemoteState:     &state,
	}
}

// remoteRecord converts a stored element to its wire form.
func remoteRecord(element *models.ServerElement) api.RemoteRecord {
	op := api.RemoteOpUpdated
	switch {
	case element.IsDeleted():
		op = api.RemoteOpDeleted
	case element.Version == 1:
		op = api.RemoteOpCreated
	}
	return api.RemoteRecord{
		ServerID:  element.ID,
		ClientID:  element.ClientID,
		ProjectID: element.ProjectID,
		Op:        op,
		Payload:   element.Payload,
		Version:   element.Version,
		UpdatedAt: element.UpdatedAt,
		DeletedAt: element.DeletedAt,
	}
}

func (h *SyncHandler) sendJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

func (h *SyncHandler) sendError(w http.ResponseWriter, message string, statusCode int) {
	resp := api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	h.sendJSON(w, resp, statusCode)
}
