package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loreforge/loreforge/internal/models"
	"github.com/loreforge/loreforge/internal/server/storage"
	"github.com/loreforge/loreforge/pkg/api"
)

// mockElementStorage is an in-memory ElementStorage mirroring the sqlite
// semantics: unique (user, project, client) key and optimistic versioning.
type mockElementStorage struct {
	elements map[string]*models.ServerElement
}

func newMockElementStorage() *mockElementStorage {
	return &mockElementStorage{elements: make(map[string]*models.ServerElement)}
}

func elementKey(userID, projectID, clientID string) string {
	return userID + "/" + projectID + "/" + clientID
}

func (m *mockElementStorage) GetElement(_ context.Context, userID, projectID, clientID string) (*models.ServerElement, error) {
	element, ok := m.elements[elementKey(userID, projectID, clientID)]
	if !ok {
		return nil, storage.ErrElementNotFound
	}
	clone := *element
	return &clone, nil
}

func (m *mockElementStorage) InsertElement(_ context.Context, element *models.ServerElement) error {
	key := elementKey(element.UserID, element.ProjectID, element.ClientID)
	if _, exists := m.elements[key]; exists {
		return storage.ErrElementExists
	}
	clone := *element
	m.elements[key] = &clone
	return nil
}

func (m *mockElementStorage) UpdateElement(_ context.Context, element *models.ServerElement, expectedVersion int64) error {
	key := elementKey(element.UserID, element.ProjectID, element.ClientID)
	current, ok := m.elements[key]
	if !ok || current.Version != expectedVersion {
		return storage.ErrVersionMismatch
	}
	clone := *element
	m.elements[key] = &clone
	return nil
}

func (m *mockElementStorage) ListChangedSince(_ context.Context, userID, projectID string, since time.Time, limit, offset int) ([]*models.ServerElement, error) {
	var changed []*models.ServerElement
	for _, element := range m.elements {
		if element.UserID == userID && element.ProjectID == projectID && element.UpdatedAt.After(since) {
			clone := *element
			changed = append(changed, &clone)
		}
	}
	sort.Slice(changed, func(i, j int) bool {
		if !changed[i].UpdatedAt.Equal(changed[j].UpdatedAt) {
			return changed[i].UpdatedAt.Before(changed[j].UpdatedAt)
		}
		return changed[i].ClientID < changed[j].ClientID
	})
	if offset >= len(changed) {
		return nil, nil
	}
	changed = changed[offset:]
	if len(changed) > limit {
		changed = changed[:limit]
	}
	return changed, nil
}

func newSyncFixture(t *testing.T, pageSize int) (*SyncHandler, *mockElementStorage) {
	t.Helper()

	validator, err := NewPayloadValidator()
	require.NoError(t, err)

	store := newMockElementStorage()
	return NewSyncHandler(testLogger(), store, validator, pageSize), store
}

func characterPayload(name string) models.Payload {
	return models.Payload{
		Category: models.CategoryCharacter,
		Name:     name,
		Character: &models.CharacterFields{
			Species: "human",
		},
	}
}

func doPull(t *testing.T, handler *SyncHandler, userID, query string) api.PullResponse {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sync/pull?"+query, nil)
	req = req.WithContext(context.WithValue(req.Context(), UserIDKey, userID))
	w := httptest.NewRecorder()
	handler.Pull(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp api.PullResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func doPush(t *testing.T, handler *SyncHandler, userID string, pushReq api.PushRequest) api.PushResponse {
	t.Helper()

	raw, err := json.Marshal(pushReq)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sync/push", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(context.WithValue(req.Context(), UserIDKey, userID))
	w := httptest.NewRecorder()
	handler.Push(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp api.PushResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestPull_Unauthorized(t *testing.T) {
	handler, _ := newSyncFixture(t, 0)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sync/pull?project_id=p1", nil)
	w := httptest.NewRecorder()
	handler.Pull(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPull_RequiresProjectID(t *testing.T) {
	handler, _ := newSyncFixture(t, 0)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sync/pull", nil)
	req = req.WithContext(context.WithValue(req.Context(), UserIDKey, "user-1"))
	w := httptest.NewRecorder()
	handler.Pull(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPull_SinceWatermark(t *testing.T) {
	handler, store := newSyncFixture(t, 0)
	base := time.Now().UTC().Truncate(time.Second)

	for i, clientID := range []string{"a", "b", "c"} {
		store.elements[elementKey("user-1", "p1", clientID)] = &models.ServerElement{
			ID:        clientID + "-server",
			UserID:    "user-1",
			ProjectID: "p1",
			ClientID:  clientID,
			Payload:   characterPayload("Aria"),
			Version:   1,
			CreatedAt: base,
			UpdatedAt: base.Add(time.Duration(i) * time.Minute),
		}
	}

	resp := doPull(t, handler, "user-1", "project_id=p1&since="+base.Format(time.RFC3339Nano))

	// Strictly after: the watermark row itself is not replayed.
	require.Len(t, resp.Records, 2)
	assert.Equal(t, "b", resp.Records[0].ClientID)
	assert.Equal(t, "c", resp.Records[1].ClientID)
	assert.Empty(t, resp.NextCursor)
}

func TestPull_Pagination(t *testing.T) {
	handler, store := newSyncFixture(t, 2)
	base := time.Now().UTC().Truncate(time.Second)

	for i, clientID := range []string{"a", "b", "c"} {
		store.elements[elementKey("user-1", "p1", clientID)] = &models.ServerElement{
			ID:        clientID + "-server",
			UserID:    "user-1",
			ProjectID: "p1",
			ClientID:  clientID,
			Payload:   characterPayload("Aria"),
			Version:   1,
			CreatedAt: base,
			UpdatedAt: base.Add(time.Duration(i) * time.Minute),
		}
	}

	first := doPull(t, handler, "user-1", "project_id=p1")
	require.Len(t, first.Records, 2)
	require.Equal(t, "2", first.NextCursor)

	second := doPull(t, handler, "user-1", "project_id=p1&cursor="+first.NextCursor)
	require.Len(t, second.Records, 1)
	assert.Equal(t, "c", second.Records[0].ClientID)
	assert.Empty(t, second.NextCursor)
}

func TestPull_TombstonesIncluded(t *testing.T) {
	handler, store := newSyncFixture(t, 0)
	now := time.Now().UTC().Truncate(time.Second)

	store.elements[elementKey("user-1", "p1", "gone")] = &models.ServerElement{
		ID:        "gone-server",
		UserID:    "user-1",
		ProjectID: "p1",
		ClientID:  "gone",
		Payload:   characterPayload("Aria"),
		Version:   2,
		CreatedAt: now.Add(-time.Hour),
		UpdatedAt: now,
		DeletedAt: &now,
	}

	resp := doPull(t, handler, "user-1", "project_id=p1")
	require.Len(t, resp.Records, 1)
	assert.Equal(t, api.RemoteOpDeleted, resp.Records[0].Op)
	require.NotNil(t, resp.Records[0].DeletedAt)
}

func TestPush_CreateAccepted(t *testing.T) {
	handler, store := newSyncFixture(t, 0)

	resp := doPush(t, handler, "user-1", api.PushRequest{
		ProjectID: "p1",
		Items: []api.PushItem{{
			ClientID:  "elem-1",
			Operation: models.OpCreate,
			Payload:   characterPayload("Aria"),
			UpdatedAt: time.Now().UTC(),
		}},
	})

	require.Len(t, resp.Results, 1)
	result := resp.Results[0]
	assert.Equal(t, api.PushStatusAccepted, result.Status)
	assert.NotEmpty(t, result.ServerID)
	assert.Equal(t, int64(1), result.ServerVersion)
	assert.False(t, result.ServerUpdatedAt.IsZero())

	stored, err := store.GetElement(context.Background(), "user-1", "p1", "elem-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.Version)
}

func TestPush_CreateIdempotent(t *testing.T) {
	handler, _ := newSyncFixture(t, 0)

	item := api.PushItem{
		ClientID:  "elem-1",
		Operation: models.OpCreate,
		Payload:   characterPayload("Aria"),
		UpdatedAt: time.Now().UTC(),
	}
	first := doPush(t, handler, "user-1", api.PushRequest{ProjectID: "p1", Items: []api.PushItem{item}})
	require.Equal(t, api.PushStatusAccepted, first.Results[0].Status)

	// Replay after a lost acknowledgment: same outcome, no version bump.
	second := doPush(t, handler, "user-1", api.PushRequest{ProjectID: "p1", Items: []api.PushItem{item}})
	require.Equal(t, api.PushStatusAccepted, second.Results[0].Status)
	assert.Equal(t, first.Results[0].ServerID, second.Results[0].ServerID)
	assert.Equal(t, int64(1), second.Results[0].ServerVersion)
}

func TestPush_CreateConflict(t *testing.T) {
	handler, _ := newSyncFixture(t, 0)

	first := doPush(t, handler, "user-1", api.PushRequest{ProjectID: "p1", Items: []api.PushItem{{
		ClientID:  "elem-1",
		Operation: models.OpCreate,
		Payload:   characterPayload("Aria"),
		UpdatedAt: time.Now().UTC(),
	}}})
	require.Equal(t, api.PushStatusAccepted, first.Results[0].Status)

	second := doPush(t, handler, "user-1", api.PushRequest{ProjectID: "p1", Items: []api.PushItem{{
		ClientID:  "elem-1",
		Operation: models.OpCreate,
		Payload:   characterPayload("Someone Else"),
		UpdatedAt: time.Now().UTC(),
	}}})

	result := second.Results[0]
	require.Equal(t, api.PushStatusConflict, result.Status)
	require.NotNil(t, result.RemoteState)
	assert.Equal(t, "Aria", result.RemoteState.Payload.Name)
	assert.Equal(t, int64(1), result.RemoteState.Version)
}

func TestPush_UpdateAccepted(t *testing.T) {
	handler, store := newSyncFixture(t, 0)

	doPush(t, handler, "user-1", api.PushRequest{ProjectID: "p1", Items: []api.PushItem{{
		ClientID:  "elem-1",
		Operation: models.OpCreate,
		Payload:   characterPayload("Aria"),
		UpdatedAt: time.Now().UTC(),
	}}})

	resp := doPush(t, handler, "user-1", api.PushRequest{ProjectID: "p1", Items: []api.PushItem{{
		ClientID:    "elem-1",
		Operation:   models.OpUpdate,
		Payload:     characterPayload("Aria the Bold"),
		BaseVersion: 1,
		UpdatedAt:   time.Now().UTC(),
	}}})

	result := resp.Results[0]
	require.Equal(t, api.PushStatusAccepted, result.Status)
	assert.Equal(t, int64(2), result.ServerVersion)

	stored, err := store.GetElement(context.Background(), "user-1", "p1", "elem-1")
	require.NoError(t, err)
	assert.Equal(t, "Aria the Bold", stored.Payload.Name)
}

func TestPush_UpdateStaleBaseConflicts(t *testing.T) {
	handler, _ := newSyncFixture(t, 0)

	doPush(t, handler, "user-1", api.PushRequest{ProjectID: "p1", Items: []api.PushItem{{
		ClientID:  "elem-1",
		Operation: models.OpCreate,
		Payload:   characterPayload("Aria"),
		UpdatedAt: time.Now().UTC(),
	}}})
	doPush(t, handler, "user-1", api.PushRequest{ProjectID: "p1", Items: []api.PushItem{{
		ClientID:    "elem-1",
		Operation:   models.OpUpdate,
		Payload:     characterPayload("Aria the Bold"),
		BaseVersion: 1,
		UpdatedAt:   time.Now().UTC(),
	}}})

	// A second writer still holding base version 1.
	resp := doPush(t, handler, "user-1", api.PushRequest{ProjectID: "p1", Items: []api.PushItem{{
		ClientID:    "elem-1",
		Operation:   models.OpUpdate,
		Payload:     characterPayload("Aria the Meek"),
		BaseVersion: 1,
		UpdatedAt:   time.Now().UTC(),
	}}})

	result := resp.Results[0]
	require.Equal(t, api.PushStatusConflict, result.Status)
	require.NotNil(t, result.RemoteState)
	assert.Equal(t, "Aria the Bold", result.RemoteState.Payload.Name)
	assert.Equal(t, int64(2), result.RemoteState.Version)
}

func TestPush_UpdateLostAckAbsorbed(t *testing.T) {
	handler, _ := newSyncFixture(t, 0)

	doPush(t, handler, "user-1", api.PushRequest{ProjectID: "p1", Items: []api.PushItem{{
		ClientID:  "elem-1",
		Operation: models.OpCreate,
		Payload:   characterPayload("Aria"),
		UpdatedAt: time.Now().UTC(),
	}}})

	update := api.PushItem{
		ClientID:    "elem-1",
		Operation:   models.OpUpdate,
		Payload:     characterPayload("Aria the Bold"),
		BaseVersion: 1,
		UpdatedAt:   time.Now().UTC(),
	}
	first := doPush(t, handler, "user-1", api.PushRequest{ProjectID: "p1", Items: []api.PushItem{update}})
	require.Equal(t, api.PushStatusAccepted, first.Results[0].Status)

	// Replay with the now-stale base but identical content: absorbed.
	second := doPush(t, handler, "user-1", api.PushRequest{ProjectID: "p1", Items: []api.PushItem{update}})
	result := second.Results[0]
	require.Equal(t, api.PushStatusAccepted, result.Status)
	assert.Equal(t, int64(2), result.ServerVersion)
}

func TestPush_UpdateUnknownElementRejected(t *testing.T) {
	handler, _ := newSyncFixture(t, 0)

	resp := doPush(t, handler, "user-1", api.PushRequest{ProjectID: "p1", Items: []api.PushItem{{
		ClientID:    "ghost",
		Operation:   models.OpUpdate,
		Payload:     characterPayload("Nobody"),
		BaseVersion: 1,
		UpdatedAt:   time.Now().UTC(),
	}}})

	result := resp.Results[0]
	require.Equal(t, api.PushStatusRejected, result.Status)
	assert.Contains(t, result.Reason, "does not exist")
}

func TestPush_Delete(t *testing.T) {
	handler, store := newSyncFixture(t, 0)

	doPush(t, handler, "user-1", api.PushRequest{ProjectID: "p1", Items: []api.PushItem{{
		ClientID:  "elem-1",
		Operation: models.OpCreate,
		Payload:   characterPayload("Aria"),
		UpdatedAt: time.Now().UTC(),
	}}})

	resp := doPush(t, handler, "user-1", api.PushRequest{ProjectID: "p1", Items: []api.PushItem{{
		ClientID:    "elem-1",
		Operation:   models.OpDelete,
		Payload:     characterPayload("Aria"),
		BaseVersion: 1,
		UpdatedAt:   time.Now().UTC(),
	}}})

	result := resp.Results[0]
	require.Equal(t, api.PushStatusAccepted, result.Status)
	assert.Equal(t, int64(2), result.ServerVersion)

	stored, err := store.GetElement(context.Background(), "user-1", "p1", "elem-1")
	require.NoError(t, err)
	assert.True(t, stored.IsDeleted())
}

func TestPush_DeleteMissingAccepted(t *testing.T) {
	handler, _ := newSyncFixture(t, 0)

	resp := doPush(t, handler, "user-1", api.PushRequest{ProjectID: "p1", Items: []api.PushItem{{
		ClientID:  "never-synced",
		Operation: models.OpDelete,
		UpdatedAt: time.Now().UTC(),
	}}})

	assert.Equal(t, api.PushStatusAccepted, resp.Results[0].Status)
}

func TestPush_DeleteStaleBaseConflicts(t *testing.T) {
	handler, _ := newSyncFixture(t, 0)

	doPush(t, handler, "user-1", api.PushRequest{ProjectID: "p1", Items: []api.PushItem{{
		ClientID:  "elem-1",
		Operation: models.OpCreate,
		Payload:   characterPayload("Aria"),
		UpdatedAt: time.Now().UTC(),
	}}})
	doPush(t, handler, "user-1", api.PushRequest{ProjectID: "p1", Items: []api.PushItem{{
		ClientID:    "elem-1",
		Operation:   models.OpUpdate,
		Payload:     characterPayload("Aria the Bold"),
		BaseVersion: 1,
		UpdatedAt:   time.Now().UTC(),
	}}})

	resp := doPush(t, handler, "user-1", api.PushRequest{ProjectID: "p1", Items: []api.PushItem{{
		ClientID:    "elem-1",
		Operation:   models.OpDelete,
		Payload:     characterPayload("Aria"),
		BaseVersion: 1,
		UpdatedAt:   time.Now().UTC(),
	}}})

	result := resp.Results[0]
	require.Equal(t, api.PushStatusConflict, result.Status)
	require.NotNil(t, result.RemoteState)
	assert.Equal(t, int64(2), result.RemoteState.Version)
}

func TestPush_SchemaRejection(t *testing.T) {
	handler, _ := newSyncFixture(t, 0)

	resp := doPush(t, handler, "user-1", api.PushRequest{ProjectID: "p1", Items: []api.PushItem{
		{
			ClientID:  "no-name",
			Operation: models.OpCreate,
			Payload:   models.Payload{Category: models.CategoryCharacter},
			UpdatedAt: time.Now().UTC(),
		},
		{
			ClientID:  "wrong-block",
			Operation: models.OpCreate,
			Payload: models.Payload{
				Category: models.CategoryLocation,
				Name:     "Ironhold",
				Faction:  &models.FactionFields{Leader: "nobody"},
			},
			UpdatedAt: time.Now().UTC(),
		},
		{
			ClientID:  "fine",
			Operation: models.OpCreate,
			Payload:   characterPayload("Aria"),
			UpdatedAt: time.Now().UTC(),
		},
	}})

	// One bad item never fails the batch; outcomes stay in request order.
	require.Len(t, resp.Results, 3)
	assert.Equal(t, api.PushStatusRejected, resp.Results[0].Status)
	assert.NotEmpty(t, resp.Results[0].Reason)
	assert.Equal(t, api.PushStatusRejected, resp.Results[1].Status)
	assert.Equal(t, api.PushStatusAccepted, resp.Results[2].Status)
}

func TestPush_RequiresProjectID(t *testing.T) {
	handler, _ := newSyncFixture(t, 0)

	raw, err := json.Marshal(api.PushRequest{})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sync/push", bytes.NewReader(raw))
	req = req.WithContext(context.WithValue(req.Context(), UserIDKey, "user-1"))
	w := httptest.NewRecorder()
	handler.Push(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
