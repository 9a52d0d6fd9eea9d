package sync

import (
	"context"
	"io"
	"log/slog"
	gosync "sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpClient "github.com/loreforge/loreforge/internal/client/api"
	"github.com/loreforge/loreforge/internal/client/storage"
	"github.com/loreforge/loreforge/internal/fingerprint"
	"github.com/loreforge/loreforge/internal/models"
	"github.com/loreforge/loreforge/internal/resolver"
	"github.com/loreforge/loreforge/pkg/api"
)

const testProject = "project-1"

func charPayload(name string) models.Payload {
	return models.Payload{
		Category:  models.CategoryCharacter,
		Name:      name,
		Character: &models.CharacterFields{Species: "human"},
	}
}

func mustFingerprint(t *testing.T, p models.Payload) string {
	t.Helper()
	fp, err := fingerprint.Compute(p)
	require.NoError(t, err)
	return string(fp)
}

// fixture wires the coordinator to in-memory fakes built on the generated
// mocks, so tests can both script behavior and inspect resulting state.
type fixture struct {
	apiMock   *httpClient.ClientAPIMock
	changeLog *storage.ChangeLogStorageMock
	syncState *storage.SyncStateStorageMock
	elements  *storage.ElementStorageMock
	auth      *storage.AuthStorageMock

	mu        gosync.Mutex
	pending   []*models.ChangeLogEntry
	nextSeq   uint64
	cursors   map[string]*models.SyncCursor
	synced    map[string]*models.SyncedState
	conflicts []*models.ConflictRecord
	rejects   map[string]string
	stored    map[string]*models.Element
}

func newFixture() *fixture {
	f := &fixture{
		cursors: make(map[string]*models.SyncCursor),
		synced:  make(map[string]*models.SyncedState),
		rejects: make(map[string]string),
		stored:  make(map[string]*models.Element),
		nextSeq: 1,
	}

	f.changeLog = &storage.ChangeLogStorageMock{
		AppendFunc: func(ctx context.Context, entry *models.ChangeLogEntry) (uint64, error) {
			f.mu.Lock()
			defer f.mu.Unlock()
			entry.Sequence = f.nextSeq
			f.nextSeq++
			f.pending = append(f.pending, entry)
			return entry.Sequence, nil
		},
		DrainFunc: func(ctx context.Context, projectID string, maxBatch int) ([]*models.ChangeLogEntry, error) {
			f.mu.Lock()
			defer f.mu.Unlock()
			var out []*models.ChangeLogEntry
			for _, e := range f.pending {
				if e.ProjectID != projectID {
					continue
				}
				if maxBatch > 0 && len(out) >= maxBatch {
					break
				}
				out = append(out, e)
			}
			return out, nil
		},
		AcknowledgeFunc: func(ctx context.Context, projectID string, seqs []uint64) error {
			f.mu.Lock()
			defer f.mu.Unlock()
			acked := make(map[uint64]bool, len(seqs))
			for _, s := range seqs {
				acked[s] = true
			}
			var kept []*models.ChangeLogEntry
			for _, e := range f.pending {
				if e.ProjectID == projectID && acked[e.Sequence] {
					continue
				}
				kept = append(kept, e)
			}
			f.pending = kept
			return nil
		},
		PendingCountFunc: func(ctx context.Context, projectID string) (int, error) {
			f.mu.Lock()
			defer f.mu.Unlock()
			count := 0
			for _, e := range f.pending {
				if e.ProjectID == projectID {
					count++
				}
			}
			return count, nil
		},
	}

	f.syncState = &storage.SyncStateStorageMock{
		GetCursorFunc: func(ctx context.Context, projectID string) (*models.SyncCursor, error) {
			f.mu.Lock()
			defer f.mu.Unlock()
			if c, ok := f.cursors[projectID]; ok {
				copied := *c
				return &copied, nil
			}
			return &models.SyncCursor{ProjectID: projectID}, nil
		},
		SaveCursorFunc: func(ctx context.Context, cursor *models.SyncCursor) error {
			f.mu.Lock()
			defer f.mu.Unlock()
			copied := *cursor
			f.cursors[cursor.ProjectID] = &copied
			return nil
		},
		RecordSyncedFunc: func(ctx context.Context, projectID, clientID string, state *models.SyncedState) error {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.synced[projectID+"/"+clientID] = state
			return nil
		},
		GetSyncedStateFunc: func(ctx context.Context, projectID, clientID string) (*models.SyncedState, error) {
			f.mu.Lock()
			defer f.mu.Unlock()
			if s, ok := f.synced[projectID+"/"+clientID]; ok {
				return s, nil
			}
			return nil, storage.ErrStateNotFound
		},
		SaveConflictFunc: func(ctx context.Context, record *models.ConflictRecord) error {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.conflicts = append(f.conflicts, record)
			return nil
		},
		ListConflictsFunc: func(ctx context.Context, projectID string) ([]*models.ConflictRecord, error) {
			f.mu.Lock()
			defer f.mu.Unlock()
			return append([]*models.ConflictRecord(nil), f.conflicts...), nil
		},
		DeleteConflictFunc: func(ctx context.Context, id string) error {
			f.mu.Lock()
			defer f.mu.Unlock()
			for i, c := range f.conflicts {
				if c.ID == id {
					f.conflicts = append(f.conflicts[:i], f.conflicts[i+1:]...)
					return nil
				}
			}
			return storage.ErrConflictNotFound
		},
		RecordRejectionFunc: func(ctx context.Context, projectID, clientID, reason string) error {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.rejects[projectID+"/"+clientID] = reason
			return nil
		},
		GetRejectionFunc: func(ctx context.Context, projectID, clientID string) (string, error) {
			f.mu.Lock()
			defer f.mu.Unlock()
			return f.rejects[projectID+"/"+clientID], nil
		},
		ClearRejectionFunc: func(ctx context.Context, projectID, clientID string) error {
			f.mu.Lock()
			defer f.mu.Unlock()
			delete(f.rejects, projectID+"/"+clientID)
			return nil
		},
	}

	f.elements = &storage.ElementStorageMock{
		SaveElementFunc: func(ctx context.Context, element *models.Element) error {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.stored[element.ProjectID+"/"+element.ClientID] = element
			return nil
		},
		GetElementFunc: func(ctx context.Context, projectID, clientID string) (*models.Element, error) {
			f.mu.Lock()
			defer f.mu.Unlock()
			if e, ok := f.stored[projectID+"/"+clientID]; ok {
				return e.Clone(), nil
			}
			return nil, storage.ErrElementNotFound
		},
		ListElementsFunc: func(ctx context.Context, projectID string) ([]*models.Element, error) {
			return nil, nil
		},
		ListAllElementsFunc: func(ctx context.Context, projectID string) ([]*models.Element, error) {
			return nil, nil
		},
	}

	f.auth = &storage.AuthStorageMock{
		GetAuthFunc: func(ctx context.Context) (*storage.AuthData, error) {
			return &storage.AuthData{
				UserID:       "user-1",
				Username:     "writer",
				AccessToken:  "access-token",
				RefreshToken: "refresh-token",
			}, nil
		},
		SaveAuthFunc: func(ctx context.Context, auth *storage.AuthData) error { return nil },
	}

	f.apiMock = &httpClient.ClientAPIMock{
		PullFunc: func(ctx context.Context, accessToken, projectID string, since time.Time, cursor string) (*api.PullResponse, error) {
			return &api.PullResponse{}, nil
		},
		PushFunc: func(ctx context.Context, accessToken, projectID string, items []api.PushItem) (*api.PushResponse, error) {
			return &api.PushResponse{}, nil
		},
	}

	return f
}

func (f *fixture) service() *service {
	return &service{
		apiClient:   f.apiMock,
		changeLog:   f.changeLog,
		syncState:   f.syncState,
		elements:    f.elements,
		authStorage: f.auth,
		policy:      resolver.DefaultPolicy(),
		opts: Options{
			PushBatch:  10,
			BaseDelay:  time.Millisecond,
			MaxDelay:   5 * time.Millisecond,
			MaxRetries: 3,
		},
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		running: make(map[string]*projectRun),
	}
}

func (f *fixture) addPending(entry *models.ChangeLogEntry) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry.Sequence = f.nextSeq
	f.nextSeq++
	f.pending = append(f.pending, entry)
}

func TestSync_NotAuthenticated(t *testing.T) {
	f := newFixture()
	f.auth.GetAuthFunc = func(ctx context.Context) (*storage.AuthData, error) {
		return nil, storage.ErrAuthNotFound
	}

	_, err := f.service().Sync(context.Background(), testProject)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestSync_AppliesRemoteChanges(t *testing.T) {
	f := newFixture()
	updatedAt := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	payload := charPayload("Aria")

	f.apiMock.PullFunc = func(ctx context.Context, accessToken, projectID string, since time.Time, cursor string) (*api.PullResponse, error) {
		return &api.PullResponse{Records: []api.RemoteRecord{{
			UpdatedAt: updatedAt,
			ServerID:  "srv-1",
			ClientID:  "elem-1",
			ProjectID: testProject,
			Op:        api.RemoteOpCreated,
			Payload:   payload,
			Version:   1,
		}}}, nil
	}

	result, err := f.service().Sync(context.Background(), testProject)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Pulled)
	assert.Equal(t, 1, result.Applied)
	assert.Zero(t, result.Conflicts)

	element := f.stored[testProject+"/elem-1"]
	require.NotNil(t, element)
	assert.Equal(t, "srv-1", element.ServerID)
	assert.Equal(t, int64(1), element.Version)
	assert.Equal(t, "Aria", element.Payload.Name)

	state := f.synced[testProject+"/elem-1"]
	require.NotNil(t, state)
	assert.Equal(t, mustFingerprint(t, payload), state.Fingerprint)

	cursor := f.cursors[testProject]
	require.NotNil(t, cursor)
	assert.Equal(t, updatedAt, cursor.LastPulledAt)

	assert.Empty(t, f.apiMock.PushCalls())
}

func TestSync_PullPagination(t *testing.T) {
	f := newFixture()
	updatedAt := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	f.apiMock.PullFunc = func(ctx context.Context, accessToken, projectID string, since time.Time, cursor string) (*api.PullResponse, error) {
		if cursor == "" {
			return &api.PullResponse{
				Records: []api.RemoteRecord{{
					UpdatedAt: updatedAt,
					ClientID:  "elem-1",
					ProjectID: testProject,
					Op:        api.RemoteOpUpdated,
					Payload:   charPayload("Aria"),
					Version:   2,
				}},
				NextCursor: "25",
			}, nil
		}
		return &api.PullResponse{}, nil
	}

	result, err := f.service().Sync(context.Background(), testProject)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Pulled)
	calls := f.apiMock.PullCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, "", calls[0].Cursor)
	assert.Equal(t, "25", calls[1].Cursor)
}

func TestSync_PushAccepted(t *testing.T) {
	f := newFixture()
	payload := charPayload("Aria")
	appendedAt := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	serverTime := time.Date(2024, 6, 1, 9, 0, 5, 0, time.UTC)

	f.stored[testProject+"/elem-1"] = &models.Element{
		ClientID:  "elem-1",
		ProjectID: testProject,
		Payload:   payload,
	}
	f.addPending(&models.ChangeLogEntry{
		AppendedAt:      appendedAt,
		ClientID:        "elem-1",
		ProjectID:       testProject,
		Operation:       models.OpCreate,
		PayloadSnapshot: payload,
	})

	f.apiMock.PushFunc = func(ctx context.Context, accessToken, projectID string, items []api.PushItem) (*api.PushResponse, error) {
		require.Len(t, items, 1)
		assert.Equal(t, models.OpCreate, items[0].Operation)
		return &api.PushResponse{Results: []api.PushResult{{
			ServerUpdatedAt: serverTime,
			ClientID:        "elem-1",
			Status:          api.PushStatusAccepted,
			ServerID:        "srv-1",
			ServerVersion:   1,
		}}}, nil
	}

	result, err := f.service().Sync(context.Background(), testProject)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Pushed)
	assert.Equal(t, 1, result.Accepted)

	element := f.stored[testProject+"/elem-1"]
	assert.Equal(t, "srv-1", element.ServerID)
	assert.Equal(t, int64(1), element.Version)
	assert.Equal(t, serverTime, element.UpdatedAt)

	assert.Empty(t, f.pending)
	assert.Equal(t, uint64(1), f.cursors[testProject].LastPushedSequence)

	state := f.synced[testProject+"/elem-1"]
	require.NotNil(t, state)
	assert.Equal(t, int64(1), state.Version)
}

func TestSync_RemoteWinsConflict(t *testing.T) {
	f := newFixture()
	localPayload := charPayload("Aria the Bold")
	remotePayload := charPayload("Aria the Brave")

	f.synced[testProject+"/elem-1"] = &models.SyncedState{
		Fingerprint: mustFingerprint(t, charPayload("Aria")),
		Version:     1,
	}
	f.addPending(&models.ChangeLogEntry{
		AppendedAt:      time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
		ClientID:        "elem-1",
		ProjectID:       testProject,
		Operation:       models.OpUpdate,
		PayloadSnapshot: localPayload,
		BaseVersion:     1,
	})

	f.apiMock.PullFunc = func(ctx context.Context, accessToken, projectID string, since time.Time, cursor string) (*api.PullResponse, error) {
		return &api.PullResponse{Records: []api.RemoteRecord{{
			UpdatedAt: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
			ServerID:  "srv-1",
			ClientID:  "elem-1",
			ProjectID: testProject,
			Op:        api.RemoteOpUpdated,
			Payload:   remotePayload,
			Version:   2,
		}}}, nil
	}

	result, err := f.service().Sync(context.Background(), testProject)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Conflicts)
	assert.Equal(t, 1, result.Applied)
	assert.Equal(t, 1, result.Dropped)

	require.Len(t, f.conflicts, 1)
	conflict := f.conflicts[0]
	assert.Equal(t, models.WinnerRemote, conflict.Winner)
	assert.Equal(t, "Aria the Bold", conflict.LocalPayload.Name)
	assert.Equal(t, "Aria the Brave", conflict.RemotePayload.Name)

	assert.Equal(t, "Aria the Brave", f.stored[testProject+"/elem-1"].Payload.Name)
	assert.Empty(t, f.pending)
	assert.Empty(t, f.apiMock.PushCalls())
}

func TestSync_LocalWinsConflictRepushes(t *testing.T) {
	f := newFixture()
	localPayload := charPayload("Aria the Bold")

	f.synced[testProject+"/elem-1"] = &models.SyncedState{
		Fingerprint: mustFingerprint(t, charPayload("Aria")),
		Version:     1,
	}
	f.addPending(&models.ChangeLogEntry{
		AppendedAt:      time.Date(2024, 6, 1, 11, 0, 0, 0, time.UTC),
		ClientID:        "elem-1",
		ProjectID:       testProject,
		Operation:       models.OpUpdate,
		PayloadSnapshot: localPayload,
		BaseVersion:     1,
	})

	f.apiMock.PullFunc = func(ctx context.Context, accessToken, projectID string, since time.Time, cursor string) (*api.PullResponse, error) {
		return &api.PullResponse{Records: []api.RemoteRecord{{
			UpdatedAt: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
			ServerID:  "srv-1",
			ClientID:  "elem-1",
			ProjectID: testProject,
			Op:        api.RemoteOpUpdated,
			Payload:   charPayload("Aria the Brave"),
			Version:   2,
		}}}, nil
	}
	f.apiMock.PushFunc = func(ctx context.Context, accessToken, projectID string, items []api.PushItem) (*api.PushResponse, error) {
		require.Len(t, items, 1)
		// The re-push targets the remote version we resolved against.
		assert.Equal(t, int64(2), items[0].BaseVersion)
		return &api.PushResponse{Results: []api.PushResult{{
			ClientID:      "elem-1",
			Status:        api.PushStatusAccepted,
			ServerID:      "srv-1",
			ServerVersion: 3,
		}}}, nil
	}

	result, err := f.service().Sync(context.Background(), testProject)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Conflicts)
	assert.Equal(t, 1, result.Accepted)
	require.Len(t, f.conflicts, 1)
	assert.Equal(t, models.WinnerLocal, f.conflicts[0].Winner)

	require.Len(t, f.apiMock.PushCalls(), 1)
	assert.Empty(t, f.pending)
	assert.Equal(t, int64(3), f.synced[testProject+"/elem-1"].Version)
}

func TestSync_TombstonePropagates(t *testing.T) {
	f := newFixture()
	deletedAt := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	f.stored[testProject+"/elem-1"] = &models.Element{
		ClientID:  "elem-1",
		ProjectID: testProject,
		Payload:   charPayload("Aria"),
		Version:   1,
	}
	f.synced[testProject+"/elem-1"] = &models.SyncedState{
		Fingerprint: mustFingerprint(t, charPayload("Aria")),
		Version:     1,
	}

	f.apiMock.PullFunc = func(ctx context.Context, accessToken, projectID string, since time.Time, cursor string) (*api.PullResponse, error) {
		return &api.PullResponse{Records: []api.RemoteRecord{{
			UpdatedAt: deletedAt,
			DeletedAt: &deletedAt,
			ServerID:  "srv-1",
			ClientID:  "elem-1",
			ProjectID: testProject,
			Op:        api.RemoteOpDeleted,
			Version:   2,
		}}}, nil
	}

	result, err := f.service().Sync(context.Background(), testProject)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Applied)
	assert.Zero(t, result.Conflicts)

	element := f.stored[testProject+"/elem-1"]
	require.NotNil(t, element)
	assert.True(t, element.IsDeleted())
	assert.Equal(t, int64(2), element.Version)
}

func TestSync_LostAckAbsorbed(t *testing.T) {
	f := newFixture()
	payload := charPayload("Aria")

	// A previous cycle pushed this create but crashed before acknowledging.
	f.addPending(&models.ChangeLogEntry{
		AppendedAt:      time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
		ClientID:        "elem-1",
		ProjectID:       testProject,
		Operation:       models.OpCreate,
		PayloadSnapshot: payload,
	})

	f.apiMock.PullFunc = func(ctx context.Context, accessToken, projectID string, since time.Time, cursor string) (*api.PullResponse, error) {
		return &api.PullResponse{Records: []api.RemoteRecord{{
			UpdatedAt: time.Date(2024, 6, 1, 9, 0, 5, 0, time.UTC),
			ServerID:  "srv-1",
			ClientID:  "elem-1",
			ProjectID: testProject,
			Op:        api.RemoteOpCreated,
			Payload:   payload,
			Version:   1,
		}}}, nil
	}

	result, err := f.service().Sync(context.Background(), testProject)
	require.NoError(t, err)

	assert.Zero(t, result.Conflicts)
	assert.Equal(t, 1, result.Dropped)
	assert.Empty(t, f.conflicts)
	assert.Empty(t, f.pending)
	assert.Empty(t, f.apiMock.PushCalls())
}

func TestSync_RejectedExcludedUntilEdited(t *testing.T) {
	f := newFixture()
	f.addPending(&models.ChangeLogEntry{
		AppendedAt:      time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
		ClientID:        "elem-1",
		ProjectID:       testProject,
		Operation:       models.OpCreate,
		PayloadSnapshot: charPayload("Aria"),
	})

	f.apiMock.PushFunc = func(ctx context.Context, accessToken, projectID string, items []api.PushItem) (*api.PushResponse, error) {
		return &api.PushResponse{Results: []api.PushResult{{
			ClientID: "elem-1",
			Status:   api.PushStatusRejected,
			Reason:   "payload does not match category schema",
		}}}, nil
	}

	svc := f.service()
	result, err := svc.Sync(context.Background(), testProject)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Rejected)
	assert.Equal(t, "payload does not match category schema", f.rejects[testProject+"/elem-1"])
	// The entry stays pending so the user's work is not lost.
	assert.Len(t, f.pending, 1)

	// The next cycle must not resend the rejected mutation.
	_, err = svc.Sync(context.Background(), testProject)
	require.NoError(t, err)
	assert.Len(t, f.apiMock.PushCalls(), 1)
}

func TestSync_PushConflictRemoteWins(t *testing.T) {
	f := newFixture()
	remoteTime := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	remotePayload := charPayload("Aria the Brave")

	f.synced[testProject+"/elem-1"] = &models.SyncedState{
		Fingerprint: mustFingerprint(t, charPayload("Aria")),
		Version:     1,
	}
	f.addPending(&models.ChangeLogEntry{
		AppendedAt:      time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
		ClientID:        "elem-1",
		ProjectID:       testProject,
		Operation:       models.OpUpdate,
		PayloadSnapshot: charPayload("Aria the Bold"),
		BaseVersion:     1,
	})

	f.apiMock.PushFunc = func(ctx context.Context, accessToken, projectID string, items []api.PushItem) (*api.PushResponse, error) {
		return &api.PushResponse{Results: []api.PushResult{{
			ClientID: "elem-1",
			Status:   api.PushStatusConflict,
			RemoteState: &api.RemoteRecord{
				UpdatedAt: remoteTime,
				ServerID:  "srv-1",
				ClientID:  "elem-1",
				ProjectID: testProject,
				Op:        api.RemoteOpUpdated,
				Payload:   remotePayload,
				Version:   2,
			},
		}}}, nil
	}

	result, err := f.service().Sync(context.Background(), testProject)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Conflicts)
	assert.Equal(t, 1, result.Applied)
	assert.Equal(t, 1, result.Dropped)

	require.Len(t, f.conflicts, 1)
	assert.Equal(t, models.WinnerRemote, f.conflicts[0].Winner)
	assert.Equal(t, "Aria the Brave", f.stored[testProject+"/elem-1"].Payload.Name)
	assert.Empty(t, f.pending)
}

func TestSync_RefreshesExpiredSession(t *testing.T) {
	f := newFixture()
	var saved *storage.AuthData
	f.auth.SaveAuthFunc = func(ctx context.Context, auth *storage.AuthData) error {
		saved = auth
		return nil
	}

	calls := 0
	f.apiMock.PullFunc = func(ctx context.Context, accessToken, projectID string, since time.Time, cursor string) (*api.PullResponse, error) {
		calls++
		if calls == 1 {
			return nil, &httpClient.Error{Kind: httpClient.KindAuthExpired, Message: "token expired"}
		}
		assert.Equal(t, "new-access", accessToken)
		return &api.PullResponse{}, nil
	}
	f.apiMock.RefreshFunc = func(ctx context.Context, req api.RefreshRequest) (*api.TokenResponse, error) {
		assert.Equal(t, "refresh-token", req.RefreshToken)
		return &api.TokenResponse{
			AccessToken:  "new-access",
			RefreshToken: "new-refresh",
			ExpiresIn:    900,
		}, nil
	}

	_, err := f.service().Sync(context.Background(), testProject)
	require.NoError(t, err)

	require.Len(t, f.apiMock.RefreshCalls(), 1)
	require.NotNil(t, saved)
	assert.Equal(t, "new-access", saved.AccessToken)
	assert.Equal(t, "new-refresh", saved.RefreshToken)
}

func TestSync_RetriesTransientFailures(t *testing.T) {
	f := newFixture()
	calls := 0
	f.apiMock.PullFunc = func(ctx context.Context, accessToken, projectID string, since time.Time, cursor string) (*api.PullResponse, error) {
		calls++
		if calls == 1 {
			return nil, &httpClient.Error{Kind: httpClient.KindNetwork, Message: "connection refused"}
		}
		return &api.PullResponse{}, nil
	}

	_, err := f.service().Sync(context.Background(), testProject)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestSync_PermanentFailureStops(t *testing.T) {
	f := newFixture()
	f.apiMock.PullFunc = func(ctx context.Context, accessToken, projectID string, since time.Time, cursor string) (*api.PullResponse, error) {
		return nil, &httpClient.Error{Kind: httpClient.KindServerRejected, Message: "bad request", StatusCode: 400}
	}

	_, err := f.service().Sync(context.Background(), testProject)
	require.Error(t, err)
	assert.Len(t, f.apiMock.PullCalls(), 1)
}

func TestSync_ConcurrentRequestCoalesces(t *testing.T) {
	f := newFixture()
	release := make(chan struct{})
	started := make(chan struct{})
	var pullCalls int
	var mu gosync.Mutex

	f.apiMock.PullFunc = func(ctx context.Context, accessToken, projectID string, since time.Time, cursor string) (*api.PullResponse, error) {
		mu.Lock()
		pullCalls++
		first := pullCalls == 1
		mu.Unlock()
		if first {
			close(started)
			<-release
		}
		return &api.PullResponse{}, nil
	}

	svc := f.service()

	done := make(chan *SyncResult)
	go func() {
		result, err := svc.Sync(context.Background(), testProject)
		assert.NoError(t, err)
		done <- result
	}()

	<-started
	_, err := svc.Sync(context.Background(), testProject)
	assert.ErrorIs(t, err, ErrSyncInProgress)
	close(release)

	result := <-done
	// The blocked request was not lost: the running cycle ran once more.
	assert.Equal(t, 2, result.Cycles)
}

func TestService_ConflictPassthrough(t *testing.T) {
	f := newFixture()
	f.conflicts = append(f.conflicts, &models.ConflictRecord{ID: "c1", ProjectID: testProject})

	svc := f.service()

	conflicts, err := svc.Conflicts(context.Background(), testProject)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)

	require.NoError(t, svc.DismissConflict(context.Background(), "c1"))
	assert.Empty(t, f.conflicts)

	assert.ErrorIs(t, svc.DismissConflict(context.Background(), "c1"), storage.ErrConflictNotFound)
}
