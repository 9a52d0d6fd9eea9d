// Package sync implements the client sync coordinator: the single owner of
// the sync cycle. It drives pull, reconciliation, push and commit for one
// project at a time and is the only writer of the sync cursor.
package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	gosync "sync"
	"time"

	"github.com/sethvargo/go-retry"

	httpClient "github.com/loreforge/loreforge/internal/client/api"
	"github.com/loreforge/loreforge/internal/client/storage"
	"github.com/loreforge/loreforge/internal/fingerprint"
	"github.com/loreforge/loreforge/internal/models"
	"github.com/loreforge/loreforge/internal/resolver"
	"github.com/loreforge/loreforge/pkg/api"
)

var (
	// ErrSyncInProgress is returned when a cycle for the project is already
	// running. The request is not lost: the running cycle reruns once more
	// after it finishes.
	ErrSyncInProgress = errors.New("sync already in progress")

	// ErrNotAuthenticated is returned when no session is stored locally.
	ErrNotAuthenticated = errors.New("not authenticated")
)

//go:generate go tool moq -out service_mock.go . Service

// Service is the sync coordinator surface used by the CLI.
type Service interface {
	// Sync runs one full cycle for the project: pull remote changes,
	// reconcile them against pending local mutations, push what survived
	// and commit the new cursor. Requests arriving while a cycle runs are
	// coalesced into a single rerun.
	Sync(ctx context.Context, projectID string) (*SyncResult, error)

	// PendingCount returns the number of local mutations awaiting push.
	PendingCount(ctx context.Context, projectID string) (int, error)

	// Conflicts returns the retained conflict records for a project.
	Conflicts(ctx context.Context, projectID string) ([]*models.ConflictRecord, error)

	// DismissConflict removes a reviewed conflict record.
	DismissConflict(ctx context.Context, id string) error
}

// SyncResult summarizes what a Sync call did.
type SyncResult struct {
	Pulled    int // remote records received
	Applied   int // remote records written into local storage
	Pushed    int // local mutations sent
	Accepted  int // mutations the server persisted
	Rejected  int // mutations the server permanently refused
	Conflicts int // conflict records persisted
	Dropped   int // pending mutations superseded by the remote side
	Cycles    int // full cycles run, >1 when rerun requests coalesced
}

func (r *SyncResult) add(other *SyncResult) {
	r.Pulled += other.Pulled
	r.Applied += other.Applied
	r.Pushed += other.Pushed
	r.Accepted += other.Accepted
	r.Rejected += other.Rejected
	r.Conflicts += other.Conflicts
	r.Dropped += other.Dropped
}

// Options tune batching and retry behavior.
type Options struct {
	PushBatch  int           // max mutations per push request
	BaseDelay  time.Duration // first retry delay
	MaxDelay   time.Duration // cap for a single retry delay
	MaxRetries uint64        // retries per remote call before giving up
}

// DefaultOptions returns the production defaults.
func DefaultOptions() Options {
	return Options{
		PushBatch:  100,
		BaseDelay:  500 * time.Millisecond,
		MaxDelay:   15 * time.Second,
		MaxRetries: 5,
	}
}

type service struct {
	apiClient   httpClient.ClientAPI
	changeLog   storage.ChangeLogStorage
	syncState   storage.SyncStateStorage
	elements    storage.ElementStorage
	authStorage storage.AuthStorage
	policy      resolver.Policy
	opts        Options
	logger      *slog.Logger

	mu      gosync.Mutex
	running map[string]*projectRun
}

type projectRun struct {
	active bool
	rerun  bool
}

// NewService creates a sync coordinator.
func NewService(
	apiClient httpClient.ClientAPI,
	changeLog storage.ChangeLogStorage,
	syncState storage.SyncStateStorage,
	elements storage.ElementStorage,
	authStorage storage.AuthStorage,
	logger *slog.Logger,
) Service {
	return &service{
		apiClient:   apiClient,
		changeLog:   changeLog,
		syncState:   syncState,
		elements:    elements,
		authStorage: authStorage,
		policy:      resolver.DefaultPolicy(),
		opts:        DefaultOptions(),
		logger:      logger,
		running:     make(map[string]*projectRun),
	}
}

func (s *service) Sync(ctx context.Context, projectID string) (*SyncResult, error) {
	if !s.acquire(projectID) {
		return nil, ErrSyncInProgress
	}
	defer s.release(projectID)

	total := &SyncResult{}
	for {
		result, err := s.runCycle(ctx, projectID)
		if result != nil {
			total.add(result)
		}
		if err != nil {
			return total, err
		}
		total.Cycles++
		if !s.takeRerun(projectID) {
			return total, nil
		}
		s.logger.Info("Rerunning coalesced sync request", "project_id", projectID)
	}
}

func (s *service) PendingCount(ctx context.Context, projectID string) (int, error) {
	return s.changeLog.PendingCount(ctx, projectID)
}

func (s *service) Conflicts(ctx context.Context, projectID string) ([]*models.ConflictRecord, error) {
	return s.syncState.ListConflicts(ctx, projectID)
}

func (s *service) DismissConflict(ctx context.Context, id string) error {
	return s.syncState.DeleteConflict(ctx, id)
}

// acquire marks the project as syncing. If a cycle is already active it sets
// the rerun flag instead and reports false.
func (s *service) acquire(projectID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, ok := s.running[projectID]
	if !ok {
		run = &projectRun{}
		s.running[projectID] = run
	}
	if run.active {
		run.rerun = true
		return false
	}
	run.active = true
	return true
}

func (s *service) release(projectID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.running, projectID)
}

func (s *service) takeRerun(projectID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, ok := s.running[projectID]
	if !ok || !run.rerun {
		return false
	}
	run.rerun = false
	return true
}

// runCycle executes one pull/reconcile/push/commit pass. Every mutation of
// durable state happens in an order that keeps an interrupted cycle safe to
// rerun: remote values and conflict records land before acknowledgments,
// and the cursor advances last.
func (s *service) runCycle(ctx context.Context, projectID string) (*SyncResult, error) {
	session, err := s.session(ctx)
	if err != nil {
		return nil, err
	}

	result := &SyncResult{}

	cursor, err := s.syncState.GetCursor(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sync cursor: %w", err)
	}

	pending, err := s.pendingByClientID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	// forcedBase carries a client_id -> base version override for pending
	// entries whose local change won a conflict: the next push must target
	// the remote version we resolved against or the server would bounce it
	// again.
	forcedBase := make(map[string]int64)

	maxPulledAt, err := s.pullPhase(ctx, session, projectID, cursor, pending, forcedBase, result)
	if err != nil {
		return result, err
	}

	if maxPulledAt.After(cursor.LastPulledAt) {
		cursor.LastPulledAt = maxPulledAt
		if err := s.syncState.SaveCursor(ctx, cursor); err != nil {
			return result, fmt.Errorf("failed to save pull cursor: %w", err)
		}
	}

	if err := s.pushPhase(ctx, session, projectID, cursor, forcedBase, result); err != nil {
		return result, err
	}

	s.logger.Info("Sync cycle finished",
		"project_id", projectID,
		"pulled", result.Pulled,
		"applied", result.Applied,
		"pushed", result.Pushed,
		"accepted", result.Accepted,
		"rejected", result.Rejected,
		"conflicts", result.Conflicts)

	return result, nil
}

func (s *service) session(ctx context.Context) (*storage.AuthData, error) {
	auth, err := s.authStorage.GetAuth(ctx)
	if errors.Is(err, storage.ErrAuthNotFound) {
		return nil, ErrNotAuthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return auth, nil
}

func (s *service) pendingByClientID(ctx context.Context, projectID string) (map[string]*models.ChangeLogEntry, error) {
	entries, err := s.changeLog.Drain(ctx, projectID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to drain change log: %w", err)
	}
	pending := make(map[string]*models.ChangeLogEntry, len(entries))
	for _, entry := range entries {
		pending[entry.ClientID] = entry
	}
	return pending, nil
}

// pullPhase pages through remote changes since the cursor watermark and
// reconciles each record. Returns the newest remote updated_at observed.
func (s *service) pullPhase(
	ctx context.Context,
	session *storage.AuthData,
	projectID string,
	cursor *models.SyncCursor,
	pending map[string]*models.ChangeLogEntry,
	forcedBase map[string]int64,
	result *SyncResult,
) (time.Time, error) {
	var maxPulledAt time.Time
	pageCursor := ""

	for {
		resp, err := s.pullPage(ctx, session, projectID, cursor.LastPulledAt, pageCursor)
		if err != nil {
			return maxPulledAt, fmt.Errorf("pull failed: %w", err)
		}
		if len(resp.Records) == 0 {
			return maxPulledAt, nil
		}

		result.Pulled += len(resp.Records)

		for i := range resp.Records {
			record := &resp.Records[i]
			if record.UpdatedAt.After(maxPulledAt) {
				maxPulledAt = record.UpdatedAt
			}
			if err := s.reconcile(ctx, projectID, pending[record.ClientID], record, forcedBase, result); err != nil {
				return maxPulledAt, err
			}
		}

		if resp.NextCursor == "" {
			return maxPulledAt, nil
		}
		pageCursor = resp.NextCursor
	}
}

// reconcile resolves one remote record against the pending local entry and
// persists the decision. Ordering matters: the conflict record and the
// remote value are durable before the pending entry is removed, so an
// interruption never loses the losing side.
func (s *service) reconcile(
	ctx context.Context,
	projectID string,
	local *models.ChangeLogEntry,
	remote *api.RemoteRecord,
	forcedBase map[string]int64,
	result *SyncResult,
) error {
	base, err := s.syncState.GetSyncedState(ctx, projectID, remote.ClientID)
	if errors.Is(err, storage.ErrStateNotFound) {
		base = nil
	} else if err != nil {
		return fmt.Errorf("failed to load synced state: %w", err)
	}

	decision, err := s.policy.Resolve(resolver.Input{
		ProjectID: projectID,
		ClientID:  remote.ClientID,
		Local:     local,
		Base:      base,
		Remote:    remote,
	})
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", remote.ClientID, err)
	}

	if decision.Conflict != nil {
		if err := s.syncState.SaveConflict(ctx, decision.Conflict); err != nil {
			return fmt.Errorf("failed to save conflict record: %w", err)
		}
		result.Conflicts++
		s.logger.Warn("Conflict detected",
			"project_id", projectID,
			"client_id", remote.ClientID,
			"winner", decision.Conflict.Winner)
	}

	if decision.ApplyRemote {
		if err := s.applyRemote(ctx, remote); err != nil {
			return err
		}
		result.Applied++
	}

	if decision.DropLocal && local != nil {
		if err := s.changeLog.Acknowledge(ctx, projectID, []uint64{local.Sequence}); err != nil {
			return fmt.Errorf("failed to drop superseded entry: %w", err)
		}
		result.Dropped++
	}

	if decision.PushLocal {
		forcedBase[remote.ClientID] = remote.Version
	}

	return nil
}

// applyRemote writes a remote record into local element storage and records
// the new agreed state.
func (s *service) applyRemote(ctx context.Context, record *api.RemoteRecord) error {
	element := &models.Element{
		CreatedAt: record.UpdatedAt,
		UpdatedAt: record.UpdatedAt,
		DeletedAt: record.DeletedAt,
		ServerID:  record.ServerID,
		ClientID:  record.ClientID,
		ProjectID: record.ProjectID,
		Payload:   record.Payload,
		Version:   record.Version,
	}

	existing, err := s.elements.GetElement(ctx, record.ProjectID, record.ClientID)
	if err == nil {
		element.CreatedAt = existing.CreatedAt
	} else if !errors.Is(err, storage.ErrElementNotFound) {
		return fmt.Errorf("failed to load element: %w", err)
	}

	if err := s.elements.SaveElement(ctx, element); err != nil {
		return fmt.Errorf("failed to apply remote element: %w", err)
	}

	fp, err := fingerprint.Compute(record.Payload)
	if err != nil {
		return fmt.Errorf("failed to fingerprint remote payload: %w", err)
	}
	state := &models.SyncedState{Fingerprint: string(fp), Version: record.Version}
	if err := s.syncState.RecordSynced(ctx, record.ProjectID, record.ClientID, state); err != nil {
		return fmt.Errorf("failed to record synced state: %w", err)
	}

	return nil
}

// pushPhase drains the change log in batches and pushes everything that is
// not excluded by a rejection note. The loop stops when the log is empty or
// an iteration makes no progress.
func (s *service) pushPhase(
	ctx context.Context,
	session *storage.AuthData,
	projectID string,
	cursor *models.SyncCursor,
	forcedBase map[string]int64,
	result *SyncResult,
) error {
	for {
		entries, err := s.changeLog.Drain(ctx, projectID, s.opts.PushBatch)
		if err != nil {
			return fmt.Errorf("failed to drain change log: %w", err)
		}
		if len(entries) == 0 {
			return nil
		}

		items, byClientID, err := s.buildBatch(ctx, projectID, entries, forcedBase)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			// Everything pending carries a rejection note; nothing to send
			// until the user edits those elements again.
			return nil
		}

		resp, err := s.pushBatch(ctx, session, projectID, items)
		if err != nil {
			return fmt.Errorf("push failed: %w", err)
		}
		result.Pushed += len(items)

		progress, err := s.handlePushResults(ctx, projectID, cursor, resp.Results, byClientID, forcedBase, result)
		if err != nil {
			return err
		}
		if !progress {
			return nil
		}
	}
}

// buildBatch converts pending entries to push items, skipping entries with
// an active rejection note and applying base version overrides.
func (s *service) buildBatch(
	ctx context.Context,
	projectID string,
	entries []*models.ChangeLogEntry,
	forcedBase map[string]int64,
) ([]api.PushItem, map[string]*models.ChangeLogEntry, error) {
	items := make([]api.PushItem, 0, len(entries))
	byClientID := make(map[string]*models.ChangeLogEntry, len(entries))

	for _, entry := range entries {
		reason, err := s.syncState.GetRejection(ctx, projectID, entry.ClientID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to check rejection note: %w", err)
		}
		if reason != "" {
			continue
		}

		baseVersion := entry.BaseVersion
		if forced, ok := forcedBase[entry.ClientID]; ok {
			baseVersion = forced
		}

		items = append(items, api.PushItem{
			UpdatedAt:   entry.AppendedAt,
			ClientID:    entry.ClientID,
			Operation:   entry.Operation,
			Payload:     entry.PayloadSnapshot,
			BaseVersion: baseVersion,
		})
		byClientID[entry.ClientID] = entry
	}

	return items, byClientID, nil
}

// handlePushResults applies per-item outcomes. Reports whether the
// iteration made durable progress, so the caller can stop instead of
// resending an unchanged batch.
func (s *service) handlePushResults(
	ctx context.Context,
	projectID string,
	cursor *models.SyncCursor,
	results []api.PushResult,
	byClientID map[string]*models.ChangeLogEntry,
	forcedBase map[string]int64,
	result *SyncResult,
) (bool, error) {
	var acked []uint64
	progress := false

	for i := range results {
		res := &results[i]
		entry, ok := byClientID[res.ClientID]
		if !ok {
			s.logger.Warn("Push result for unknown client_id", "client_id", res.ClientID)
			continue
		}

		switch res.Status {
		case api.PushStatusAccepted:
			if err := s.commitAccepted(ctx, projectID, entry, res); err != nil {
				return false, err
			}
			acked = append(acked, entry.Sequence)
			result.Accepted++

		case api.PushStatusRejected:
			if err := s.syncState.RecordRejection(ctx, projectID, res.ClientID, res.Reason); err != nil {
				return false, fmt.Errorf("failed to record rejection: %w", err)
			}
			result.Rejected++
			progress = true
			s.logger.Warn("Server rejected mutation",
				"project_id", projectID,
				"client_id", res.ClientID,
				"reason", res.Reason)

		case api.PushStatusConflict:
			dropped, err := s.handlePushConflict(ctx, projectID, entry, res, forcedBase, result)
			if err != nil {
				return false, err
			}
			if dropped {
				acked = append(acked, entry.Sequence)
			}
			progress = true

		default:
			s.logger.Warn("Unknown push status", "status", res.Status, "client_id", res.ClientID)
		}
	}

	if len(acked) > 0 {
		if err := s.changeLog.Acknowledge(ctx, projectID, acked); err != nil {
			return false, fmt.Errorf("failed to acknowledge pushed entries: %w", err)
		}
		for _, seq := range acked {
			if seq > cursor.LastPushedSequence {
				cursor.LastPushedSequence = seq
			}
		}
		if err := s.syncState.SaveCursor(ctx, cursor); err != nil {
			return false, fmt.Errorf("failed to save push cursor: %w", err)
		}
		progress = true
	}

	return progress, nil
}

// commitAccepted updates the local element with server-assigned identity and
// records the new agreed state. Runs before the entry is acknowledged, so a
// crash in between re-pushes an already-accepted mutation, which the server
// absorbs idempotently.
func (s *service) commitAccepted(
	ctx context.Context,
	projectID string,
	entry *models.ChangeLogEntry,
	res *api.PushResult,
) error {
	element, err := s.elements.GetElement(ctx, projectID, entry.ClientID)
	if err == nil {
		element.ServerID = res.ServerID
		element.Version = res.ServerVersion
		element.UpdatedAt = res.ServerUpdatedAt
		if err := s.elements.SaveElement(ctx, element); err != nil {
			return fmt.Errorf("failed to update element after push: %w", err)
		}
	} else if !errors.Is(err, storage.ErrElementNotFound) {
		return fmt.Errorf("failed to load element after push: %w", err)
	}

	fp, err := fingerprint.Compute(entry.PayloadSnapshot)
	if err != nil {
		return fmt.Errorf("failed to fingerprint pushed payload: %w", err)
	}
	state := &models.SyncedState{Fingerprint: string(fp), Version: res.ServerVersion}
	if err := s.syncState.RecordSynced(ctx, projectID, entry.ClientID, state); err != nil {
		return fmt.Errorf("failed to record synced state: %w", err)
	}

	if err := s.syncState.ClearRejection(ctx, projectID, entry.ClientID); err != nil {
		return fmt.Errorf("failed to clear rejection note: %w", err)
	}

	return nil
}

// handlePushConflict resolves a base version mismatch reported by the
// server. Reports whether the pending entry was superseded and must be
// acknowledged.
func (s *service) handlePushConflict(
	ctx context.Context,
	projectID string,
	entry *models.ChangeLogEntry,
	res *api.PushResult,
	forcedBase map[string]int64,
	result *SyncResult,
) (bool, error) {
	if res.RemoteState == nil {
		return false, fmt.Errorf("conflict result for %s without remote state", res.ClientID)
	}

	base, err := s.syncState.GetSyncedState(ctx, projectID, entry.ClientID)
	if errors.Is(err, storage.ErrStateNotFound) {
		base = nil
	} else if err != nil {
		return false, fmt.Errorf("failed to load synced state: %w", err)
	}

	decision, err := s.policy.Resolve(resolver.Input{
		ProjectID: projectID,
		ClientID:  entry.ClientID,
		Local:     entry,
		Base:      base,
		Remote:    res.RemoteState,
	})
	if err != nil {
		return false, fmt.Errorf("failed to resolve push conflict for %s: %w", entry.ClientID, err)
	}

	if decision.Conflict != nil {
		if err := s.syncState.SaveConflict(ctx, decision.Conflict); err != nil {
			return false, fmt.Errorf("failed to save conflict record: %w", err)
		}
		result.Conflicts++
	}

	if decision.ApplyRemote {
		if err := s.applyRemote(ctx, res.RemoteState); err != nil {
			return false, err
		}
		result.Applied++
	}

	if decision.PushLocal {
		forcedBase[entry.ClientID] = res.RemoteState.Version
	}

	if decision.DropLocal {
		result.Dropped++
		return true, nil
	}
	return false, nil
}

// pullPage fetches one page of remote changes with retry and a one-shot
// token refresh on an expired session.
func (s *service) pullPage(
	ctx context.Context,
	session *storage.AuthData,
	projectID string,
	since time.Time,
	pageCursor string,
) (*api.PullResponse, error) {
	var resp *api.PullResponse
	err := s.withRetry(ctx, func(ctx context.Context) error {
		var err error
		resp, err = s.apiClient.Pull(ctx, session.AccessToken, projectID, since, pageCursor)
		if httpClient.IsAuthExpired(err) {
			if rerr := s.refreshSession(ctx, session); rerr != nil {
				return rerr
			}
			resp, err = s.apiClient.Pull(ctx, session.AccessToken, projectID, since, pageCursor)
		}
		return err
	})
	return resp, err
}

func (s *service) pushBatch(
	ctx context.Context,
	session *storage.AuthData,
	projectID string,
	items []api.PushItem,
) (*api.PushResponse, error) {
	var resp *api.PushResponse
	err := s.withRetry(ctx, func(ctx context.Context) error {
		var err error
		resp, err = s.apiClient.Push(ctx, session.AccessToken, projectID, items)
		if httpClient.IsAuthExpired(err) {
			if rerr := s.refreshSession(ctx, session); rerr != nil {
				return rerr
			}
			resp, err = s.apiClient.Push(ctx, session.AccessToken, projectID, items)
		}
		return err
	})
	return resp, err
}

// withRetry runs op with capped fibonacci backoff. Transient failures retry;
// a server-provided Retry-After delay is honored before the next attempt.
func (s *service) withRetry(ctx context.Context, op func(ctx context.Context) error) error {
	backoff := retry.NewFibonacci(s.opts.BaseDelay)
	backoff = retry.WithCappedDuration(s.opts.MaxDelay, backoff)
	backoff = retry.WithJitterPercent(10, backoff)
	backoff = retry.WithMaxRetries(s.opts.MaxRetries, backoff)

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := op(ctx)
		if err == nil {
			return nil
		}
		if delay := httpClient.RetryAfter(err); delay > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
			return retry.RetryableError(err)
		}
		if httpClient.IsRetryable(err) {
			s.logger.Warn("Transient sync failure, will retry", "error", err)
			return retry.RetryableError(err)
		}
		return err
	})
}

// refreshSession exchanges the refresh token for a new token pair and
// persists the updated session.
func (s *service) refreshSession(ctx context.Context, session *storage.AuthData) error {
	resp, err := s.apiClient.Refresh(ctx, api.RefreshRequest{RefreshToken: session.RefreshToken})
	if err != nil {
		return fmt.Errorf("failed to refresh session: %w", err)
	}

	session.AccessToken = resp.AccessToken
	session.RefreshToken = resp.RefreshToken
	session.ExpiresAt = time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second).Unix()

	if err := s.authStorage.SaveAuth(ctx, session); err != nil {
		return fmt.Errorf("failed to save refreshed session: %w", err)
	}
	return nil
}
