// Package sync implements the autosave synchronization engine: debounced
// save scheduling, the versioned save protocol, conflict resolution,
// rate-limit handling and the durable offline queue replay.
package sync

import (
	"context"
	"errors"
	"log/slog"
	gosync "sync"
	"time"

	"github.com/google/uuid"

	httpapi "github.com/cjliu2003/writersroom-sub009/internal/client/api"
	"github.com/cjliu2003/writersroom-sub009/internal/client/storage"
	"github.com/cjliu2003/writersroom-sub009/internal/models"
	"github.com/cjliu2003/writersroom-sub009/pkg/api"
)

// Defaults for the scheduling and retry policy.
const (
	DefaultDebounceInterval = 1500 * time.Millisecond
	DefaultMaxWait          = 5 * time.Second
	DefaultMaxRetries       = 3
	DefaultQueueMaxRetries  = 3
)

// Config tunes one Synchronizer. Zero values fall back to the defaults.
type Config struct {
	// DebounceInterval is how long after the last edit a save fires.
	DebounceInterval time.Duration
	// MaxWait bounds the time from the first unsaved edit to the first
	// save attempt, regardless of continued typing.
	MaxWait time.Duration
	// MaxRetries caps automatic retries of transient server errors for a
	// live save. After the cap the state becomes error and further
	// attempts require an explicit Retry call.
	MaxRetries int
	// QueueMaxRetries caps replay retries per queued item. Independent of
	// MaxRetries: live saves and queue replays keep separate counters.
	QueueMaxRetries int
}

func (c Config) withDefaults() Config {
	if c.DebounceInterval <= 0 {
		c.DebounceInterval = DefaultDebounceInterval
	}
	if c.MaxWait <= 0 {
		c.MaxWait = DefaultMaxWait
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.QueueMaxRetries <= 0 {
		c.QueueMaxRetries = DefaultQueueMaxRetries
	}
	return c
}

// TokenSource supplies the opaque bearer credential attached to every save.
// The engine never interprets the token; refresh happens behind this
// interface.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// TokenSourceFunc adapts a function to the TokenSource interface.
type TokenSourceFunc func(ctx context.Context) (string, error)

func (f TokenSourceFunc) AccessToken(ctx context.Context) (string, error) { return f(ctx) }

// Synchronizer owns the save lifecycle of one open document: it coalesces
// edits into debounced save attempts, tracks the server-authoritative
// version, resolves conflicts, honors rate limits and feeds the durable
// queue when the server is unreachable.
//
// All state is serialized through one mutex; at most one save attempt is in
// flight at any time. Listeners registered with Subscribe are invoked with
// the lock held and must not call back into the Synchronizer.
type Synchronizer struct {
	cfg       Config
	transport httpapi.Transport
	queue     storage.QueueStorage
	tokens    TokenSource
	clock     Clock
	logger    *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu    gosync.Mutex
	docID string

	// Version state. version is server-authoritative and never decreases.
	version     int64
	draft       string
	lastSaved   string
	lastSavedAt time.Time

	// State machine fields, mirrored into SyncState snapshots.
	state           models.SaveState
	conflict        *models.ConflictInfo
	errMsg          string
	retryAfter      time.Duration
	processingQueue bool

	online   bool
	inFlight bool

	// Per-cycle bookkeeping. opID is the idempotency key of the current
	// logical attempt and stays stable across its retries. fastForwarded
	// latches after the single automatic fast-forward of a cycle.
	opID          string
	attempt       int
	fastForwarded bool

	debounceTimer Timer
	maxWaitTimer  Timer
	retryTimer    Timer

	listeners []func(models.SyncState)
	closed    bool
}

// New creates a Synchronizer for one document, seeded with the
// server-reported version. The document starts online and idle.
func New(docID string, version int64, transport httpapi.Transport, queue storage.QueueStorage, tokens TokenSource, clock Clock, logger *slog.Logger, cfg Config) *Synchronizer {
	ctx, cancel := context.WithCancel(context.Background())
	return &Synchronizer{
		cfg:       cfg.withDefaults(),
		transport: transport,
		queue:     queue,
		tokens:    tokens,
		clock:     clock,
		logger:    logger.With("doc_id", docID),
		ctx:       ctx,
		cancel:    cancel,
		docID:     docID,
		version:   version,
		state:     models.SaveStateIdle,
		online:    true,
	}
}

// Subscribe registers a listener invoked after every state transition.
// Listeners run with the Synchronizer lock held and must not call back in.
func (s *Synchronizer) Subscribe(fn func(models.SyncState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// State returns a point-in-time snapshot of the synchronization status.
func (s *Synchronizer) State() models.SyncState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Content returns the current local draft.
func (s *Synchronizer) Content() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// Version returns the current server-confirmed version.
func (s *Synchronizer) Version() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// MarkChanged records a new local content snapshot. A no-op when the content
// matches the last saved snapshot. Otherwise it (re)arms the debounce timer
// and, if not already running, the max-wait timer, so the first save attempt
// after the first unsaved edit is bounded by MaxWait even under continuous
// typing.
func (s *Synchronizer) MarkChanged(content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	if content == s.lastSaved {
		s.draft = content
		// An undo back to the saved snapshot leaves nothing to send.
		// Cancel whatever was scheduled for the abandoned edit and
		// settle the visible state.
		if s.state == models.SaveStatePending || s.state == models.SaveStateRateLimited {
			s.stopSchedulerTimersLocked()
			if s.retryTimer != nil {
				s.retryTimer.Stop()
				s.retryTimer = nil
			}
			s.opID = ""
			s.attempt = 0
			s.fastForwarded = false
			s.retryAfter = 0
			if s.lastSavedAt.IsZero() {
				s.state = models.SaveStateIdle
			} else {
				s.state = models.SaveStateSaved
			}
			s.notifyLocked()
		}
		return
	}
	s.draft = content

	// An unresolved conflict keeps the document in the conflict state;
	// the draft still tracks the newest edit for Force Local.
	if s.state == models.SaveStateConflict {
		return
	}

	if s.state != models.SaveStatePending {
		s.state = models.SaveStatePending
		s.notifyLocked()
	}

	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
	}
	s.debounceTimer = s.clock.AfterFunc(s.cfg.DebounceInterval, s.onSaveTimer)

	if s.maxWaitTimer == nil {
		s.maxWaitTimer = s.clock.AfterFunc(s.cfg.MaxWait, s.onSaveTimer)
	}
}

// SaveNow cancels both scheduler timers and issues a save attempt
// immediately. A no-op when there is nothing unsaved.
func (s *Synchronizer) SaveNow() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.state == models.SaveStateConflict {
		return
	}
	s.stopSchedulerTimersLocked()
	if s.draft == s.lastSaved {
		return
	}
	if s.inFlight || s.processingQueue {
		return
	}
	s.startCycleLocked()
}

// Retry restarts a save that exhausted its automatic retries. Only valid in
// the error state; the retry keeps the cycle's idempotency key.
func (s *Synchronizer) Retry() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.processingQueue || s.state != models.SaveStateError {
		return
	}
	s.attempt = 0
	s.errMsg = ""
	s.beginAttemptLocked(s.draft, s.version, s.opID)
}

// SetOnline records an edge-triggered connectivity change. Reconnect does
// not start a drain by itself; the Manager owns that.
func (s *Synchronizer) SetOnline(online bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.online = online
}

// Online reports the last known connectivity state.
func (s *Synchronizer) Online() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.online
}

// Reset rebinds the Synchronizer to a new document identity: timers are
// cancelled, pending cycle state is cleared and the version is re-seeded.
func (s *Synchronizer) Reset(docID string, version int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.stopSchedulerTimersLocked()
	if s.retryTimer != nil {
		s.retryTimer.Stop()
		s.retryTimer = nil
	}
	s.docID = docID
	s.logger = s.logger.With("doc_id", docID)
	s.version = version
	s.draft = ""
	s.lastSaved = ""
	s.lastSavedAt = time.Time{}
	s.state = models.SaveStateIdle
	s.conflict = nil
	s.errMsg = ""
	s.retryAfter = 0
	s.opID = ""
	s.attempt = 0
	s.fastForwarded = false
	s.notifyLocked()
}

// Close cancels all timers and in-flight work. The Synchronizer must not be
// used afterwards.
func (s *Synchronizer) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.stopSchedulerTimersLocked()
	if s.retryTimer != nil {
		s.retryTimer.Stop()
		s.retryTimer = nil
	}
	s.cancel()
}

// onSaveTimer fires when either scheduler timer elapses. Both timers are
// cancelled; if a save is already in flight the completion handler will
// re-arm the scheduler for the newer draft.
func (s *Synchronizer) onSaveTimer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.stopSchedulerTimersLocked()
	if s.inFlight || s.processingQueue {
		return
	}
	if s.draft == s.lastSaved || s.state == models.SaveStateConflict {
		return
	}
	s.startCycleLocked()
}

// startCycleLocked begins a fresh logical save attempt: new idempotency key,
// reset retry counters, cleared fast-forward latch.
func (s *Synchronizer) startCycleLocked() {
	s.opID = uuid.NewString()
	s.attempt = 0
	s.fastForwarded = false
	s.beginAttemptLocked(s.draft, s.version, s.opID)
}

// beginAttemptLocked issues one save attempt. When the client already knows
// it is offline the attempt goes straight to the durable queue.
func (s *Synchronizer) beginAttemptLocked(content string, baseVersion int64, opID string) {
	if !s.online {
		s.enqueueLocked(content, baseVersion, opID)
		return
	}

	s.state = models.SaveStateSaving
	s.inFlight = true
	s.notifyLocked()

	go s.doSave(content, baseVersion, opID)
}

// doSave runs one save attempt off the lock. An automatic fast-forward
// repeats the call in the same goroutine with the adopted base version.
func (s *Synchronizer) doSave(content string, baseVersion int64, opID string) {
	for {
		req := api.SaveRequest{
			Content:         content,
			BaseVersion:     baseVersion,
			OpID:            opID,
			UpdatedAtClient: s.clock.Now().UTC(),
		}

		var resp *api.SaveResponse
		token, err := s.tokens.AccessToken(s.ctx)
		if err == nil {
			resp, err = s.transport.SaveDocument(s.ctx, token, s.docID, req)
		}

		nextBase, retryNow := s.handleOutcome(resp, err, content, baseVersion, opID)
		if !retryNow {
			return
		}
		baseVersion = nextBase
	}
}

// handleOutcome interprets one transport outcome. It returns a base version
// and true when the caller should retry immediately (the single automatic
// fast-forward of the cycle).
func (s *Synchronizer) handleOutcome(resp *api.SaveResponse, err error, content string, baseVersion int64, opID string) (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false

	if s.closed || opID != s.opID {
		// A Reset or Close invalidated this cycle mid-flight.
		return 0, false
	}

	if err == nil {
		s.completeSuccessLocked(resp, content)
		return 0, false
	}

	var conflictErr *httpapi.ConflictError
	var rateLimitErr *httpapi.RateLimitError
	var netErr *httpapi.NetworkError

	switch {
	case errors.As(err, &conflictErr):
		if !s.fastForwarded {
			// Adopt the server's version once and retry the same
			// content under the same idempotency key.
			s.fastForwarded = true
			s.inFlight = true
			s.logger.Info("save conflict, fast-forwarding",
				"base_version", baseVersion,
				"latest_version", conflictErr.Info.LatestVersion)
			return conflictErr.Info.LatestVersion, true
		}
		s.logger.Warn("save conflict after fast-forward, surfacing",
			"latest_version", conflictErr.Info.LatestVersion)
		info := conflictErr.Info
		s.conflict = &info
		s.state = models.SaveStateConflict
		s.notifyLocked()

	case errors.As(err, &rateLimitErr):
		s.retryAfter = rateLimitErr.RetryAfter
		s.state = models.SaveStateRateLimited
		s.logger.Warn("save rate limited", "retry_after", rateLimitErr.RetryAfter)
		s.notifyLocked()
		s.scheduleRetryLocked(rateLimitErr.RetryAfter, content, baseVersion, opID)

	case errors.As(err, &netErr):
		s.online = false
		s.logger.Warn("save failed, no response received", "error", err)
		s.enqueueLocked(content, baseVersion, opID)

	default:
		s.attempt++
		if s.attempt >= s.cfg.MaxRetries {
			s.errMsg = err.Error()
			s.state = models.SaveStateError
			s.logger.Error("save failed, retries exhausted",
				"attempts", s.attempt, "error", err)
			s.notifyLocked()
			return 0, false
		}
		// Bounded exponential backoff: 2^attempt seconds.
		delay := time.Duration(1<<uint(s.attempt)) * time.Second
		s.state = models.SaveStatePending
		s.logger.Warn("save failed, retrying",
			"attempt", s.attempt, "delay", delay, "error", err)
		s.notifyLocked()
		s.scheduleRetryLocked(delay, content, baseVersion, opID)
	}

	return 0, false
}

// completeSuccessLocked adopts the confirmed version and closes the cycle.
func (s *Synchronizer) completeSuccessLocked(resp *api.SaveResponse, content string) {
	if resp.NewVersion > s.version {
		s.version = resp.NewVersion
	}
	s.lastSaved = content
	s.lastSavedAt = resp.UpdatedAt
	if s.lastSavedAt.IsZero() {
		s.lastSavedAt = s.clock.Now().UTC()
	}
	s.opID = ""
	s.attempt = 0
	s.fastForwarded = false
	s.conflict = nil
	s.errMsg = ""
	s.retryAfter = 0

	// A confirmed live save supersedes any stale queued copies.
	if err := s.queue.RemoveForDocument(s.ctx, s.docID); err != nil {
		s.logger.Warn("failed to clear queued saves", "error", err)
	}

	if s.draft != s.lastSaved {
		// Newer edits arrived mid-flight; go straight back to the
		// scheduler.
		s.state = models.SaveStatePending
		s.logger.Debug("save confirmed with newer local edits pending",
			"version", s.version)
		s.notifyLocked()
		if s.debounceTimer != nil {
			s.debounceTimer.Stop()
		}
		s.debounceTimer = s.clock.AfterFunc(s.cfg.DebounceInterval, s.onSaveTimer)
		if s.maxWaitTimer == nil {
			s.maxWaitTimer = s.clock.AfterFunc(s.cfg.MaxWait, s.onSaveTimer)
		}
		return
	}

	s.state = models.SaveStateSaved
	s.logger.Info("save confirmed", "version", s.version)
	s.notifyLocked()
}

// scheduleRetryLocked arms the retry timer to repeat the same request:
// same content, same base version, same idempotency key.
func (s *Synchronizer) scheduleRetryLocked(delay time.Duration, content string, baseVersion int64, opID string) {
	if s.retryTimer != nil {
		s.retryTimer.Stop()
	}
	s.retryTimer = s.clock.AfterFunc(delay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed || opID != s.opID || s.inFlight || s.processingQueue {
			return
		}
		s.retryAfter = 0
		s.beginAttemptLocked(content, baseVersion, opID)
	})
}

// enqueueLocked parks the attempt in the durable queue and surfaces the
// offline state. Only connectivity-class failures reach here; server error
// statuses never enqueue.
func (s *Synchronizer) enqueueLocked(content string, baseVersion int64, opID string) {
	save := &models.PendingSave{
		ID:          opID,
		DocumentID:  s.docID,
		Content:     content,
		BaseVersion: baseVersion,
		EnqueuedAt:  s.clock.Now().UTC(),
	}
	if err := s.queue.Enqueue(s.ctx, save); err != nil {
		// Queueing failed on top of being offline: surface an error
		// instead of silently dropping the edit.
		s.errMsg = err.Error()
		s.state = models.SaveStateError
		s.logger.Error("failed to enqueue offline save", "error", err)
		s.notifyLocked()
		return
	}

	s.logger.Info("save queued for replay", "op_id", opID, "base_version", baseVersion)
	s.opID = ""
	s.attempt = 0
	s.fastForwarded = false
	s.state = models.SaveStateOffline
	s.notifyLocked()
}

func (s *Synchronizer) stopSchedulerTimersLocked() {
	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
		s.debounceTimer = nil
	}
	if s.maxWaitTimer != nil {
		s.maxWaitTimer.Stop()
		s.maxWaitTimer = nil
	}
}

func (s *Synchronizer) snapshotLocked() models.SyncState {
	snap := models.SyncState{
		DocumentID:        s.docID,
		SaveState:         s.state,
		CurrentVersion:    s.version,
		LastSavedAt:       s.lastSavedAt,
		Error:             s.errMsg,
		RetryAfter:        s.retryAfter,
		IsProcessingQueue: s.processingQueue,
	}
	if s.conflict != nil {
		info := *s.conflict
		snap.Conflict = &info
	}
	return snap
}

func (s *Synchronizer) notifyLocked() {
	snap := s.snapshotLocked()
	for _, fn := range s.listeners {
		fn(snap)
	}
}
