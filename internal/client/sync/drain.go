package sync

import (
	"context"
	"errors"

	httpapi "github.com/cjliu2003/writersroom-sub009/internal/client/api"
	"github.com/cjliu2003/writersroom-sub009/internal/models"
	"github.com/cjliu2003/writersroom-sub009/pkg/api"
)

// DrainQueue replays queued saves for this document strictly sequentially in
// FIFO enqueue order, each with its own base version. A successful item
// rewrites the base version of every remaining item, in memory and in
// durable storage, so an earlier success does not cascade into false
// conflicts. The drain never runs concurrently with a live save for the same
// document.
func (s *Synchronizer) DrainQueue(ctx context.Context) error {
	s.mu.Lock()
	if s.closed || s.processingQueue || s.inFlight || !s.online {
		s.mu.Unlock()
		return nil
	}
	// The replay rewrites base versions as items land, so a retry armed
	// for an earlier rate limit or backoff would fire against a stale
	// base. Cancel it; finishDrain reschedules anything still unsaved.
	if s.retryTimer != nil {
		s.retryTimer.Stop()
		s.retryTimer = nil
		s.opID = ""
		s.attempt = 0
		s.fastForwarded = false
		s.retryAfter = 0
	}
	s.processingQueue = true
	s.notifyLocked()
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.processingQueue = false
		s.notifyLocked()
		s.mu.Unlock()
	}()

	items, err := s.queue.List(ctx, s.docID)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}

	s.logger.Info("replaying offline queue", "items", len(items))

	for i := 0; i < len(items); {
		item := items[i]

		resp, err := s.replayItem(ctx, item)
		switch {
		case err == nil:
			if removeErr := s.queue.Remove(ctx, item.ID); removeErr != nil {
				s.logger.Warn("failed to remove replayed save", "op_id", item.ID, "error", removeErr)
			}
			s.adoptReplayedVersion(resp, item.Content)
			// Rewrite the base version on every remaining item to
			// the newly confirmed version.
			for j := i + 1; j < len(items); j++ {
				items[j].BaseVersion = resp.NewVersion
				if updateErr := s.queue.Update(ctx, items[j]); updateErr != nil {
					s.logger.Warn("failed to rewrite queued base version",
						"op_id", items[j].ID, "error", updateErr)
				}
			}
			i++

		case errors.Is(err, httpapi.ErrConflict):
			// Blind replay does not auto-resolve conflicts.
			s.logger.Warn("queued save conflicted, dropping", "op_id", item.ID)
			if removeErr := s.queue.Remove(ctx, item.ID); removeErr != nil {
				s.logger.Warn("failed to remove conflicted save", "op_id", item.ID, "error", removeErr)
			}
			i++

		case errors.Is(err, httpapi.ErrRateLimited):
			// Block the drain for the suggested wait, then retry the
			// same item without advancing.
			var rlErr *httpapi.RateLimitError
			errors.As(err, &rlErr)
			s.logger.Warn("queue replay rate limited", "retry_after", rlErr.RetryAfter)
			if sleepErr := s.clock.Sleep(ctx, rlErr.RetryAfter); sleepErr != nil {
				return sleepErr
			}

		case errors.Is(err, httpapi.ErrNetwork):
			// Still unreachable; stop and keep the rest queued.
			s.logger.Warn("queue replay interrupted, back offline", "error", err)
			s.mu.Lock()
			s.online = false
			s.state = models.SaveStateOffline
			s.notifyLocked()
			s.mu.Unlock()
			return nil

		default:
			item.RetryCount++
			if item.RetryCount > s.cfg.QueueMaxRetries {
				s.logger.Error("queued save exhausted retries, dropping",
					"op_id", item.ID, "retry_count", item.RetryCount)
				if removeErr := s.queue.Remove(ctx, item.ID); removeErr != nil {
					s.logger.Warn("failed to remove exhausted save", "op_id", item.ID, "error", removeErr)
				}
			} else {
				s.logger.Warn("queued save failed, keeping for next drain",
					"op_id", item.ID, "retry_count", item.RetryCount, "error", err)
				if updateErr := s.queue.Update(ctx, item); updateErr != nil {
					s.logger.Warn("failed to record retry count", "op_id", item.ID, "error", updateErr)
				}
			}
			i++
		}
	}

	s.finishDrain()
	return nil
}

// replayItem issues one queued save with the item's own base version and
// idempotency key.
func (s *Synchronizer) replayItem(ctx context.Context, item *models.PendingSave) (*api.SaveResponse, error) {
	token, err := s.tokens.AccessToken(ctx)
	if err != nil {
		return nil, err
	}
	req := api.SaveRequest{
		Content:         item.Content,
		BaseVersion:     item.BaseVersion,
		OpID:            item.ID,
		UpdatedAtClient: s.clock.Now().UTC(),
	}
	return s.transport.SaveDocument(ctx, token, s.docID, req)
}

// adoptReplayedVersion folds a confirmed replay into the version state.
func (s *Synchronizer) adoptReplayedVersion(resp *api.SaveResponse, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if resp.NewVersion > s.version {
		s.version = resp.NewVersion
	}
	s.lastSaved = content
	s.lastSavedAt = resp.UpdatedAt
	if s.lastSavedAt.IsZero() {
		s.lastSavedAt = s.clock.Now().UTC()
	}
	s.notifyLocked()
}

// finishDrain settles the externally visible state once the queue is empty.
// Any draft the drain did not cover goes back through the scheduler: save
// attempts swallowed during the replay (a swallowed scheduler fire, a
// cancelled rate-limit or backoff retry) are rescheduled here rather than
// issued mid-drain.
func (s *Synchronizer) finishDrain() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == models.SaveStateConflict || s.state == models.SaveStateError {
		return
	}
	if s.draft != "" && s.draft != s.lastSaved {
		s.state = models.SaveStatePending
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
	switch s.state {
	case models.SaveStateOffline, models.SaveStateRateLimited, models.SaveStatePending:
		s.state = models.SaveStateSaved
		s.notifyLocked()
	}
}
