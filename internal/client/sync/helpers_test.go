package sync

import (
	"context"
	"log/slog"
	"os"
	gosync "sync"
	"testing"
	"time"

	httpapi "github.com/cjliu2003/writersroom-sub009/internal/client/api"
	"github.com/cjliu2003/writersroom-sub009/internal/client/storage"
	"github.com/cjliu2003/writersroom-sub009/internal/models"
	"github.com/cjliu2003/writersroom-sub009/pkg/api"
)

const testToken = "test-token"

func testTokens() TokenSource {
	return TokenSourceFunc(func(ctx context.Context) (string, error) {
		return testToken, nil
	})
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

// memQueue is an in-memory QueueStorage used to observe queue effects
// without touching disk.
type memQueue struct {
	mu    gosync.Mutex
	items []*models.PendingSave
}

func newMemQueue() (*memQueue, *storage.QueueStorageMock) {
	q := &memQueue{}
	mock := &storage.QueueStorageMock{
		EnqueueFunc: func(ctx context.Context, save *models.PendingSave) error {
			q.mu.Lock()
			defer q.mu.Unlock()
			clone := *save
			q.items = append(q.items, &clone)
			return nil
		},
		ListFunc: func(ctx context.Context, documentID string) ([]*models.PendingSave, error) {
			q.mu.Lock()
			defer q.mu.Unlock()
			var out []*models.PendingSave
			for _, item := range q.items {
				if item.DocumentID == documentID {
					clone := *item
					out = append(out, &clone)
				}
			}
			return out, nil
		},
		UpdateFunc: func(ctx context.Context, save *models.PendingSave) error {
			q.mu.Lock()
			defer q.mu.Unlock()
			for i, item := range q.items {
				if item.ID == save.ID {
					clone := *save
					q.items[i] = &clone
					return nil
				}
			}
			return storage.ErrPendingSaveNotFound
		},
		RemoveFunc: func(ctx context.Context, id string) error {
			q.mu.Lock()
			defer q.mu.Unlock()
			for i, item := range q.items {
				if item.ID == id {
					q.items = append(q.items[:i], q.items[i+1:]...)
					return nil
				}
			}
			return storage.ErrPendingSaveNotFound
		},
		RemoveForDocumentFunc: func(ctx context.Context, documentID string) error {
			q.mu.Lock()
			defer q.mu.Unlock()
			kept := q.items[:0]
			for _, item := range q.items {
				if item.DocumentID != documentID {
					kept = append(kept, item)
				}
			}
			q.items = kept
			return nil
		},
	}
	return q, mock
}

func (q *memQueue) snapshot() []*models.PendingSave {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]*models.PendingSave, 0, len(q.items))
	for _, item := range q.items {
		clone := *item
		out = append(out, &clone)
	}
	return out
}

func (q *memQueue) seed(saves ...*models.PendingSave) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, save := range saves {
		clone := *save
		q.items = append(q.items, &clone)
	}
}

// stateRecorder collects every state transition a Synchronizer reports.
type stateRecorder struct {
	mu     gosync.Mutex
	states []models.SyncState
}

func (r *stateRecorder) record(state models.SyncState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, state)
}

func (r *stateRecorder) saveStates() []models.SaveState {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.SaveState, 0, len(r.states))
	for _, s := range r.states {
		out = append(out, s.SaveState)
	}
	return out
}

func (r *stateRecorder) seen(target models.SaveState) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.states {
		if s.SaveState == target {
			return true
		}
	}
	return false
}

// incrementingSaves answers every save with new_version = base_version + 1.
func incrementingSaves() func(ctx context.Context, accessToken, docID string, req api.SaveRequest) (*api.SaveResponse, error) {
	return func(ctx context.Context, accessToken, docID string, req api.SaveRequest) (*api.SaveResponse, error) {
		return &api.SaveResponse{
			NewVersion: req.BaseVersion + 1,
			UpdatedAt:  time.Now().UTC(),
		}, nil
	}
}

func newTestSynchronizer(t *testing.T, transport *httpapi.TransportMock, queueMock *storage.QueueStorageMock, clock Clock, version int64) *Synchronizer {
	t.Helper()
	s := New("doc-1", version, transport, queueMock, testTokens(), clock, testLogger(), Config{})
	t.Cleanup(s.Close)
	return s
}
