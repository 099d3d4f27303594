package storage

import (
	"context"

	"github.com/cjliu2003/writersroom-sub009/internal/models"
)

//go:generate moq -out queue_mock.go . QueueStorage

// QueueStorage is the durable offline queue: save attempts that could not
// reach the server, persisted across process restarts and replayed in FIFO
// enqueue order on reconnect.
type QueueStorage interface {
	// Enqueue appends a pending save to the tail of the queue.
	Enqueue(ctx context.Context, save *models.PendingSave) error

	// List returns pending saves for one document in FIFO enqueue order.
	List(ctx context.Context, documentID string) ([]*models.PendingSave, error)

	// Update rewrites a queued save in place (base version rewrites,
	// retry count bumps). Returns ErrPendingSaveNotFound if the item is
	// no longer queued.
	Update(ctx context.Context, save *models.PendingSave) error

	// Remove deletes one queued save by its ID (= op_id).
	Remove(ctx context.Context, id string) error

	// RemoveForDocument deletes every queued save for one document.
	// A successful live save supersedes stale queued copies.
	RemoveForDocument(ctx context.Context, documentID string) error
}
