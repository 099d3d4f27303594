package storage

import (
	"context"
	"time"

	"github.com/cjliu2003/writersroom-sub009/internal/models"
)

// SaveResult is the outcome of an applied (or replayed) save.
type SaveResult struct {
	NewVersion int64
	UpdatedAt  time.Time
	// Replayed is true when the op_id had already been applied and the
	// recorded outcome was returned instead of writing again.
	Replayed bool
}

// DocumentStorage defines interface for document persistence with
// compare-and-swap versioning and op_id idempotency.
type DocumentStorage interface {
	// CreateDocument stores a new document at version 1
	CreateDocument(ctx context.Context, doc *models.Document, ownerID string) error

	// GetDocument retrieves a document by ID
	// Returns ErrDocumentNotFound if document doesn't exist
	GetDocument(ctx context.Context, docID string) (*models.Document, error)

	// ApplySave applies one versioned save atomically:
	//   - if opID was applied before, the recorded outcome is returned
	//     with Replayed=true and nothing is written
	//   - if baseVersion doesn't match the stored version,
	//     ErrVersionMismatch is returned
	//   - otherwise content replaces the stored content, the version
	//     increments by one and the op is recorded under opID
	// Returns ErrDocumentNotFound if document doesn't exist.
	ApplySave(ctx context.Context, docID, opID, content string, baseVersion int64, now time.Time) (*SaveResult, error)
}
