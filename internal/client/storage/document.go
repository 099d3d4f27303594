package storage

import (
	"context"

	"github.com/cjliu2003/writersroom-sub009/internal/models"
)

// DocumentStorage is the local document cache. It holds the last copy of
// each document the client has seen so reads keep working offline and the
// save engine has a base version to build on after a restart.
type DocumentStorage interface {
	// SaveDocument stores or replaces the cached copy of a document.
	SaveDocument(ctx context.Context, doc *models.Document) error

	// GetDocument returns the cached copy of a document.
	// Returns ErrDocumentNotFound if the document was never cached.
	GetDocument(ctx context.Context, id string) (*models.Document, error)

	// ListDocuments returns every cached document, ordered by ID.
	ListDocuments(ctx context.Context) ([]*models.Document, error)

	// DeleteDocument removes a document from the cache.
	DeleteDocument(ctx context.Context, id string) error
}
