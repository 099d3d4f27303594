// Package data is the client's document layer: server operations with a
// write-through local cache, so reads keep working while the connection is
// down and the save engine has a base version after a restart.
package data

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	httpapi "github.com/cjliu2003/writersroom-sub009/internal/client/api"
	"github.com/cjliu2003/writersroom-sub009/internal/client/storage"
	"github.com/cjliu2003/writersroom-sub009/internal/models"
	"github.com/cjliu2003/writersroom-sub009/pkg/api"
)

//go:generate moq -out service_mock.go . Service

// Service provides the client's document operations.
type Service interface {
	// Create makes a new document on the server and caches it locally.
	Create(ctx context.Context, title, content string) (*models.Document, error)

	// Get returns a document, fetching the server's latest copy when
	// reachable and falling back to the local cache on a network error.
	Get(ctx context.Context, docID string) (*models.Document, error)

	// List returns the locally cached documents.
	List(ctx context.Context) ([]*models.Document, error)

	// CacheDocument updates the local copy of a document. The save
	// engine calls this after an accepted save so the cache tracks the
	// server version.
	CacheDocument(ctx context.Context, doc *models.Document) error

	// Forget drops a document from the local cache and discards any
	// queued saves for it.
	Forget(ctx context.Context, docID string) error
}

// serverAPI is the slice of the HTTP client the service needs.
type serverAPI interface {
	CreateDocument(ctx context.Context, accessToken string, req api.CreateDocumentRequest) (*api.Document, error)
	GetDocument(ctx context.Context, accessToken, docID string) (*api.Document, error)
}

// TokenSource supplies the bearer credential for server calls.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

type service struct {
	api    serverAPI
	tokens TokenSource
	cache  storage.DocumentStorage
	queue  storage.QueueStorage
	logger *slog.Logger
}

var _ Service = (*service)(nil)

// NewService creates the document service. The *api.Client type satisfies
// the server API parameter.
func NewService(api serverAPI, tokens TokenSource, cache storage.DocumentStorage, queue storage.QueueStorage, logger *slog.Logger) Service {
	return &service{
		api:    api,
		tokens: tokens,
		cache:  cache,
		queue:  queue,
		logger: logger,
	}
}

func (s *service) Create(ctx context.Context, title, content string) (*models.Document, error) {
	token, err := s.tokens.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	created, err := s.api.CreateDocument(ctx, token, api.CreateDocumentRequest{
		Title:   title,
		Content: content,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	doc := fromAPIDocument(created)
	if err := s.cache.SaveDocument(ctx, doc); err != nil {
		s.logger.Warn("failed to cache created document", "doc_id", doc.ID, "error", err)
	}

	s.logger.Info("document created", "doc_id", doc.ID, "title", doc.Title)
	return doc, nil
}

func (s *service) Get(ctx context.Context, docID string) (*models.Document, error) {
	token, err := s.tokens.AccessToken(ctx)
	if err != nil {
		// A token refresh that died on the wire still leaves the cache
		if errors.Is(err, httpapi.ErrNetwork) {
			return s.cachedFallback(ctx, docID, err)
		}
		return nil, err
	}

	fetched, err := s.api.GetDocument(ctx, token, docID)
	if err == nil {
		doc := fromAPIDocument(fetched)
		if cacheErr := s.cache.SaveDocument(ctx, doc); cacheErr != nil {
			s.logger.Warn("failed to cache document", "doc_id", docID, "error", cacheErr)
		}
		return doc, nil
	}

	if !errors.Is(err, httpapi.ErrNetwork) {
		return nil, err
	}

	return s.cachedFallback(ctx, docID, err)
}

// cachedFallback serves the last cached copy when the server is unreachable.
func (s *service) cachedFallback(ctx context.Context, docID string, cause error) (*models.Document, error) {
	cached, err := s.cache.GetDocument(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("server unreachable and no cached copy: %w", cause)
	}

	s.logger.Info("server unreachable, serving cached copy",
		"doc_id", docID, "version", cached.Version)
	return cached, nil
}

func (s *service) List(ctx context.Context) ([]*models.Document, error) {
	return s.cache.ListDocuments(ctx)
}

func (s *service) CacheDocument(ctx context.Context, doc *models.Document) error {
	return s.cache.SaveDocument(ctx, doc)
}

func (s *service) Forget(ctx context.Context, docID string) error {
	if err := s.queue.RemoveForDocument(ctx, docID); err != nil {
		return fmt.Errorf("failed to drop queued saves: %w", err)
	}
	return s.cache.DeleteDocument(ctx, docID)
}

func fromAPIDocument(doc *api.Document) *models.Document {
	return &models.Document{
		ID:        doc.ID,
		Title:     doc.Title,
		Content:   doc.Content,
		Version:   doc.Version,
		UpdatedAt: doc.UpdatedAt,
	}
}
