package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/cjliu2003/writersroom-sub009/internal/client/storage"
	"github.com/cjliu2003/writersroom-sub009/internal/models"
)

// SaveDocument stores or replaces the cached copy of a document
func (s *Storage) SaveDocument(ctx context.Context, doc *models.Document) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketDocuments)
		if bucket == nil {
			return fmt.Errorf("documents bucket not found")
		}

		data, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to marshal document: %w", err)
		}

		if err := bucket.Put([]byte(doc.ID), data); err != nil {
			return fmt.Errorf("failed to save document: %w", err)
		}

		return nil
	})
}

// GetDocument returns the cached copy of a document
// Returns ErrDocumentNotFound if the document was never cached
func (s *Storage) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var doc *models.Document

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketDocuments)
		if bucket == nil {
			return fmt.Errorf("documents bucket not found")
		}

		data := bucket.Get([]byte(id))
		if data == nil {
			return storage.ErrDocumentNotFound
		}

		doc = &models.Document{}
		if err := json.Unmarshal(data, doc); err != nil {
			return fmt.Errorf("failed to unmarshal document: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// ListDocuments returns every cached document, ordered by ID
func (s *Storage) ListDocuments(ctx context.Context) ([]*models.Document, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var docs []*models.Document

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketDocuments)
		if bucket == nil {
			return fmt.Errorf("documents bucket not found")
		}

		return bucket.ForEach(func(k, v []byte) error {
			doc := &models.Document{}
			if err := json.Unmarshal(v, doc); err != nil {
				return fmt.Errorf("failed to unmarshal document %s: %w", k, err)
			}
			docs = append(docs, doc)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return docs, nil
}

// DeleteDocument removes a document from the cache
func (s *Storage) DeleteDocument(ctx context.Context, id string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketDocuments)
		if bucket == nil {
			return fmt.Errorf("documents bucket not found")
		}

		return bucket.Delete([]byte(id))
	})
}
