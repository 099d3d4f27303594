package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cjliu2003/writersroom-sub009/internal/models"
	"github.com/cjliu2003/writersroom-sub009/internal/server/storage"
)

// CreateDocument stores a new document at version 1
func (s *Storage) CreateDocument(ctx context.Context, doc *models.Document, ownerID string) error {
	query := `
		INSERT INTO documents (id, owner_id, title, content, version, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		doc.ID,
		ownerID,
		doc.Title,
		doc.Content,
		doc.Version,
		doc.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}

	return nil
}

// GetDocument retrieves a document by ID
func (s *Storage) GetDocument(ctx context.Context, docID string) (*models.Document, error) {
	query := `
		SELECT id, title, content, version, updated_at
		FROM documents
		WHERE id = ?
	`

	doc := &models.Document{}

	err := s.db.QueryRowContext(ctx, query, docID).Scan(
		&doc.ID,
		&doc.Title,
		&doc.Content,
		&doc.Version,
		&doc.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	return doc, nil
}

// ApplySave runs the idempotency check, the compare-and-swap and the op
// record in one transaction, so a concurrent save can never interleave
// between the version check and the write.
func (s *Storage) ApplySave(ctx context.Context, docID, opID, content string, baseVersion int64, now time.Time) (*storage.SaveResult, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	// Replay check first: a duplicate delivery of an applied op must
	// succeed without touching the document.
	var recorded storage.SaveResult
	err = tx.QueryRowContext(ctx,
		`SELECT new_version, updated_at FROM applied_ops WHERE op_id = ?`, opID,
	).Scan(&recorded.NewVersion, &recorded.UpdatedAt)
	switch {
	case err == nil:
		recorded.Replayed = true
		if err := tx.Commit(); err != nil {
			return nil, fmt.Errorf("failed to commit transaction: %w", err)
		}
		return &recorded, nil
	case !errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("failed to check applied op: %w", err)
	}

	var currentVersion int64
	err = tx.QueryRowContext(ctx,
		`SELECT version FROM documents WHERE id = ?`, docID,
	).Scan(&currentVersion)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to get document version: %w", err)
	}

	if currentVersion != baseVersion {
		return nil, storage.ErrVersionMismatch
	}

	newVersion := currentVersion + 1

	if _, err := tx.ExecContext(ctx,
		`UPDATE documents SET content = ?, version = ?, updated_at = ? WHERE id = ?`,
		content, newVersion, now, docID,
	); err != nil {
		return nil, fmt.Errorf("failed to update document: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO applied_ops (op_id, document_id, new_version, updated_at) VALUES (?, ?, ?, ?)`,
		opID, docID, newVersion, now,
	); err != nil {
		return nil, fmt.Errorf("failed to record applied op: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &storage.SaveResult{NewVersion: newVersion, UpdatedAt: now}, nil
}
