package boltdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cjliu2003/writersroom-sub009/internal/client/storage"
	"github.com/cjliu2003/writersroom-sub009/internal/models"
)

func testDocument(id string, version int64) *models.Document {
	return &models.Document{
		ID:        id,
		Title:     "Pilot",
		Content:   "FADE IN:",
		Version:   version,
		UpdatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func TestStorage_SaveGetDocument(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	_, err := store.GetDocument(ctx, "doc-1")
	assert.ErrorIs(t, err, storage.ErrDocumentNotFound)

	doc := testDocument("doc-1", 3)
	require.NoError(t, store.SaveDocument(ctx, doc))

	got, err := store.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, doc, got)

	// Saving again replaces the cached copy
	doc.Content = "FADE IN:\n\nINT. OFFICE - DAY"
	doc.Version = 4
	require.NoError(t, store.SaveDocument(ctx, doc))

	got, err = store.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, int64(4), got.Version)
	assert.Equal(t, doc.Content, got.Content)
}

func TestStorage_ListDocuments(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	docs, err := store.ListDocuments(ctx)
	require.NoError(t, err)
	assert.Empty(t, docs)

	require.NoError(t, store.SaveDocument(ctx, testDocument("doc-b", 1)))
	require.NoError(t, store.SaveDocument(ctx, testDocument("doc-a", 2)))

	docs, err = store.ListDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	// Bolt iterates keys in byte order
	assert.Equal(t, "doc-a", docs[0].ID)
	assert.Equal(t, "doc-b", docs[1].ID)
}

func TestStorage_DeleteDocument(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	require.NoError(t, store.SaveDocument(ctx, testDocument("doc-1", 1)))
	require.NoError(t, store.DeleteDocument(ctx, "doc-1"))

	_, err := store.GetDocument(ctx, "doc-1")
	assert.ErrorIs(t, err, storage.ErrDocumentNotFound)

	// Deleting a missing document is a no-op
	assert.NoError(t, store.DeleteDocument(ctx, "doc-1"))
}
