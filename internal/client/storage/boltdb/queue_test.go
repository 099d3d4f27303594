package boltdb

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cjliu2003/writersroom-sub009/internal/client/storage"
	"github.com/cjliu2003/writersroom-sub009/internal/models"
)

func createTestStorage(t *testing.T) *Storage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "client_test.db")

	store, err := New(context.Background(), dbPath)
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})

	return store
}

func pendingSave(id, docID string, baseVersion int64) *models.PendingSave {
	return &models.PendingSave{
		ID:          id,
		DocumentID:  docID,
		Content:     "content of " + id,
		BaseVersion: baseVersion,
		EnqueuedAt:  time.Now().UTC().Truncate(time.Second),
	}
}

func TestQueue_EnqueueList_FIFO(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	require.NoError(t, store.Enqueue(ctx, pendingSave("op-1", "doc-a", 5)))
	require.NoError(t, store.Enqueue(ctx, pendingSave("op-2", "doc-a", 5)))
	require.NoError(t, store.Enqueue(ctx, pendingSave("op-3", "doc-b", 9)))
	require.NoError(t, store.Enqueue(ctx, pendingSave("op-4", "doc-a", 5)))

	saves, err := store.List(ctx, "doc-a")
	require.NoError(t, err)
	require.Len(t, saves, 3)
	assert.Equal(t, "op-1", saves[0].ID)
	assert.Equal(t, "op-2", saves[1].ID)
	assert.Equal(t, "op-4", saves[2].ID)

	other, err := store.List(ctx, "doc-b")
	require.NoError(t, err)
	require.Len(t, other, 1)
	assert.Equal(t, "op-3", other[0].ID)
}

func TestQueue_List_Empty(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	saves, err := store.List(ctx, "doc-missing")
	require.NoError(t, err)
	assert.Empty(t, saves)
}

func TestQueue_Update(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	save := pendingSave("op-1", "doc-a", 5)
	require.NoError(t, store.Enqueue(ctx, save))

	save.BaseVersion = 8
	save.RetryCount = 2
	require.NoError(t, store.Update(ctx, save))

	saves, err := store.List(ctx, "doc-a")
	require.NoError(t, err)
	require.Len(t, saves, 1)
	assert.Equal(t, int64(8), saves[0].BaseVersion)
	assert.Equal(t, 2, saves[0].RetryCount)
}

func TestQueue_Update_NotFound(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	err := store.Update(ctx, pendingSave("op-ghost", "doc-a", 1))
	assert.ErrorIs(t, err, storage.ErrPendingSaveNotFound)
}

func TestQueue_Remove(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	require.NoError(t, store.Enqueue(ctx, pendingSave("op-1", "doc-a", 5)))
	require.NoError(t, store.Enqueue(ctx, pendingSave("op-2", "doc-a", 5)))

	require.NoError(t, store.Remove(ctx, "op-1"))

	saves, err := store.List(ctx, "doc-a")
	require.NoError(t, err)
	require.Len(t, saves, 1)
	assert.Equal(t, "op-2", saves[0].ID)

	assert.ErrorIs(t, store.Remove(ctx, "op-1"), storage.ErrPendingSaveNotFound)
}

func TestQueue_RemoveForDocument(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	require.NoError(t, store.Enqueue(ctx, pendingSave("op-1", "doc-a", 5)))
	require.NoError(t, store.Enqueue(ctx, pendingSave("op-2", "doc-b", 3)))
	require.NoError(t, store.Enqueue(ctx, pendingSave("op-3", "doc-a", 5)))

	require.NoError(t, store.RemoveForDocument(ctx, "doc-a"))

	saves, err := store.List(ctx, "doc-a")
	require.NoError(t, err)
	assert.Empty(t, saves)

	other, err := store.List(ctx, "doc-b")
	require.NoError(t, err)
	assert.Len(t, other, 1)
}

func TestQueue_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "reopen_test.db")

	store, err := New(ctx, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Enqueue(ctx, pendingSave("op-1", "doc-a", 5)))
	require.NoError(t, store.Enqueue(ctx, pendingSave("op-2", "doc-a", 5)))
	require.NoError(t, store.Close())

	reopened, err := New(ctx, dbPath)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, reopened.Close())
	}()

	saves, err := reopened.List(ctx, "doc-a")
	require.NoError(t, err)
	require.Len(t, saves, 2)
	assert.Equal(t, "op-1", saves[0].ID)
	assert.Equal(t, "op-2", saves[1].ID)
}
