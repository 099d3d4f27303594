package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cjliu2003/writersroom-sub009/internal/server/storage"
)

func TestCreateAndGetDocument(t *testing.T) {
	s := createTestStorage(t)
	user := createTestUser(t, s, "alice")
	doc := createTestDocument(t, s, user.ID, "Pilot")

	got, err := s.GetDocument(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pilot", got.Title)
	assert.Equal(t, "FADE IN:", got.Content)
	assert.Equal(t, int64(1), got.Version)
}

func TestGetDocument_NotFound(t *testing.T) {
	s := createTestStorage(t)

	_, err := s.GetDocument(context.Background(), "missing")
	require.ErrorIs(t, err, storage.ErrDocumentNotFound)
}

func TestApplySave_IncrementsVersion(t *testing.T) {
	s := createTestStorage(t)
	user := createTestUser(t, s, "alice")
	doc := createTestDocument(t, s, user.ID, "Pilot")
	now := time.Now().UTC().Truncate(time.Second)

	res, err := s.ApplySave(context.Background(), doc.ID, "op-1", "INT. OFFICE - DAY", 1, now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.NewVersion)
	assert.False(t, res.Replayed)

	got, err := s.GetDocument(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "INT. OFFICE - DAY", got.Content)
	assert.Equal(t, int64(2), got.Version)
}

func TestApplySave_VersionMismatch(t *testing.T) {
	s := createTestStorage(t)
	user := createTestUser(t, s, "alice")
	doc := createTestDocument(t, s, user.ID, "Pilot")
	now := time.Now().UTC()

	_, err := s.ApplySave(context.Background(), doc.ID, "op-1", "one", 1, now)
	require.NoError(t, err)

	// Second save from a stale base loses the compare-and-swap
	_, err = s.ApplySave(context.Background(), doc.ID, "op-2", "two", 1, now)
	require.ErrorIs(t, err, storage.ErrVersionMismatch)

	got, err := s.GetDocument(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "one", got.Content, "losing save must not touch the document")
}

func TestApplySave_ReplaySameOpID(t *testing.T) {
	s := createTestStorage(t)
	user := createTestUser(t, s, "alice")
	doc := createTestDocument(t, s, user.ID, "Pilot")
	now := time.Now().UTC().Truncate(time.Second)

	first, err := s.ApplySave(context.Background(), doc.ID, "op-1", "one", 1, now)
	require.NoError(t, err)

	// Duplicate delivery: same op_id, stale base version. Must return the
	// recorded outcome, not a conflict, and must not write again.
	replay, err := s.ApplySave(context.Background(), doc.ID, "op-1", "one", 1, now.Add(time.Minute))
	require.NoError(t, err)
	assert.True(t, replay.Replayed)
	assert.Equal(t, first.NewVersion, replay.NewVersion)

	got, err := s.GetDocument(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Version)
}

func TestApplySave_DocumentNotFound(t *testing.T) {
	s := createTestStorage(t)

	_, err := s.ApplySave(context.Background(), "missing", "op-1", "x", 1, time.Now().UTC())
	require.ErrorIs(t, err, storage.ErrDocumentNotFound)
}

func TestApplySave_SequentialSaves(t *testing.T) {
	s := createTestStorage(t)
	user := createTestUser(t, s, "alice")
	doc := createTestDocument(t, s, user.ID, "Pilot")
	now := time.Now().UTC()

	for i := int64(1); i <= 5; i++ {
		res, err := s.ApplySave(context.Background(), doc.ID, "op-"+string(rune('a'+i)), "rev", i, now)
		require.NoError(t, err)
		assert.Equal(t, i+1, res.NewVersion)
	}
}
