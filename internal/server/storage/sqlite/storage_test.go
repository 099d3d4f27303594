package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/cjliu2003/writersroom-sub009/internal/models"
)

func createTestStorage(t *testing.T) *Storage {
	t.Helper()

	s, err := New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	return s
}

func createTestUser(t *testing.T, s *Storage, username string) *models.User {
	t.Helper()

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, s.CreateUser(context.Background(), user))
	return user
}

func createTestDocument(t *testing.T, s *Storage, ownerID, title string) *models.Document {
	t.Helper()

	doc := &models.Document{
		ID:        uuid.New().String(),
		Title:     title,
		Content:   "FADE IN:",
		Version:   1,
		UpdatedAt: time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, s.CreateDocument(context.Background(), doc, ownerID))
	return doc
}

func TestNew_RunsMigrations(t *testing.T) {
	s := createTestStorage(t)

	// All four tables exist after migration
	for _, table := range []string{"users", "refresh_tokens", "documents", "applied_ops"} {
		var name string
		err := s.DB().QueryRow(
			`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table,
		).Scan(&name)
		require.NoError(t, err, "missing table %s", table)
	}
}
