package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cjliu2003/writersroom-sub009/internal/models"
	"github.com/cjliu2003/writersroom-sub009/pkg/api"
)

func newDocumentHandler(t *testing.T) *DocumentHandler {
	t.Helper()
	s := newTestStorage(t)
	// The authed requests below carry "user-1" the way AuthMiddleware
	// would; the documents table's owner foreign key needs the row.
	require.NoError(t, s.CreateUser(context.Background(), &models.User{
		ID:           "user-1",
		Username:     "alice",
		PasswordHash: "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}))
	return NewDocumentHandler(testLogger(), s)
}

func createTestDoc(t *testing.T, h *DocumentHandler) api.Document {
	t.Helper()
	rec := httptest.NewRecorder()
	h.Create(rec, authedRequest(t, http.MethodPost, "/api/v1/documents",
		api.CreateDocumentRequest{Title: "Draft One", Content: "FADE IN:"}, "user-1", "alice"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeJSON[api.Document](t, rec)
}

func saveRequest(t *testing.T, docID string, req api.SaveRequest) *http.Request {
	t.Helper()
	r := authedRequest(t, http.MethodPut, "/api/v1/documents/"+docID, req, "user-1", "alice")
	r.SetPathValue("id", docID)
	return r
}

func TestCreateDocument(t *testing.T) {
	h := newDocumentHandler(t)

	doc := createTestDoc(t, h)
	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, "Draft One", doc.Title)
	assert.Equal(t, "FADE IN:", doc.Content)
	assert.Equal(t, int64(1), doc.Version)
}

func TestCreateDocument_BlankTitle(t *testing.T) {
	h := newDocumentHandler(t)

	rec := httptest.NewRecorder()
	h.Create(rec, authedRequest(t, http.MethodPost, "/api/v1/documents",
		api.CreateDocumentRequest{Title: "   "}, "user-1", "alice"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetDocument(t *testing.T) {
	h := newDocumentHandler(t)
	created := createTestDoc(t, h)

	req := authedRequest(t, http.MethodGet, "/api/v1/documents/"+created.ID, nil, "user-1", "alice")
	req.SetPathValue("id", created.ID)
	rec := httptest.NewRecorder()
	h.Get(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created, decodeJSON[api.Document](t, rec))
}

func TestGetDocument_NotFound(t *testing.T) {
	h := newDocumentHandler(t)

	req := authedRequest(t, http.MethodGet, "/api/v1/documents/nope", nil, "user-1", "alice")
	req.SetPathValue("id", "nope")
	rec := httptest.NewRecorder()
	h.Get(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSave_IncrementsVersion(t *testing.T) {
	h := newDocumentHandler(t)
	doc := createTestDoc(t, h)

	rec := httptest.NewRecorder()
	h.Save(rec, saveRequest(t, doc.ID, api.SaveRequest{
		Content:         "FADE IN:\n\nINT. OFFICE - DAY",
		BaseVersion:     1,
		OpID:            uuid.New().String(),
		UpdatedAtClient: time.Now().UTC(),
	}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decodeJSON[api.SaveResponse](t, rec)
	assert.Equal(t, int64(2), resp.NewVersion)
	assert.False(t, resp.Conflict)
}

func TestSave_Conflict(t *testing.T) {
	h := newDocumentHandler(t)
	doc := createTestDoc(t, h)

	// Advance the document past version 1
	rec := httptest.NewRecorder()
	h.Save(rec, saveRequest(t, doc.ID, api.SaveRequest{
		Content: "v2 content", BaseVersion: 1, OpID: uuid.New().String(),
	}))
	require.Equal(t, http.StatusOK, rec.Code)

	// A second writer still holding base 1 loses the swap
	rec = httptest.NewRecorder()
	h.Save(rec, saveRequest(t, doc.ID, api.SaveRequest{
		Content: "stale content", BaseVersion: 1, OpID: uuid.New().String(),
	}))
	require.Equal(t, http.StatusConflict, rec.Code)
	conflict := decodeJSON[api.ConflictResponse](t, rec)
	assert.True(t, conflict.Conflict)
	assert.Equal(t, int64(1), conflict.YourBaseVersion)
	assert.Equal(t, int64(2), conflict.Latest.Version)
	assert.Equal(t, "v2 content", conflict.Latest.Content)
}

func TestSave_ReplaySameOpID(t *testing.T) {
	h := newDocumentHandler(t)
	doc := createTestDoc(t, h)
	opID := uuid.New().String()

	rec := httptest.NewRecorder()
	h.Save(rec, saveRequest(t, doc.ID, api.SaveRequest{
		Content: "saved once", BaseVersion: 1, OpID: opID,
	}))
	require.Equal(t, http.StatusOK, rec.Code)
	first := decodeJSON[api.SaveResponse](t, rec)

	// Duplicate delivery of the same op answers the recorded outcome,
	// even though the base version is now stale.
	rec = httptest.NewRecorder()
	h.Save(rec, saveRequest(t, doc.ID, api.SaveRequest{
		Content: "saved once", BaseVersion: 1, OpID: opID,
	}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, first.NewVersion, decodeJSON[api.SaveResponse](t, rec).NewVersion)
}

func TestSave_IdempotencyKeyHeaderWins(t *testing.T) {
	h := newDocumentHandler(t)
	doc := createTestDoc(t, h)
	opID := uuid.New().String()

	req := saveRequest(t, doc.ID, api.SaveRequest{
		Content: "header op", BaseVersion: 1, OpID: "body-op-ignored",
	})
	req.Header.Set("Idempotency-Key", opID)
	rec := httptest.NewRecorder()
	h.Save(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// Replaying the header key hits the recorded outcome
	req = saveRequest(t, doc.ID, api.SaveRequest{
		Content: "header op", BaseVersion: 1, OpID: "another-body-op",
	})
	req.Header.Set("Idempotency-Key", opID)
	rec = httptest.NewRecorder()
	h.Save(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(2), decodeJSON[api.SaveResponse](t, rec).NewVersion)
}

func TestSave_Validation(t *testing.T) {
	h := newDocumentHandler(t)
	doc := createTestDoc(t, h)

	tests := []struct {
		name string
		req  api.SaveRequest
	}{
		{"missing op_id", api.SaveRequest{Content: "x", BaseVersion: 1}},
		{"zero base_version", api.SaveRequest{Content: "x", OpID: uuid.New().String()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Save(rec, saveRequest(t, doc.ID, tt.req))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestSave_DocumentNotFound(t *testing.T) {
	h := newDocumentHandler(t)

	rec := httptest.NewRecorder()
	h.Save(rec, saveRequest(t, "nope", api.SaveRequest{
		Content: "x", BaseVersion: 1, OpID: uuid.New().String(),
	}))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
