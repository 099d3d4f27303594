package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/cjliu2003/writersroom-sub009/internal/models"
	"github.com/cjliu2003/writersroom-sub009/internal/server/storage"
	"github.com/cjliu2003/writersroom-sub009/internal/validation"
	"github.com/cjliu2003/writersroom-sub009/pkg/api"
)

// DocumentHandler handles document reads and versioned saves. A save is a
// compare-and-swap on the document version; a lost swap answers 409 with the
// server's latest copy, and a replayed op_id answers 200 with the recorded
// outcome.
type DocumentHandler struct {
	logger  *slog.Logger
	storage storage.DocumentStorage
}

// NewDocumentHandler creates the document handler.
func NewDocumentHandler(logger *slog.Logger, storage storage.DocumentStorage) *DocumentHandler {
	return &DocumentHandler{
		logger:  logger,
		storage: storage,
	}
}

// Create handles POST /api/v1/documents
func (h *DocumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.CreateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validation.ValidateTitle(req.Title); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	doc := &models.Document{
		ID:        uuid.New().String(),
		Title:     req.Title,
		Content:   req.Content,
		Version:   1,
		UpdatedAt: time.Now().UTC(),
	}

	if err := h.storage.CreateDocument(ctx, doc, userID); err != nil {
		h.logger.ErrorContext(ctx, "failed to create document", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "document created",
		slog.String("doc_id", doc.ID),
		slog.String("owner_id", userID))

	sendJSON(h.logger, w, toAPIDocument(doc), http.StatusCreated)
}

// Get handles GET /api/v1/documents/{id}
func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	docID := r.PathValue("id")
	if docID == "" {
		sendError(h.logger, w, "document id is required", http.StatusBadRequest)
		return
	}

	doc, err := h.storage.GetDocument(ctx, docID)
	if err != nil {
		if errors.Is(err, storage.ErrDocumentNotFound) {
			sendError(h.logger, w, "document not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get document", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, toAPIDocument(doc), http.StatusOK)
}

// Save handles PUT /api/v1/documents/{id}
func (h *DocumentHandler) Save(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	docID := r.PathValue("id")
	if docID == "" {
		sendError(h.logger, w, "document id is required", http.StatusBadRequest)
		return
	}

	var req api.SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	// The idempotency key travels in the header and in the body; the
	// header wins when both are set.
	opID := r.Header.Get("Idempotency-Key")
	if opID == "" {
		opID = req.OpID
	}
	if opID == "" {
		sendError(h.logger, w, "op_id is required", http.StatusBadRequest)
		return
	}
	if req.BaseVersion < 1 {
		sendError(h.logger, w, "base_version must be at least 1", http.StatusBadRequest)
		return
	}

	result, err := h.storage.ApplySave(ctx, docID, opID, req.Content, req.BaseVersion, time.Now().UTC())
	switch {
	case err == nil:
		if result.Replayed {
			h.logger.InfoContext(ctx, "duplicate save replayed",
				slog.String("doc_id", docID),
				slog.String("op_id", opID),
				slog.Int64("version", result.NewVersion))
		} else {
			h.logger.InfoContext(ctx, "document saved",
				slog.String("doc_id", docID),
				slog.String("op_id", opID),
				slog.Int64("version", result.NewVersion))
		}
		sendJSON(h.logger, w, api.SaveResponse{
			NewVersion: result.NewVersion,
			UpdatedAt:  result.UpdatedAt,
		}, http.StatusOK)

	case errors.Is(err, storage.ErrVersionMismatch):
		h.sendConflict(ctx, w, docID, req.BaseVersion)

	case errors.Is(err, storage.ErrDocumentNotFound):
		sendError(h.logger, w, "document not found", http.StatusNotFound)

	default:
		h.logger.ErrorContext(ctx, "failed to apply save", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
	}
}

// sendConflict answers a lost compare-and-swap with the latest copy so the
// client can fast-forward or surface a three-way resolution.
func (h *DocumentHandler) sendConflict(ctx context.Context, w http.ResponseWriter, docID string, baseVersion int64) {
	latest, err := h.storage.GetDocument(ctx, docID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load latest for conflict body", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.WarnContext(ctx, "save conflict",
		slog.String("doc_id", docID),
		slog.Int64("base_version", baseVersion),
		slog.Int64("latest_version", latest.Version))

	sendJSON(h.logger, w, api.ConflictResponse{
		Latest: api.LatestDocument{
			Version:   latest.Version,
			Content:   latest.Content,
			UpdatedAt: latest.UpdatedAt,
		},
		YourBaseVersion: baseVersion,
		Conflict:        true,
	}, http.StatusConflict)
}

func toAPIDocument(doc *models.Document) api.Document {
	return api.Document{
		ID:        doc.ID,
		Title:     doc.Title,
		Content:   doc.Content,
		Version:   doc.Version,
		UpdatedAt: doc.UpdatedAt,
	}
}
