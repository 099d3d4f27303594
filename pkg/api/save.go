package api

import "time"

// SaveRequest is the body of a versioned document update.
// BaseVersion implements compare-and-swap: the server applies the write only
// if BaseVersion matches its authoritative version. OpID is a client-generated
// UUIDv4 idempotency key; it stays stable across retries of the same logical
// attempt so the server can treat duplicate delivery as a no-op success.
type SaveRequest struct {
	Content         string    `json:"content"`
	BaseVersion     int64     `json:"base_version"`
	OpID            string    `json:"op_id"`
	UpdatedAtClient time.Time `json:"updated_at_client"`
}

// SaveResponse is the server's answer to an accepted save.
type SaveResponse struct {
	NewVersion int64     `json:"new_version"`
	UpdatedAt  time.Time `json:"updated_at"`
	Conflict   bool      `json:"conflict"`
}

// LatestDocument describes the server's current copy of a document,
// returned inside a conflict response.
type LatestDocument struct {
	Version   int64     `json:"version"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ConflictResponse is the 409 body for a save whose base_version lost the
// compare-and-swap race.
type ConflictResponse struct {
	Latest          LatestDocument `json:"latest"`
	YourBaseVersion int64          `json:"your_base_version"`
	Conflict        bool           `json:"conflict"`
}

// Document is the full document representation returned by GET.
type Document struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Version   int64     `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateDocumentRequest creates a new document owned by the caller.
type CreateDocumentRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
