package models

import "time"

// Document represents a screenplay document as the client tracks it.
// Version is server-authoritative and monotonic; the client never invents
// version numbers, it only adopts what the server reports.
type Document struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Version   int64     `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ConflictInfo describes a lost compare-and-swap race: the server's latest
// copy plus the base version the client submitted.
type ConflictInfo struct {
	LatestVersion   int64     `json:"latest_version"`
	LatestContent   string    `json:"latest_content"`
	LatestUpdatedAt time.Time `json:"latest_updated_at"`
	YourBaseVersion int64     `json:"your_base_version"`
}

// PendingSave is a save attempt that could not reach the server, persisted in
// the durable queue until replay. ID doubles as the op_id idempotency key so
// a replay of an already-applied item is a no-op on the server.
type PendingSave struct {
	ID          string    `json:"id"` // = op_id, UUIDv4
	DocumentID  string    `json:"document_id"`
	Content     string    `json:"content"`
	BaseVersion int64     `json:"base_version"`
	EnqueuedAt  time.Time `json:"enqueued_at"`
	RetryCount  int       `json:"retry_count"`
}
