package storage

import "errors"

// Common client storage errors
var (
	// ErrAuthNotFound indicates that no authentication data exists
	ErrAuthNotFound = errors.New("authentication data not found")

	// ErrPendingSaveNotFound indicates that a queued save was not found
	ErrPendingSaveNotFound = errors.New("pending save not found")

	// ErrDocumentNotFound indicates that a document is not in the local cache
	ErrDocumentNotFound = errors.New("document not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
