package models

import "time"

// SaveState is the named state of a document's save lifecycle.
type SaveState string

const (
	SaveStateIdle        SaveState = "idle"
	SaveStatePending     SaveState = "pending"
	SaveStateSaving      SaveState = "saving"
	SaveStateSaved       SaveState = "saved"
	SaveStateOffline     SaveState = "offline"
	SaveStateConflict    SaveState = "conflict"
	SaveStateError       SaveState = "error"
	SaveStateRateLimited SaveState = "rate_limited"
)

// SyncState is a point-in-time snapshot of a document's synchronization
// status, safe to hand to the UI. Conflict is non-nil only in the conflict
// state; RetryAfter is meaningful only in the rate_limited state.
type SyncState struct {
	DocumentID        string        `json:"document_id"`
	SaveState         SaveState     `json:"save_state"`
	CurrentVersion    int64         `json:"current_version"`
	LastSavedAt       time.Time     `json:"last_saved_at"`
	Conflict          *ConflictInfo `json:"conflict,omitempty"`
	Error             string        `json:"error,omitempty"`
	RetryAfter        time.Duration `json:"retry_after,omitempty"`
	IsProcessingQueue bool          `json:"is_processing_queue"`
}
