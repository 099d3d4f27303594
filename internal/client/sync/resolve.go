package sync

import (
	"errors"

	"github.com/cjliu2003/writersroom-sub009/internal/models"
)

// ErrNoConflict is returned by the resolution methods outside the conflict
// state.
var ErrNoConflict = errors.New("no conflict to resolve")

// ResolveAcceptServer resolves a surfaced conflict by adopting the server's
// version and content, discarding the local pending edit.
func (s *Synchronizer) ResolveAcceptServer() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != models.SaveStateConflict || s.conflict == nil {
		return ErrNoConflict
	}

	info := s.conflict
	if info.LatestVersion > s.version {
		s.version = info.LatestVersion
	}
	s.draft = info.LatestContent
	s.lastSaved = info.LatestContent
	s.lastSavedAt = info.LatestUpdatedAt
	s.conflict = nil
	s.opID = ""
	s.attempt = 0
	s.fastForwarded = false
	s.state = models.SaveStateIdle
	s.logger.Info("conflict resolved: accepted server version", "version", s.version)
	s.notifyLocked()
	return nil
}

// ResolveForceLocal resolves a surfaced conflict by adopting the server's
// version number but not its content, then re-saving the local draft against
// it. Last-writer-wins on content, version-safe on the protocol.
func (s *Synchronizer) ResolveForceLocal() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != models.SaveStateConflict || s.conflict == nil {
		return ErrNoConflict
	}

	base := s.conflict.LatestVersion
	s.conflict = nil
	if s.processingQueue {
		// A replay is running for this document; the forced save waits
		// its turn and goes out as a fresh cycle once the drain settles.
		if base > s.version {
			s.version = base
		}
		s.opID = ""
		s.attempt = 0
		s.fastForwarded = false
		s.state = models.SaveStatePending
		s.logger.Info("conflict resolved: forcing local version after replay", "base_version", base)
		s.notifyLocked()
		return nil
	}
	opID := s.opID
	s.logger.Info("conflict resolved: forcing local version", "base_version", base)
	s.beginAttemptLocked(s.draft, base, opID)
	return nil
}

// ResolveCancel acknowledges the conflict without resolving it. The document
// stays in the conflict state and no further automatic action is taken.
func (s *Synchronizer) ResolveCancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != models.SaveStateConflict {
		return ErrNoConflict
	}
	s.logger.Info("conflict resolution cancelled")
	return nil
}
