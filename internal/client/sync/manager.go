package sync

import (
	"context"
	"log/slog"
	gosync "sync"

	httpapi "github.com/cjliu2003/writersroom-sub009/internal/client/api"
	"github.com/cjliu2003/writersroom-sub009/internal/client/storage"
)

// Manager holds one Synchronizer per open document, keyed by document id,
// and fans connectivity edges out to all of them. Opening a document that is
// already open resets its Synchronizer to the freshly reported version.
type Manager struct {
	transport httpapi.Transport
	queue     storage.QueueStorage
	tokens    TokenSource
	clock     Clock
	logger    *slog.Logger
	cfg       Config

	mu     gosync.Mutex
	docs   map[string]*Synchronizer
	online bool
}

// NewManager creates an empty Synchronizer arena. The Manager starts online.
func NewManager(transport httpapi.Transport, queue storage.QueueStorage, tokens TokenSource, clock Clock, logger *slog.Logger, cfg Config) *Manager {
	return &Manager{
		transport: transport,
		queue:     queue,
		tokens:    tokens,
		clock:     clock,
		logger:    logger,
		cfg:       cfg,
		docs:      make(map[string]*Synchronizer),
		online:    true,
	}
}

// Open returns the Synchronizer for a document, creating it seeded with the
// server-reported version, or resetting the existing one when the document
// is reopened. While online, opening also kicks off a queue drain so saves
// parked by a previous session get replayed.
func (m *Manager) Open(ctx context.Context, docID string, version int64) *Synchronizer {
	m.mu.Lock()
	s, ok := m.docs[docID]
	if ok {
		s.Reset(docID, version)
	} else {
		s = New(docID, version, m.transport, m.queue, m.tokens, m.clock, m.logger, m.cfg)
		m.docs[docID] = s
	}
	s.SetOnline(m.online)
	online := m.online
	m.mu.Unlock()

	if online {
		go func() {
			if err := s.DrainQueue(ctx); err != nil {
				m.logger.Warn("queue drain on open failed", "doc_id", docID, "error", err)
			}
		}()
	}
	return s
}

// Get returns the Synchronizer for an already-open document.
func (m *Manager) Get(docID string) (*Synchronizer, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.docs[docID]
	return s, ok
}

// SetOnline applies an edge-triggered connectivity change to every open
// document. Coming back online replays each document's offline queue.
func (m *Manager) SetOnline(ctx context.Context, online bool) {
	m.mu.Lock()
	wasOnline := m.online
	m.online = online
	docs := make([]*Synchronizer, 0, len(m.docs))
	for _, s := range m.docs {
		docs = append(docs, s)
	}
	m.mu.Unlock()

	for _, s := range docs {
		s.SetOnline(online)
	}

	if online && !wasOnline {
		m.logger.Info("back online, replaying offline queues", "documents", len(docs))
		for _, s := range docs {
			go func(s *Synchronizer) {
				if err := s.DrainQueue(ctx); err != nil {
					m.logger.Warn("queue drain on reconnect failed", "error", err)
				}
			}(s)
		}
	}
}

// CloseAll shuts down every open Synchronizer.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.docs {
		s.Close()
		delete(m.docs, id)
	}
}
