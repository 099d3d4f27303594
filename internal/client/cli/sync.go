package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/cjliu2003/writersroom-sub009/internal/client/sync"
	"github.com/cjliu2003/writersroom-sub009/internal/models"
)

// runSync replays queued offline saves, for one document or for every
// document with queued items.
func (c *Cli) runSync(ctx context.Context, args []string) error {
	var docIDs []string
	if len(args) > 0 {
		docIDs = []string{args[0]}
	} else {
		docs, err := c.docs.List(ctx)
		if err != nil {
			return err
		}
		for _, doc := range docs {
			docIDs = append(docIDs, doc.ID)
		}
	}

	replayedAny := false
	for _, docID := range docIDs {
		items, err := c.queue.List(ctx, docID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			continue
		}
		replayedAny = true

		c.io.Printf("Replaying %d queued save(s) for %s...\n", len(items), docID)
		if err := c.drainDocument(ctx, docID); err != nil {
			return err
		}

		remaining, err := c.queue.List(ctx, docID)
		if err != nil {
			return err
		}
		if len(remaining) > 0 {
			c.io.Printf("⚠ %d save(s) still queued for %s.\n", len(remaining), docID)
		} else {
			c.io.Printf("✓ Queue drained for %s.\n", docID)
		}
	}

	if !replayedAny {
		c.io.Println("✓ Nothing queued; all saves are on the server.")
	}

	return nil
}

// drainDocument opens the document's synchronizer and waits for its queue
// replay to finish.
func (c *Cli) drainDocument(ctx context.Context, docID string) error {
	version := int64(1)
	if cached, err := c.docs.Get(ctx, docID); err == nil {
		version = cached.Version
	}

	s := c.manager.Open(ctx, docID, version)
	if err := s.DrainQueue(ctx); err != nil {
		return fmt.Errorf("queue replay failed: %w", err)
	}

	return waitQueueIdle(ctx, s)
}

// waitQueueIdle waits out a replay started by Manager.Open, which runs in
// the background and makes our own DrainQueue call return immediately.
func waitQueueIdle(ctx context.Context, s *sync.Synchronizer) error {
	for {
		snap := s.State()
		if !snap.IsProcessingQueue {
			if snap.SaveState == models.SaveStateOffline {
				return fmt.Errorf("server unreachable; queued saves kept for later")
			}
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(50 * time.Millisecond):
		}
	}
}
