package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/cjliu2003/writersroom-sub009/internal/client/sync"
	"github.com/cjliu2003/writersroom-sub009/internal/models"
)

// saveOutcomeTick bounds how long the outcome loop waits between state
// checks, so a notification lost to a full channel cannot hang the command.
const saveOutcomeTick = 200 * time.Millisecond

func (c *Cli) runSave(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: writersroom save <id> <file>")
	}
	docID, path := args[0], args[1]

	content, err := readContent(path)
	if err != nil {
		return err
	}

	doc, err := c.docs.Get(ctx, docID)
	if err != nil {
		return err
	}

	s := c.manager.Open(ctx, docID, doc.Version)
	events := subscribeEvents(s)

	s.MarkChanged(content)
	s.SaveNow()

	return c.awaitOutcome(ctx, s, events, doc.Title)
}

// readContent loads the document content from a file, or from stdin when
// path is "-".
func readContent(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// subscribeEvents forwards state transitions into a channel. The listener
// runs under the Synchronizer lock, so it only does a non-blocking send.
func subscribeEvents(s *sync.Synchronizer) <-chan models.SyncState {
	events := make(chan models.SyncState, 32)
	s.Subscribe(func(snap models.SyncState) {
		select {
		case events <- snap:
		default:
		}
	})
	return events
}

// awaitOutcome drives one save to a terminal state, prompting the user when
// a conflict surfaces.
func (c *Cli) awaitOutcome(ctx context.Context, s *sync.Synchronizer, events <-chan models.SyncState, title string) error {
	reportedRateLimit := false

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-events:
		case <-time.After(saveOutcomeTick):
		}

		snap := s.State()
		switch snap.SaveState {
		case models.SaveStateSaved:
			c.cacheConfirmed(ctx, s, title)
			c.io.Printf("✓ Saved. Version is now %d.\n", snap.CurrentVersion)
			return nil

		case models.SaveStateConflict:
			done, err := c.promptConflict(s, snap.Conflict)
			if err != nil {
				return err
			}
			if done {
				return nil
			}

		case models.SaveStateOffline:
			c.io.Println("⚠ Server unreachable. Save queued for replay.")
			c.io.Println("Run 'writersroom sync' once back online.")
			return nil

		case models.SaveStateError:
			return fmt.Errorf("save failed: %s", snap.Error)

		case models.SaveStateRateLimited:
			if !reportedRateLimit {
				c.io.Printf("Rate limited; retrying in %s...\n", snap.RetryAfter)
				reportedRateLimit = true
			}

		default:
			// Pending with the queue drained means a SaveNow was
			// swallowed by a concurrent replay; issue it again.
			if snap.SaveState == models.SaveStatePending && !snap.IsProcessingQueue {
				s.SaveNow()
			}
		}
	}
}

// promptConflict surfaces a lost save and asks the user how to resolve it.
// It reports done=true when the save needs no further waiting.
func (c *Cli) promptConflict(s *sync.Synchronizer, info *models.ConflictInfo) (bool, error) {
	c.io.Println("")
	c.io.Println("⚠ Save conflict: the document changed on the server.")
	if info != nil {
		c.io.Printf("Server version: %d (updated %s)\n",
			info.LatestVersion, info.LatestUpdatedAt.Format(time.RFC3339))
		c.io.Printf("Your base version: %d\n", info.YourBaseVersion)
	}

	answer, err := c.io.ReadInput("Keep [s]erver copy, force [l]ocal copy, or [c]ancel? ")
	if err != nil {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "s", "server":
		if err := s.ResolveAcceptServer(); err != nil {
			return false, err
		}
		c.io.Println("Adopted the server copy. Your local edit was discarded.")
		return true, nil
	case "l", "local":
		if err := s.ResolveForceLocal(); err != nil {
			return false, err
		}
		c.io.Println("Re-saving your copy over the server version...")
		return false, nil
	default:
		_ = s.ResolveCancel()
		return false, fmt.Errorf("save cancelled; the conflict is unresolved")
	}
}

// cacheConfirmed writes the confirmed content and version back to the local
// cache.
func (c *Cli) cacheConfirmed(ctx context.Context, s *sync.Synchronizer, title string) {
	snap := s.State()
	doc := &models.Document{
		ID:        snap.DocumentID,
		Title:     title,
		Content:   s.Content(),
		Version:   snap.CurrentVersion,
		UpdatedAt: snap.LastSavedAt,
	}
	if err := c.docs.CacheDocument(ctx, doc); err != nil {
		c.io.Printf("Warning: failed to update local cache: %v\n", err)
	}
}
