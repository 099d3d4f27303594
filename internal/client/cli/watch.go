package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/cjliu2003/writersroom-sub009/internal/models"
)

// watchPollInterval is how often the watched file is re-read. File watching
// is poll-based so the command behaves the same on every platform.
const watchPollInterval = 500 * time.Millisecond

// runWatch tails a file and autosaves every edit through the debounced save
// engine until the context is cancelled.
func (c *Cli) runWatch(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: writersroom watch <id> <file>")
	}
	docID, path := args[0], args[1]

	doc, err := c.docs.Get(ctx, docID)
	if err != nil {
		return err
	}

	s := c.manager.Open(ctx, docID, doc.Version)

	if c.prober != nil {
		c.prober.Subscribe(func(online bool) {
			c.manager.SetOnline(ctx, online)
		})
		c.prober.Start(ctx)
		defer c.prober.Stop()
	}

	s.Subscribe(func(snap models.SyncState) {
		switch snap.SaveState {
		case models.SaveStateSaved:
			c.io.Printf("✓ Saved (version %d)\n", snap.CurrentVersion)
		case models.SaveStateConflict:
			c.io.Println("⚠ Conflict: the document changed on the server.")
			c.io.Println("Stop watching and run 'writersroom save' to resolve it.")
		case models.SaveStateOffline:
			c.io.Println("⚠ Offline: save queued for replay.")
		case models.SaveStateError:
			c.io.Printf("✗ Save failed: %s\n", snap.Error)
		case models.SaveStateRateLimited:
			c.io.Printf("Rate limited; retrying in %s\n", snap.RetryAfter)
		}
	})

	c.io.Printf("Watching %s for changes. Press Ctrl-C to stop.\n", path)

	lastContent := doc.Content
	ticker := time.NewTicker(watchPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// Flush whatever is still unsaved before leaving.
			s.SaveNow()
			c.io.Println("")
			c.io.Println("Stopped watching.")
			return nil
		case <-ticker.C:
		}

		data, err := os.ReadFile(path)
		if err != nil {
			// The editor may be mid-rewrite; try again next tick.
			continue
		}
		content := string(data)
		if content == lastContent {
			continue
		}
		lastContent = content
		s.MarkChanged(content)
	}
}
