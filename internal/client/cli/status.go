package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cjliu2003/writersroom-sub009/internal/client/auth"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Status ===")
	c.io.Println("")

	authData, err := c.auth.Status(ctx)
	if err != nil {
		if errors.Is(err, auth.ErrNotLoggedIn) {
			c.io.Println("Status: Not logged in")
			c.io.Println("")
			c.io.Println("Run 'writersroom login' to authenticate.")
			return nil
		}
		return fmt.Errorf("failed to check session: %w", err)
	}

	expiresAt := time.Unix(authData.ExpiresAt, 0)
	remaining := time.Until(expiresAt)

	c.io.Println("Status: Logged in")
	c.io.Printf("Username: %s\n", authData.Username)
	c.io.Printf("Access token expires: %s\n", expiresAt.Format(time.RFC3339))
	if remaining > 0 {
		c.io.Printf("Time remaining: %s\n", remaining.Round(time.Second))
	} else {
		c.io.Println("Access token has expired; it will be refreshed on the next request.")
	}

	pending, err := c.pendingSaveCount(ctx)
	if err != nil {
		c.io.Printf("\nWarning: failed to count queued saves: %v\n", err)
		return nil
	}

	c.io.Println("")
	if pending > 0 {
		c.io.Printf("⚠ %d save(s) queued for replay\n", pending)
		c.io.Println("Run 'writersroom sync' to replay them.")
	} else {
		c.io.Println("✓ No saves waiting for replay")
	}

	return nil
}

// pendingSaveCount sums the offline queue across every cached document.
func (c *Cli) pendingSaveCount(ctx context.Context) (int, error) {
	docs, err := c.docs.List(ctx)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, doc := range docs {
		items, err := c.queue.List(ctx, doc.ID)
		if err != nil {
			return 0, err
		}
		total += len(items)
	}
	return total, nil
}
