package cli

import (
	"context"
	"fmt"
	"time"
)

func (c *Cli) runGet(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: writersroom get <id>")
	}
	docID := args[0]

	doc, err := c.docs.Get(ctx, docID)
	if err != nil {
		return err
	}

	c.io.Printf("ID:      %s\n", doc.ID)
	c.io.Printf("Title:   %s\n", doc.Title)
	c.io.Printf("Version: %d\n", doc.Version)
	c.io.Printf("Updated: %s\n", doc.UpdatedAt.Format(time.RFC3339))
	c.io.Println("")
	if _, err := c.io.Write([]byte(doc.Content)); err != nil {
		return fmt.Errorf("failed to write content: %w", err)
	}
	c.io.Println("")

	return nil
}
