package cli

import (
	"context"
	"fmt"
	"strings"
)

func (c *Cli) runCreate(ctx context.Context, args []string) error {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		var err error
		title, err = c.io.ReadInput("Title: ")
		if err != nil {
			return fmt.Errorf("failed to read title: %w", err)
		}
	}

	doc, err := c.docs.Create(ctx, title, "")
	if err != nil {
		return err
	}

	c.io.Println("✓ Document created!")
	c.io.Printf("ID:      %s\n", doc.ID)
	c.io.Printf("Title:   %s\n", doc.Title)
	c.io.Printf("Version: %d\n", doc.Version)

	return nil
}
