package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runForget(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: writersroom forget <id>")
	}
	docID := args[0]

	if err := c.docs.Forget(ctx, docID); err != nil {
		return err
	}

	c.io.Printf("✓ Dropped %s from the local cache.\n", docID)
	c.io.Println("The server copy is unaffected.")

	return nil
}
