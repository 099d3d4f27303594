package cli

import (
	"context"
	"time"
)

func (c *Cli) runList(ctx context.Context) error {
	docs, err := c.docs.List(ctx)
	if err != nil {
		return err
	}

	if len(docs) == 0 {
		c.io.Println("No documents in the local cache.")
		c.io.Println("Run 'writersroom get <id>' to fetch one from the server.")
		return nil
	}

	c.io.Printf("%-36s  %-8s  %-20s  %s\n", "ID", "VERSION", "UPDATED", "TITLE")
	for _, doc := range docs {
		c.io.Printf("%-36s  %-8d  %-20s  %s\n",
			doc.ID, doc.Version, doc.UpdatedAt.Format(time.RFC3339), doc.Title)
	}

	return nil
}
