package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runList(ctx context.Context) error {
	elements, err := c.dataService.ListElements(ctx, c.projectID)
	if err != nil {
		return fmt.Errorf("failed to list elements: %w", err)
	}

	c.io.Printf("=== Project %s ===\n", c.projectID)
	c.io.Println()

	if len(elements) == 0 {
		c.io.Println("No elements yet. Use 'loreforge add <category>' to create one.")
		return nil
	}

	for i, element := range elements {
		c.io.Printf("%d. [%s] %s\n", i+1, element.Payload.Category, element.Payload.Name)
		c.io.Printf("   ID: %s\n", element.ClientID)
		if element.ServerID == "" {
			c.io.Println("   Not yet synced")
		}
		reason, err := c.dataService.RejectionReason(ctx, c.projectID, element.ClientID)
		if err != nil {
			return err
		}
		if reason != "" {
			c.io.Printf("   ⚠ Rejected by server: %s (edit to retry)\n", reason)
		}
		c.io.Println()
	}

	return nil
}
