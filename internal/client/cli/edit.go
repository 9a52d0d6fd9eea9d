package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runEdit(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing element ID. Usage: loreforge edit <id>")
	}
	clientID := args[0]

	element, err := c.dataService.GetElement(ctx, c.projectID, clientID)
	if err != nil {
		return fmt.Errorf("failed to get element: %w", err)
	}

	c.io.Printf("=== Edit [%s] %s ===\n", element.Payload.Category, element.Payload.Name)
	c.io.Println("Press Enter to keep the current value.")
	c.io.Println()

	payload, err := c.promptPayload(element.Payload.Category, element.Payload)
	if err != nil {
		return err
	}

	if _, err := c.dataService.UpdateElement(ctx, c.projectID, clientID, payload); err != nil {
		return fmt.Errorf("failed to update element: %w", err)
	}

	c.io.Println()
	c.io.Printf("✓ %q updated. Run 'loreforge sync' to push the change.\n", payload.Name)
	return nil
}
