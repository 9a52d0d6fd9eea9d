package cli

import (
	"context"
	"fmt"
	"strings"
)

func (c *Cli) runDelete(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing element ID. Usage: loreforge delete <id>")
	}
	clientID := args[0]

	element, err := c.dataService.GetElement(ctx, c.projectID, clientID)
	if err != nil {
		return fmt.Errorf("failed to get element: %w", err)
	}

	answer, err := c.io.ReadInput(fmt.Sprintf("Delete %q? [y/N]: ", element.Payload.Name))
	if err != nil {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}
	if strings.ToLower(answer) != "y" {
		c.io.Println("Cancelled.")
		return nil
	}

	if err := c.dataService.DeleteElement(ctx, c.projectID, clientID); err != nil {
		return fmt.Errorf("failed to delete element: %w", err)
	}

	c.io.Printf("✓ %q deleted. The deletion propagates on next sync.\n", element.Payload.Name)
	return nil
}
