package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runConflicts(ctx context.Context, args []string) error {
	if len(args) > 0 && args[0] == "dismiss" {
		if len(args) < 2 {
			return fmt.Errorf("missing conflict ID. Usage: loreforge conflicts dismiss <id>")
		}
		if err := c.syncService.DismissConflict(ctx, args[1]); err != nil {
			return fmt.Errorf("failed to dismiss conflict: %w", err)
		}
		c.io.Println("✓ Conflict dismissed.")
		return nil
	}

	conflicts, err := c.syncService.Conflicts(ctx, c.projectID)
	if err != nil {
		return fmt.Errorf("failed to list conflicts: %w", err)
	}

	c.io.Println("=== Conflicts ===")
	c.io.Println()

	if len(conflicts) == 0 {
		c.io.Println("No conflicts recorded.")
		return nil
	}

	for i, conflict := range conflicts {
		c.io.Printf("%d. Element %s (detected %s)\n",
			i+1, conflict.ClientID, conflict.DetectedAt.Format("2006-01-02 15:04:05"))
		c.io.Printf("   Conflict ID: %s\n", conflict.ID)
		c.io.Printf("   Winner: %s\n", conflict.Winner)
		c.io.Printf("   Local:  %q (at %s)\n",
			conflict.LocalPayload.Name, conflict.LocalUpdatedAt.Format("15:04:05"))
		c.io.Printf("   Remote: %q (at %s)\n",
			conflict.RemotePayload.Name, conflict.RemoteUpdatedAt.Format("15:04:05"))
		c.io.Println()
	}

	c.io.Println("The winning value is already in place. Dismiss reviewed entries with")
	c.io.Println("'loreforge conflicts dismiss <id>'.")
	return nil
}
