package cli

import (
	"context"
	"time"
)

func (c *Cli) runStatus(ctx context.Context) error {
	status, err := c.authService.Status(ctx)
	if err != nil {
		return err
	}

	c.io.Println("=== Status ===")
	c.io.Println()

	if !status.Authenticated {
		c.io.Println("Not logged in. Run 'loreforge login' first.")
		return nil
	}

	c.io.Printf("Logged in as: %s\n", status.Username)
	if status.ExpiresAt.Before(time.Now()) {
		c.io.Println("Session: expired (will refresh on next sync)")
	} else {
		c.io.Printf("Session: valid until %s\n", status.ExpiresAt.Format(time.RFC1123))
	}

	pending, err := c.syncService.PendingCount(ctx, c.projectID)
	if err != nil {
		return err
	}
	c.io.Printf("Project %q: %d change(s) awaiting sync\n", c.projectID, pending)

	conflicts, err := c.syncService.Conflicts(ctx, c.projectID)
	if err != nil {
		return err
	}
	if len(conflicts) > 0 {
		c.io.Printf("Conflicts needing review: %d (see 'loreforge conflicts')\n", len(conflicts))
	}

	return nil
}
