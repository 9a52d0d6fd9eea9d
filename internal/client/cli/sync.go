package cli

import (
	"context"
	"errors"
	"fmt"

	syncsvc "github.com/loreforge/loreforge/internal/client/sync"
)

func (c *Cli) runSync(ctx context.Context) error {
	c.io.Println("=== Synchronization ===")
	c.io.Println()

	result, err := c.syncService.Sync(ctx, c.projectID)
	if err != nil {
		if errors.Is(err, syncsvc.ErrNotAuthenticated) {
			return fmt.Errorf("not authenticated. Run 'loreforge login' first")
		}
		if errors.Is(err, syncsvc.ErrSyncInProgress) {
			c.io.Println("A sync is already running; your request will be picked up.")
			return nil
		}
		return err
	}

	c.io.Println("✓ Sync complete.")
	c.io.Printf("  Pulled:   %d change(s) from server (%d applied)\n", result.Pulled, result.Applied)
	c.io.Printf("  Pushed:   %d change(s) (%d accepted)\n", result.Pushed, result.Accepted)
	if result.Rejected > 0 {
		c.io.Printf("  Rejected: %d change(s), see 'loreforge list' for details\n", result.Rejected)
	}
	if result.Conflicts > 0 {
		c.io.Printf("  Conflicts: %d recorded, review with 'loreforge conflicts'\n", result.Conflicts)
	}

	return nil
}
