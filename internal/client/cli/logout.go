package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runLogout(ctx context.Context) error {
	c.io.Println("=== Logout ===")

	status := c.syncQueue.GetSyncStatus()
	if waiting := status.Pending + status.Retrying; waiting > 0 {
		c.io.Printf("⚠️  %d operation(s) are still waiting to sync and will be sent after the next login.\n", waiting)
	}

	if err := c.authService.Logout(ctx); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}

	c.io.Println("✓ Logout successful!")
	c.io.Println("Your local session has been deleted.")

	return nil
}
