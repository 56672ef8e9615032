package cli

import (
	"context"
	"fmt"
	"time"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Status ===")
	c.io.Println()

	c.io.Printf("Network: %s\n", c.connectivity())

	isAuth, err := c.authService.IsAuthenticated(ctx)
	if err != nil {
		return fmt.Errorf("failed to check authentication: %w", err)
	}

	if !isAuth {
		c.io.Println("Session: Not authenticated")
		c.io.Println("Run 'adakings login' to authenticate.")
	} else {
		session, err := c.authService.Session(ctx)
		if err != nil {
			return fmt.Errorf("failed to get session: %w", err)
		}
		expiresAt := time.Unix(session.ExpiresAt, 0)
		c.io.Printf("Session: %s (expires %s, %s left)\n",
			session.Username, expiresAt.Format(time.RFC3339), expiresAt.Sub(c.now()).Round(time.Second))
	}

	status := c.syncQueue.GetSyncStatus()
	c.io.Println()
	waiting := status.Pending + status.Retrying
	switch {
	case waiting == 0 && status.Failed == 0:
		c.io.Println("✓ All changes synchronized with server")
	default:
		if waiting > 0 {
			c.io.Printf("⚠️  Pending sync: %d operation(s)\n", waiting)
		}
		if status.AwaitingLogin {
			c.io.Println("Sync is paused until you log in.")
		}
		if status.Failed > 0 {
			c.io.Printf("✗ Failed: %d operation(s). Run 'adakings sync status' for details.\n", status.Failed)
		}
	}

	return nil
}
