package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/syncqueue"
)

func (c *Cli) runSyncStatus(_ context.Context) error {
	status := c.syncQueue.GetSyncStatus()

	if c.jsonOutput {
		return c.printJSON(status)
	}

	c.io.Println("=== Synchronization ===")
	c.io.Printf("Network:     %s\n", c.connectivity())
	c.io.Printf("Pending:     %d\n", status.Pending)
	c.io.Printf("Retrying:    %d\n", status.Retrying)
	c.io.Printf("Failed:      %d\n", status.Failed)
	if status.InProgress {
		c.io.Println("A sync is in progress.")
	}
	if status.AwaitingLogin {
		c.io.Println("⚠️  Sync is paused until you log in. Run 'adakings login'.")
	}

	if len(status.Operations) == 0 {
		c.io.Println()
		c.io.Println("✓ No operations waiting")
		return nil
	}

	c.io.Println()
	tw := table.NewWriter()
	tw.SetOutputMirror(c.io)
	tw.AppendHeader(table.Row{"ID", "Type", "Status", "Retries", "Created", "Last error"})
	for _, op := range status.Operations {
		tw.AppendRow(table.Row{op.ID, op.Type, op.Status, op.RetryCount, op.Timestamp.Format(time.DateTime), dash(op.LastError)})
	}
	tw.Render()
	return nil
}

func (c *Cli) runSyncForce(ctx context.Context) error {
	c.io.Println("Sending queued changes to the server...")

	if err := c.syncQueue.ForceSyncAll(ctx); err != nil {
		if errors.Is(err, syncqueue.ErrOffline) {
			return fmt.Errorf("server is not reachable, changes stay queued: %w", err)
		}
		if errors.Is(err, syncqueue.ErrNotAuthenticated) {
			return fmt.Errorf("log in to send queued changes: %w", err)
		}
		return fmt.Errorf("synchronization failed: %w", err)
	}

	status := c.syncQueue.GetSyncStatus()
	c.io.Println()
	if status.Pending+status.Retrying == 0 && status.Failed == 0 {
		c.io.Println("✓ Synchronization completed successfully!")
		return nil
	}
	c.io.Printf("Remaining: %d pending, %d retrying, %d failed\n", status.Pending, status.Retrying, status.Failed)
	return nil
}

func (c *Cli) runSyncCancel(_ context.Context, id string) error {
	if !c.syncQueue.CancelOperation(id) {
		return fmt.Errorf("operation %s not found", id)
	}
	c.io.Printf("✓ Operation %s cancelled\n", id)
	return nil
}
