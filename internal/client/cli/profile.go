package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/storage"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/models"
)

func (c *Cli) runProfileShow(ctx context.Context) error {
	local, err := c.dataService.GetProfile(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrRecordNotFound) {
			c.io.Println("No local profile yet. Use 'adakings profile update' to set one.")
			return nil
		}
		return fmt.Errorf("failed to get profile: %w", err)
	}

	if c.jsonOutput {
		return c.printJSON(local)
	}

	p := local.Profile
	c.io.Println("=== Profile ===")
	c.io.Printf("Name:  %s %s\n", p.FirstName, p.LastName)
	c.io.Printf("Email: %s\n", dash(p.Email))
	c.io.Printf("Phone: %s\n", dash(p.Phone))
	c.io.Printf("Sync:  %s\n", local.SyncStatus)
	return nil
}

func (c *Cli) runProfileUpdate(ctx context.Context, profile models.Profile) error {
	local, err := c.dataService.UpdateProfile(ctx, profile)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if c.jsonOutput {
		return c.printJSON(local)
	}
	c.io.Printf("✓ Profile saved locally (%s)\n", local.SyncStatus)
	return nil
}

func (c *Cli) runPayment(ctx context.Context, payment models.Payment) error {
	id, err := c.dataService.RecordPayment(ctx, payment)
	if err != nil {
		return fmt.Errorf("failed to record payment: %w", err)
	}
	c.io.Printf("✓ Payment of %.2f for order %s queued (operation %s)\n", payment.Amount, payment.OrderNumber, shortID(id))
	return nil
}
