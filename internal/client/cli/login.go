package cli

import (
	"context"
	"fmt"
	"time"
)

// LoginOptions задает учетные данные без интерактивного ввода
type LoginOptions struct {
	Username string
	Password string
}

func (c *Cli) runLogin(ctx context.Context, opts LoginOptions) error {
	c.io.Println("=== Login ===")
	c.io.Println()

	username := opts.Username
	if username == "" {
		var err error
		username, err = c.io.ReadInput("Username: ")
		if err != nil {
			return fmt.Errorf("failed to read username: %w", err)
		}
	}

	password := opts.Password
	if password == "" {
		var err error
		password, err = c.io.ReadPassword("Password: ")
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
	}

	c.io.Println("Authenticating...")

	session, err := c.authService.Login(ctx, username, password)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Login successful!")
	c.io.Printf("Username: %s\n", session.Username)
	if session.Role != "" {
		c.io.Printf("Role: %s\n", session.Role)
	}
	c.io.Printf("Session expires: %s\n", time.Unix(session.ExpiresAt, 0).Format(time.RFC3339))

	return nil
}
