package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/homeblocks/internal/client/storage"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Authentication Status ===")
	c.io.Println()
	c.io.Printf("Server: %s\n", c.cfg.ServerURL)

	if c.cfg.Token != "" || c.cfg.TokenFile != "" {
		c.io.Println("Status: Token provided by options or environment")
		c.printOtherServers(ctx)
		return c.printSnapshotCount(ctx)
	}

	authData, err := c.auth.GetAuth(ctx, c.cfg.ServerURL)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			c.io.Println("Status: Not authenticated")
			c.io.Println()
			c.io.Println("Run 'homeblocks login' to authenticate.")
			c.printOtherServers(ctx)
			return nil
		}
		return fmt.Errorf("failed to get auth data: %w", err)
	}

	c.io.Println("Status: Authenticated")
	if authData.Subject != "" {
		c.io.Printf("Workspace: %s\n", authData.Subject)
	}

	if authData.ExpiresAt != 0 {
		expiresAt := time.Unix(authData.ExpiresAt, 0)
		remaining := expiresAt.Sub(c.now())
		c.io.Printf("Token expires: %s\n", expiresAt.UTC().Format(time.RFC3339))
		if remaining > 0 {
			c.io.Printf("Time remaining: %s\n", remaining.Round(time.Second))
		} else {
			c.io.Println("⚠️  Token has expired. Please login again.")
		}
	}

	c.printOtherServers(ctx)
	return c.printSnapshotCount(ctx)
}

// printOtherServers перечисляет токены, сохранённые для других серверов
func (c *Cli) printOtherServers(ctx context.Context) {
	list, err := c.auth.ListAuth(ctx)
	if err != nil {
		c.logger.Warn("failed to list saved tokens", "error", err)
		return
	}

	current := storage.ServerKey(c.cfg.ServerURL)
	header := false
	for _, a := range list {
		if storage.ServerKey(a.ServerURL) == current {
			continue
		}
		if !header {
			c.io.Println()
			c.io.Println("Other servers:")
			header = true
		}
		state := "valid"
		if a.Expired(c.now().Unix()) {
			state = "expired"
		}
		c.io.Printf("  %s (%s)\n", a.ServerURL, state)
	}
}

func (c *Cli) printSnapshotCount(ctx context.Context) error {
	snapshots, err := c.snapshots.ListSnapshots(ctx)
	if err != nil {
		// Не прерываем выполнение
		c.io.Printf("\nWarning: Failed to list snapshots: %v\n", err)
		return nil
	}
	c.io.Println()
	c.io.Printf("Local snapshots: %d\n", len(snapshots))
	return nil
}
