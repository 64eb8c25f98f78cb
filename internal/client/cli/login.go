package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iudanet/homeblocks/internal/client/storage"
)

func (c *Cli) runLogin(ctx context.Context) error {
	c.io.Println("=== Login ===")

	token := c.cfg.Token
	if token == "" && c.cfg.TokenFile != "" {
		var err error
		if token, err = readTokenFile(c.cfg.TokenFile); err != nil {
			return err
		}
	}
	if token == "" {
		var err error
		token, err = c.io.ReadPassword("Integration token: ")
		if err != nil {
			return fmt.Errorf("failed to read token: %w", err)
		}
		if token == "" {
			return fmt.Errorf("token cannot be empty")
		}
	}

	data := &storage.AuthData{
		ServerURL: c.cfg.ServerURL,
		Token:     token,
	}
	// Токен песочницы - JWT; срок действия и subject читаются без проверки подписи
	if claims, ok := tokenClaims(token); ok {
		data.Subject = claims.Subject
		if claims.ExpiresAt != nil {
			data.ExpiresAt = claims.ExpiresAt.Unix()
		}
	}

	if data.Expired(c.now().Unix()) {
		return fmt.Errorf("token has already expired")
	}

	if err := c.auth.SaveAuth(ctx, data); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	c.logger.Info("Token saved", "server", data.ServerURL, "subject", data.Subject)
	c.io.Println("✓ Token saved")
	if data.Subject != "" {
		c.io.Printf("Workspace: %s\n", data.Subject)
	}
	return nil
}

func tokenClaims(token string) (*jwt.RegisteredClaims, bool) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, false
	}
	return claims, true
}

func (c *Cli) runLogout(ctx context.Context) error {
	c.io.Println("=== Logout ===")

	if err := c.auth.DeleteAuth(ctx, c.cfg.ServerURL); err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			c.io.Printf("No saved token for %s.\n", c.cfg.ServerURL)
			return nil
		}
		return fmt.Errorf("logout failed: %w", err)
	}

	c.io.Println("✓ Logout successful!")
	c.io.Printf("Saved token for %s has been deleted.\n", c.cfg.ServerURL)
	return nil
}
