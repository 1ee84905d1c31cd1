package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// LocalOwner is the single owner used when authentication is disabled.
const LocalOwner = "local"

// AuthConfig holds the settings used to verify bearer tokens issued by the hosted
// authentication provider.
type AuthConfig struct {
	Secret   string
	Issuer   string
	Audience string
	Disabled bool
}

// NewAuthConfig reads AUTH_DISABLED, AUTH_JWT_SECRET (required unless disabled),
// AUTH_ISSUER and AUTH_AUDIENCE.
func NewAuthConfig() (*AuthConfig, error) {
	disabled := false
	if raw := strings.TrimSpace(os.Getenv("AUTH_DISABLED")); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid AUTH_DISABLED: %v", err)
		}
		disabled = v
	}

	cfg := &AuthConfig{
		Secret:   os.Getenv("AUTH_JWT_SECRET"),
		Issuer:   os.Getenv("AUTH_ISSUER"),
		Audience: os.Getenv("AUTH_AUDIENCE"),
		Disabled: disabled,
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// normalize validates the configuration.
func (c *AuthConfig) normalize() error {
	if c.Disabled {
		return nil
	}
	if c.Secret == "" {
		return fmt.Errorf("AUTH_JWT_SECRET is required unless AUTH_DISABLED=true")
	}
	if len(c.Secret) < 32 {
		return fmt.Errorf("AUTH_JWT_SECRET must be at least 32 bytes, got %d", len(c.Secret))
	}
	return nil
}
