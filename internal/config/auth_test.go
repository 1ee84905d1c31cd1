package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAuthConfig(t *testing.T) {
	secret := strings.Repeat("s", 32)
	t.Setenv("AUTH_DISABLED", "")
	t.Setenv("AUTH_JWT_SECRET", secret)
	t.Setenv("AUTH_ISSUER", "https://auth.example.com/")
	t.Setenv("AUTH_AUDIENCE", "resume-builder")

	cfg, err := NewAuthConfig()
	require.NoError(t, err)
	assert.Equal(t, secret, cfg.Secret)
	assert.Equal(t, "https://auth.example.com/", cfg.Issuer)
	assert.Equal(t, "resume-builder", cfg.Audience)
	assert.False(t, cfg.Disabled)
}

func TestNewAuthConfig_Disabled(t *testing.T) {
	t.Setenv("AUTH_DISABLED", "true")
	t.Setenv("AUTH_JWT_SECRET", "")

	cfg, err := NewAuthConfig()
	require.NoError(t, err)
	assert.True(t, cfg.Disabled)
}

func TestNewAuthConfig_Errors(t *testing.T) {
	tests := []struct {
		name     string
		disabled string
		secret   string
		wantErr  string
	}{
		{name: "missing secret", wantErr: "AUTH_JWT_SECRET is required"},
		{name: "short secret", secret: "short", wantErr: "at least 32 bytes"},
		{name: "bad flag", disabled: "maybe", wantErr: "invalid AUTH_DISABLED"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("AUTH_DISABLED", tt.disabled)
			t.Setenv("AUTH_JWT_SECRET", tt.secret)
			_, err := NewAuthConfig()
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
