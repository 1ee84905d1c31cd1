// Package config provides configuration loading and validation for the server and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Defaults
const (
	DefaultPort           = 8080
	DefaultAITimeout      = 60 * time.Second
	DefaultMaxUploadBytes = 10 << 20
	DefaultTemplate       = "classic"
)

// Config represents the application configuration. Values come from an optional JSON
// file, then environment variables, then defaults.
type Config struct {
	Port            int    `json:"port,omitempty"`
	APIKey          string `json:"api_key,omitempty"`      // Gemini API key
	DatabaseURL     string `json:"database_url,omitempty"` // PostgreSQL connection URL; empty keeps drafts in memory
	ChromePath      string `json:"chrome_path,omitempty"`  // Chrome binary for PDF export; empty uses chromedp's lookup
	AITimeout       string `json:"ai_timeout,omitempty"`   // Go duration or seconds
	MaxUploadBytes  int    `json:"max_upload_bytes,omitempty"`
	DefaultTemplate string `json:"default_template,omitempty"`
	Verbose         bool   `json:"verbose,omitempty"`

	Export ExportConfig `json:"export,omitempty"`
}

// ExportConfig configures object storage for exported documents. Exports are streamed
// inline when Bucket is empty.
type ExportConfig struct {
	Bucket          string `json:"bucket,omitempty"`
	Region          string `json:"region,omitempty"`
	Endpoint        string `json:"endpoint,omitempty"`
	AccessKeyID     string `json:"access_key_id,omitempty"`
	SecretAccessKey string `json:"secret_access_key,omitempty"`
}

// Enabled reports whether exports are uploaded.
func (e ExportConfig) Enabled() bool {
	return e.Bucket != ""
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv returns the configuration held in environment variables.
func FromEnv() (Config, error) {
	cfg := Config{
		APIKey:          os.Getenv("GEMINI_API_KEY"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		ChromePath:      os.Getenv("CHROME_PATH"),
		AITimeout:       os.Getenv("AI_TIMEOUT"),
		DefaultTemplate: os.Getenv("DEFAULT_TEMPLATE"),
		Export: ExportConfig{
			Bucket:          os.Getenv("EXPORT_S3_BUCKET"),
			Region:          os.Getenv("EXPORT_S3_REGION"),
			Endpoint:        os.Getenv("EXPORT_S3_ENDPOINT"),
			AccessKeyID:     os.Getenv("EXPORT_S3_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("EXPORT_S3_SECRET_ACCESS_KEY"),
		},
	}

	var err error
	if cfg.Port, err = envInt("PORT"); err != nil {
		return Config{}, err
	}
	if cfg.MaxUploadBytes, err = envInt("MAX_UPLOAD_BYTES"); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func envInt(name string) (int, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", name, err)
	}
	return n, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.MaxUploadBytes < 0 {
		return fmt.Errorf("config error: 'max_upload_bytes' must be non-negative")
	}
	if _, err := c.Timeout(); err != nil {
		return err
	}
	if c.Export.AccessKeyID != "" && c.Export.SecretAccessKey == "" {
		return fmt.Errorf("config error: export access key id given without a secret")
	}
	if c.ChromePath != "" {
		if _, err := os.Stat(c.ChromePath); os.IsNotExist(err) {
			return fmt.Errorf("config error: chrome binary not found: %s", c.ChromePath)
		}
	}
	return nil
}

// Timeout returns the AI request timeout. An empty value yields DefaultAITimeout.
func (c *Config) Timeout() (time.Duration, error) {
	raw := strings.TrimSpace(c.AITimeout)
	if raw == "" {
		return DefaultAITimeout, nil
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		raw = fmt.Sprintf("%ds", secs)
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("config error: invalid 'ai_timeout' %q", c.AITimeout)
	}
	return d, nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults, then
// from the package defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}
	if result.AITimeout == "" {
		result.AITimeout = defaults.AITimeout
	}
	if result.DefaultTemplate == "" {
		result.DefaultTemplate = defaults.DefaultTemplate
	}
	if !result.Export.Enabled() {
		result.Export = defaults.Export
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.MaxUploadBytes == 0 {
		result.MaxUploadBytes = defaults.MaxUploadBytes
	}

	if result.Port == 0 {
		result.Port = DefaultPort
	}
	if result.MaxUploadBytes == 0 {
		result.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if result.DefaultTemplate == "" {
		result.DefaultTemplate = DefaultTemplate
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
