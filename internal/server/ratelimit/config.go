package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig is the token-bucket rule for one route or route prefix.
type EndpointConfig struct {
	Path   string // exact path, or a prefix when it ends in "/"
	Method string
	Limit  int           // requests refilled per Window
	Window time.Duration // zero Limit or Window means unlimited
	Burst  int           // bucket size; Limit when zero
}

// LoadConfig builds a Config from RATE_LIMIT_* environment variables.
func LoadConfig() *Config {
	if !envValue("RATE_LIMIT_ENABLED", true, strconv.ParseBool) {
		return &Config{Enabled: false}
	}
	return &Config{
		Enabled:         true,
		DefaultLimit:    envValue("RATE_LIMIT_DEFAULT_LIMIT", 1000, strconv.Atoi),
		DefaultWindow:   envValue("RATE_LIMIT_DEFAULT_WINDOW", time.Minute, time.ParseDuration),
		CleanupInterval: envValue("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute, time.ParseDuration),
		IdleTimeout:     envValue("RATE_LIMIT_IDLE_TIMEOUT", time.Hour, time.ParseDuration),
		Whitelist:       clientSet(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       clientSet(os.Getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the per-route tiers. Routes without a rule use
// the default limit; /health is never limited.
func DefaultEndpointConfigs() []EndpointConfig {
	const (
		post  = "POST"
		get   = "GET"
		put   = "PUT"
		patch = "PATCH"
		del   = "DELETE"
	)
	aiCalls := []EndpointConfig{
		{Path: "/tailor", Method: post, Limit: 20, Window: time.Hour, Burst: 3},
		{Path: "/import", Method: post, Limit: 20, Window: time.Hour, Burst: 3},
		{Path: "/interview/messages", Method: post, Limit: 120, Window: time.Hour, Burst: 10},
	}
	rendering := []EndpointConfig{
		{Path: "/export", Method: get, Limit: 60, Window: time.Hour, Burst: 5},
		{Path: "/preview", Method: get, Limit: 300, Window: time.Minute, Burst: 30},
	}
	edits := []EndpointConfig{
		{Path: "/draft", Method: del, Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/draft/", Method: patch, Limit: 300, Window: time.Minute, Burst: 30},
		{Path: "/draft/", Method: put, Limit: 300, Window: time.Minute, Burst: 30},
		{Path: "/draft/", Method: post, Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/draft/", Method: del, Limit: 100, Window: time.Minute, Burst: 10},
	}
	out := make([]EndpointConfig, 0, len(aiCalls)+len(rendering)+len(edits))
	out = append(out, aiCalls...)
	out = append(out, rendering...)
	return append(out, edits...)
}

// envValue parses the named variable, keeping def when it is unset or malformed.
func envValue[T any](key string, def T, parse func(string) (T, error)) T {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := parse(raw)
	if err != nil {
		return def
	}
	return v
}

// clientSet turns "a, b,c" into a lookup set of client addresses.
func clientSet(list string) map[string]bool {
	set := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			set[ip] = true
		}
	}
	return set
}
