// Package llm wraps the language model behind a tiered client. Callers ask for a
// capability tier and the configuration picks the provider model.
package llm

import (
	"os"
	"strconv"
	"strings"
)

// ModelTier is the capability level a call needs.
type ModelTier string

const (
	TierLite     ModelTier = "lite"     // short classification and replies
	TierStandard ModelTier = "standard" // document structuring, interview chat
	TierAdvanced ModelTier = "advanced" // resume tailoring
)

// tierFallback is consulted, in order, when a requested tier has no model.
var tierFallback = []ModelTier{TierStandard, TierLite}

// Provider names an LLM backend.
type Provider string

// ProviderGemini is Google Gemini.
const ProviderGemini Provider = "gemini"

// Config maps tiers to models and holds sampling settings.
type Config struct {
	Provider        Provider
	Models          map[ModelTier]string
	Temperature     float32 // one-shot generation
	ChatTemperature float32 // interview chat
}

// DefaultConfig returns the Gemini configuration.
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the stock Gemini models and temperatures.
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Temperature:     0.1,
		ChatTemperature: 0.7,
	}
}

// ConfigFromEnv applies LLM_MODEL_<TIER>, LLM_TEMPERATURE and LLM_CHAT_TEMPERATURE
// overrides to the defaults. Empty or malformed values are ignored.
func ConfigFromEnv() *Config {
	c := DefaultConfig()
	for _, tier := range []ModelTier{TierLite, TierStandard, TierAdvanced} {
		if model := strings.TrimSpace(os.Getenv("LLM_MODEL_" + strings.ToUpper(string(tier)))); model != "" {
			c = c.WithModel(tier, model)
		}
	}
	if t, ok := envTemperature("LLM_TEMPERATURE"); ok {
		c.Temperature = t
	}
	if t, ok := envTemperature("LLM_CHAT_TEMPERATURE"); ok {
		c.ChatTemperature = t
	}
	return c
}

func envTemperature(key string) (float32, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv(key)), 32)
	if err != nil || v < 0 || v > 2 {
		return 0, false
	}
	return float32(v), true
}

// GetModel returns the model for tier, falling back to the standard and then the
// lite model. It returns "" when none is configured.
func (c *Config) GetModel(tier ModelTier) string {
	if m := c.Models[tier]; m != "" {
		return m
	}
	for _, fb := range tierFallback {
		if m := c.Models[fb]; m != "" {
			return m
		}
	}
	return ""
}

// WithModel returns a copy of c with tier mapped to model.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	out := *c
	out.Models = make(map[ModelTier]string, len(c.Models)+1)
	for k, v := range c.Models {
		out.Models[k] = v
	}
	out.Models[tier] = model
	return &out
}
