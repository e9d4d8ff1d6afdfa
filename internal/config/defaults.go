package config

import (
	"fmt"
	"time"

	"modelrouter/pkg/types"
)

// Defaults applied when the corresponding Config fields are unset.
const (
	defaultAddr          = ":8080"
	defaultLogLevel      = "info"
	defaultLMStudioURL   = "http://127.0.0.1:1234"
	defaultOllamaURL     = "http://127.0.0.1:11434"
	defaultTimeout       = 60 * time.Second
	defaultHealthTimeout = 5 * time.Second
	defaultHealthTTL     = 60 * time.Second
	defaultMaxBodyBytes  = 1 << 20
)

// WithDefaults returns a copy of c with every unspecified field filled in.
// Per-backend timeouts inherit the top-level values.
func (c Config) WithDefaults() Config {
	if c.Addr == "" {
		c.Addr = defaultAddr
	}
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if c.DefaultTimeout <= 0 {
		c.DefaultTimeout = Duration(defaultTimeout)
	}
	if c.HealthTimeout <= 0 {
		c.HealthTimeout = Duration(defaultHealthTimeout)
	}
	if c.Health.TTL <= 0 {
		c.Health.TTL = Duration(defaultHealthTTL)
	}
	if c.Health.Probe == "" {
		c.Health.Probe = ProbeList
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = defaultMaxBodyBytes
	}
	c.Backends.LMStudio = c.Backends.LMStudio.withDefaults(defaultLMStudioURL, c.DefaultTimeout, c.HealthTimeout)
	c.Backends.Ollama = c.Backends.Ollama.withDefaults(defaultOllamaURL, c.DefaultTimeout, c.HealthTimeout)
	return c
}

func (b BackendConfig) withDefaults(url string, timeout, health Duration) BackendConfig {
	if b.BaseURL == "" {
		b.BaseURL = url
	}
	if b.Timeout <= 0 {
		b.Timeout = timeout
	}
	if b.HealthTimeout <= 0 {
		b.HealthTimeout = health
	}
	return b
}

// Validate checks cross-field constraints. Call it after WithDefaults.
func (c Config) Validate() error {
	if c.PreferredTier != "" {
		if _, err := types.ParseTier(c.PreferredTier); err != nil {
			return fmt.Errorf("preferred_tier: %w", err)
		}
	}
	switch c.Health.Probe {
	case ProbeList, ProbeChat:
	default:
		return fmt.Errorf("health.probe: unknown mode %q (want %s|%s)", c.Health.Probe, ProbeList, ProbeChat)
	}
	for _, kind := range []types.BackendKind{types.BackendLMStudio, types.BackendOllama} {
		b, _ := c.Backends.ByKind(kind)
		if b.Disabled {
			continue
		}
		if b.HealthTimeout >= b.Timeout {
			return fmt.Errorf("backends.%s: health_timeout (%s) must be shorter than timeout (%s)",
				kind, b.HealthTimeout.D(), b.Timeout.D())
		}
	}
	if c.Backends.LMStudio.Disabled && c.Backends.Ollama.Disabled {
		return fmt.Errorf("backends: every backend is disabled")
	}
	return nil
}

// Tier returns the parsed preferred tier, or nil when none is configured.
func (c Config) Tier() *types.Tier {
	if c.PreferredTier == "" {
		return nil
	}
	t, err := types.ParseTier(c.PreferredTier)
	if err != nil {
		return nil
	}
	return &t
}
