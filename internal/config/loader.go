package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"modelrouter/pkg/types"
)

// EnvPrefix namespaces every environment override, e.g. MODELROUTER_LM_STUDIO_BASE_URL.
const EnvPrefix = "MODELROUTER_"

// Probe modes for the health cache.
const (
	ProbeList = "list"
	ProbeChat = "chat"
)

// Duration accepts "60s"-style strings in every supported format.
type Duration time.Duration

func (d Duration) D() time.Duration { return time.Duration(d) }

func (d Duration) MarshalText() ([]byte, error) { return []byte(time.Duration(d).String()), nil }

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(b)))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// BackendConfig describes one backend host.
type BackendConfig struct {
	BaseURL       string   `json:"base_url" yaml:"base_url" toml:"base_url" env:"BASE_URL"`
	Timeout       Duration `json:"timeout" yaml:"timeout" toml:"timeout" env:"TIMEOUT"`
	HealthTimeout Duration `json:"health_timeout" yaml:"health_timeout" toml:"health_timeout" env:"HEALTH_TIMEOUT"`
	Disabled      bool     `json:"disabled" yaml:"disabled" toml:"disabled" env:"DISABLED"`
}

type BackendsConfig struct {
	LMStudio BackendConfig `json:"lm_studio" yaml:"lm_studio" toml:"lm_studio" envPrefix:"LM_STUDIO_"`
	Ollama   BackendConfig `json:"ollama" yaml:"ollama" toml:"ollama" envPrefix:"OLLAMA_"`
}

// ByKind returns the config for kind.
func (b BackendsConfig) ByKind(kind types.BackendKind) (BackendConfig, bool) {
	switch kind {
	case types.BackendLMStudio:
		return b.LMStudio, true
	case types.BackendOllama:
		return b.Ollama, true
	}
	return BackendConfig{}, false
}

type HealthConfig struct {
	TTL   Duration `json:"ttl" yaml:"ttl" toml:"ttl" env:"TTL"`
	Probe string   `json:"probe" yaml:"probe" toml:"probe" env:"PROBE"`
}

type CORSConfig struct {
	Enabled bool     `json:"enabled" yaml:"enabled" toml:"enabled" env:"ENABLED"`
	Origins []string `json:"origins" yaml:"origins" toml:"origins" env:"ORIGINS" envSeparator:","`
	Methods []string `json:"methods" yaml:"methods" toml:"methods" env:"METHODS" envSeparator:","`
	Headers []string `json:"headers" yaml:"headers" toml:"headers" env:"HEADERS" envSeparator:","`
}

// ModelConfig is one catalog entry as written in a config file.
type ModelConfig struct {
	ID            string `json:"id" yaml:"id" toml:"id"`
	Name          string `json:"name" yaml:"name" toml:"name"`
	Backend       string `json:"backend" yaml:"backend" toml:"backend"`
	Tier          string `json:"tier" yaml:"tier" toml:"tier"`
	ParamSize     string `json:"param_size" yaml:"param_size" toml:"param_size"`
	Quantization  string `json:"quantization" yaml:"quantization" toml:"quantization"`
	LatencyMS     int    `json:"latency_ms" yaml:"latency_ms" toml:"latency_ms"`
	MaxTokens     int    `json:"max_tokens" yaml:"max_tokens" toml:"max_tokens"`
	ContextWindow int    `json:"context_window" yaml:"context_window" toml:"context_window"`
}

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and are replaced by WithDefaults.
type Config struct {
	Addr           string         `json:"addr" yaml:"addr" toml:"addr" env:"ADDR"`
	LogLevel       string         `json:"log_level" yaml:"log_level" toml:"log_level" env:"LOG_LEVEL"`
	PreferredTier  string         `json:"preferred_tier" yaml:"preferred_tier" toml:"preferred_tier" env:"PREFERRED_TIER"`
	DefaultTimeout Duration       `json:"default_timeout" yaml:"default_timeout" toml:"default_timeout" env:"DEFAULT_TIMEOUT"`
	HealthTimeout  Duration       `json:"health_timeout" yaml:"health_timeout" toml:"health_timeout" env:"HEALTH_TIMEOUT"`
	Health         HealthConfig   `json:"health" yaml:"health" toml:"health" envPrefix:"HEALTH_"`
	Backends       BackendsConfig `json:"backends" yaml:"backends" toml:"backends"`
	Models         []ModelConfig  `json:"models" yaml:"models" toml:"models"`
	CORS           CORSConfig     `json:"cors" yaml:"cors" toml:"cors" envPrefix:"CORS_"`
	Swagger        bool           `json:"swagger" yaml:"swagger" toml:"swagger" env:"SWAGGER"`
	MaxBodyBytes   int64          `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes" env:"MAX_BODY_BYTES"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	path, err := expandHome(path)
	if err != nil {
		return cfg, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// ApplyEnv overlays MODELROUTER_* environment variables; unset variables leave cfg untouched.
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env config: %w", err)
	}
	return nil
}

// Resolve loads path (optional), overlays the environment, fills defaults and validates.
func Resolve(path string) (Config, error) {
	var cfg Config
	if path != "" {
		var err error
		if cfg, err = Load(path); err != nil {
			return cfg, err
		}
	}
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// expandHome resolves a leading "~" or "~/" against the user's home directory.
func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
