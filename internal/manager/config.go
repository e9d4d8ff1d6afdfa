package manager

import (
	"time"

	"github.com/rs/zerolog"

	"modelrouter/internal/backend"
	"modelrouter/internal/catalog"
	"modelrouter/internal/config"
	"modelrouter/internal/router"
	"modelrouter/pkg/types"
)

// Defaults applied when corresponding ManagerConfig fields are unset.
const (
	defaultRecentEvents = 50
)

// ManagerConfig encapsulates all tunables for Manager construction.
type ManagerConfig struct {
	// Backends to build adapters for. Ignored when Adapters is set.
	Backends map[types.BackendKind]backend.Options
	// Adapters overrides Backends with prebuilt adapters (tests, custom transports).
	Adapters backend.Set
	// Models is the catalog in priority order; empty means catalog.Default().
	Models []types.ModelDescriptor

	HealthTTL time.Duration
	Probe     router.ProbeFactory
	// PreferredTier applies when a caller gives no tier hint.
	PreferredTier *types.Tier
	// RecentEvents bounds the router events kept for Status.
	RecentEvents int
	Publisher    router.EventPublisher

	Logger *zerolog.Logger
	Clock  func() time.Time
}

// FromConfig translates resolved file/env config into a ManagerConfig.
func FromConfig(cfg config.Config, log *zerolog.Logger) (ManagerConfig, error) {
	models, err := catalog.Descriptors(cfg.Models)
	if err != nil {
		return ManagerConfig{}, err
	}
	if len(cfg.Models) == 0 {
		// The built-in fleet spans both backends; keep only what can be served.
		models = enabledModels(models, cfg.Backends)
	}
	mc := ManagerConfig{
		Backends:      make(map[types.BackendKind]backend.Options, 2),
		Models:        models,
		HealthTTL:     cfg.Health.TTL.D(),
		Probe:         router.ProbeByName(cfg.Health.Probe),
		PreferredTier: cfg.Tier(),
		Logger:        log,
	}
	for _, kind := range []types.BackendKind{types.BackendLMStudio, types.BackendOllama} {
		b, _ := cfg.Backends.ByKind(kind)
		if b.Disabled {
			continue
		}
		mc.Backends[kind] = backend.Options{
			BaseURL:       b.BaseURL,
			Timeout:       b.Timeout.D(),
			HealthTimeout: b.HealthTimeout.D(),
			Logger:        log,
		}
	}
	return mc, nil
}

func enabledModels(models []types.ModelDescriptor, backends config.BackendsConfig) []types.ModelDescriptor {
	out := make([]types.ModelDescriptor, 0, len(models))
	for _, m := range models {
		if b, ok := backends.ByKind(m.Backend); ok && !b.Disabled {
			out = append(out, m)
		}
	}
	return out
}
