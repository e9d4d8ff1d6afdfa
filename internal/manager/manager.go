package manager

import (
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"modelrouter/internal/backend"
	"modelrouter/internal/catalog"
	"modelrouter/internal/chat"
	"modelrouter/internal/health"
	"modelrouter/internal/router"
	"modelrouter/pkg/types"
)

type Manager struct {
	adapters      backend.Set
	catalog       *catalog.Catalog
	cache         *health.Cache
	router        *router.Router
	invoker       *chat.Invoker
	events        *router.MemoryPublisher
	preferredTier *types.Tier
	log           zerolog.Logger
	now           func() time.Time
	startTime     time.Time
}

// NewWithConfig builds adapters, catalog, health cache, router and invoker from cfg.
func NewWithConfig(cfg ManagerConfig) (*Manager, error) {
	m := &Manager{
		preferredTier: cfg.PreferredTier,
		log:           zerolog.Nop(),
		now:           cfg.Clock,
	}
	if cfg.Logger != nil {
		m.log = cfg.Logger.With().Str("component", "manager").Logger()
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.preferredTier != nil && !m.preferredTier.Valid() {
		return nil, fmt.Errorf("preferred tier %d is invalid", int(*m.preferredTier))
	}

	m.adapters = cfg.Adapters
	if len(m.adapters) == 0 {
		m.adapters = make(backend.Set, len(cfg.Backends))
		for kind, opts := range cfg.Backends {
			if opts.Logger == nil {
				opts.Logger = cfg.Logger
			}
			a, err := backend.New(kind, opts)
			if err != nil {
				return nil, err
			}
			m.adapters[kind] = a
		}
	}

	models := cfg.Models
	if len(models) == 0 {
		models = catalog.Default()
	}
	cat, err := catalog.New(models, m.adapters)
	if err != nil {
		return nil, err
	}
	m.catalog = cat

	m.cache = health.New(health.Options{TTL: cfg.HealthTTL, Clock: m.now, Logger: cfg.Logger})

	recent := cfg.RecentEvents
	if recent <= 0 {
		recent = defaultRecentEvents
	}
	m.events = router.NewRecentPublisher(recent)
	m.router = router.New(cat, m.cache, router.Options{
		Probe:     cfg.Probe,
		Publisher: router.Fanout{m.events, cfg.Publisher},
		Logger:    cfg.Logger,
	})
	m.invoker = chat.New(cat, chat.Options{Logger: cfg.Logger, Clock: m.now})
	m.startTime = m.now()
	return m, nil
}

// ListModels returns the catalog in priority order.
func (m *Manager) ListModels() []types.ModelDescriptor { return m.catalog.All() }

// Backends returns the configured backend kinds in a stable order.
func (m *Manager) Backends() []types.BackendKind {
	out := make([]types.BackendKind, 0, len(m.adapters))
	for k := range m.adapters {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Invoker exposes the chat invoker for callers that pick the model themselves.
func (m *Manager) Invoker() *chat.Invoker { return m.invoker }

// Refresh marks every cached health verdict stale so the next lookup probes again.
func (m *Manager) Refresh() {
	m.cache.InvalidateAll()
	m.log.Info().Msg("health cache invalidated")
}
