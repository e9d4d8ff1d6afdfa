// Package health caches per-model liveness verdicts for a fixed TTL.
//
// A verdict younger than the TTL is returned without probing. Concurrent misses for the
// same model share a single probe. Entries are keyed by catalog id and never evicted.
package health

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// DefaultTTL is how long a verdict stays fresh.
const DefaultTTL = 60 * time.Second

// ProbeFunc performs one liveness check. It runs detached from the caller's cancellation,
// so it must bound itself with its own timeout.
type ProbeFunc func(ctx context.Context) bool

// Clock returns the current time. Tests inject a fake.
type Clock func() time.Time

type Options struct {
	TTL    time.Duration
	Clock  Clock
	Logger *zerolog.Logger
}

// Entry is one cached verdict.
type Entry struct {
	ModelID   string
	Healthy   bool
	CheckedAt time.Time
	Fresh     bool
}

type record struct {
	healthy   bool
	checkedAt time.Time
	stale     bool
}

// Cache is safe for concurrent use.
type Cache struct {
	ttl   time.Duration
	now   Clock
	log   zerolog.Logger
	group singleflight.Group

	mu      sync.RWMutex
	entries map[string]record
}

func New(opts Options) *Cache {
	c := &Cache{
		ttl:     opts.TTL,
		now:     opts.Clock,
		log:     zerolog.Nop(),
		entries: make(map[string]record),
	}
	if c.ttl <= 0 {
		c.ttl = DefaultTTL
	}
	if c.now == nil {
		c.now = time.Now
	}
	if opts.Logger != nil {
		c.log = opts.Logger.With().Str("component", "health").Logger()
	}
	return c
}

func (c *Cache) TTL() time.Duration { return c.ttl }

// IsHealthy returns the cached verdict for modelID when fresh, otherwise runs probe and stores its result.
func (c *Cache) IsHealthy(ctx context.Context, modelID string, probe ProbeFunc) bool {
	if healthy, ok := c.lookup(modelID); ok {
		cacheHits.WithLabelValues(modelID).Inc()
		return healthy
	}
	v, _, _ := c.group.Do(modelID, func() (any, error) {
		// Another caller may have stored a verdict while we waited for the flight.
		if healthy, ok := c.lookup(modelID); ok {
			return healthy, nil
		}
		start := c.now()
		// Detached: the verdict is shared and outlives the caller that triggered it.
		healthy := probe(context.WithoutCancel(ctx))
		c.store(modelID, healthy)
		probesTotal.WithLabelValues(modelID, result(healthy)).Inc()
		c.log.Debug().Str("model", modelID).Bool("healthy", healthy).
			Dur("took", c.now().Sub(start)).Msg("health probe")
		return healthy, nil
	})
	return v.(bool)
}

func (c *Cache) lookup(modelID string) (bool, bool) {
	c.mu.RLock()
	rec, ok := c.entries[modelID]
	c.mu.RUnlock()
	if !ok || !c.fresh(rec) {
		return false, false
	}
	return rec.healthy, true
}

func (c *Cache) store(modelID string, healthy bool) {
	c.mu.Lock()
	c.entries[modelID] = record{healthy: healthy, checkedAt: c.now()}
	c.mu.Unlock()
}

func (c *Cache) fresh(rec record) bool {
	return !rec.stale && c.now().Sub(rec.checkedAt) < c.ttl
}

// Entry returns the stored verdict for modelID, fresh or not.
func (c *Cache) Entry(modelID string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rec, ok := c.entries[modelID]
	if !ok {
		return Entry{}, false
	}
	return c.entry(modelID, rec), true
}

// Snapshot returns every stored verdict sorted by model id.
func (c *Cache) Snapshot() []Entry {
	c.mu.RLock()
	out := make([]Entry, 0, len(c.entries))
	for id, rec := range c.entries {
		out = append(out, c.entry(id, rec))
	}
	c.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ModelID < out[j].ModelID })
	return out
}

func (c *Cache) entry(id string, rec record) Entry {
	return Entry{ModelID: id, Healthy: rec.healthy, CheckedAt: rec.checkedAt, Fresh: c.fresh(rec)}
}

// Invalidate forces the next IsHealthy for modelID to probe. The last verdict stays visible in Snapshot.
func (c *Cache) Invalidate(modelID string) {
	c.mu.Lock()
	if rec, ok := c.entries[modelID]; ok {
		rec.stale = true
		c.entries[modelID] = rec
	}
	c.mu.Unlock()
}

// InvalidateAll marks every entry stale.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	for id, rec := range c.entries {
		rec.stale = true
		c.entries[id] = rec
	}
	c.mu.Unlock()
}

func result(healthy bool) string {
	if healthy {
		return "healthy"
	}
	return "unhealthy"
}
