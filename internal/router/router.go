// Package router picks one catalog model for a request from a task category and an
// optional tier hint, preferring models whose health verdict is good.
//
// Selection never fails: when nothing is healthy the last candidate is returned and a
// route_exhausted event is published, leaving the caller's chat attempt to surface the
// real backend error.
package router

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"modelrouter/internal/catalog"
	"modelrouter/internal/health"
	"modelrouter/pkg/types"
)

// Candidate sources reported in Decision.Source.
const (
	SourceTier    = "tier"
	SourceTask    = "task"
	SourceCatalog = "catalog"
)

type Options struct {
	Probe     ProbeFactory
	Publisher EventPublisher
	Logger    *zerolog.Logger
}

// Decision explains one selection.
type Decision struct {
	Model      types.ModelDescriptor
	Candidates []types.ModelDescriptor
	Source     string
	Fallback   bool
	Reason     string
}

type Router struct {
	cat   *catalog.Catalog
	cache *health.Cache
	probe ProbeFactory
	pub   EventPublisher
	log   zerolog.Logger
}

func New(cat *catalog.Catalog, cache *health.Cache, opts Options) *Router {
	r := &Router{
		cat:   cat,
		cache: cache,
		probe: opts.Probe,
		pub:   opts.Publisher,
		log:   zerolog.Nop(),
	}
	if r.probe == nil {
		r.probe = ListProbe()
	}
	if r.pub == nil {
		r.pub = noopPublisher{}
	}
	if opts.Logger != nil {
		r.log = opts.Logger.With().Str("component", "router").Logger()
	}
	return r
}

// SetEventPublisher swaps the publisher; nil restores the no-op default.
func (r *Router) SetEventPublisher(p EventPublisher) {
	if p == nil {
		p = noopPublisher{}
	}
	r.pub = p
}

// Select returns the chosen model only.
func (r *Router) Select(ctx context.Context, task TaskCategory, tierHint *types.Tier) types.ModelDescriptor {
	return r.Decide(ctx, task, tierHint).Model
}

// Candidates returns the ordered list Decide walks, and where it came from.
func (r *Router) Candidates(task TaskCategory, tierHint *types.Tier) ([]types.ModelDescriptor, string) {
	if tierHint != nil {
		if byTier := r.cat.ByTier(*tierHint); len(byTier) > 0 {
			return byTier, SourceTier
		}
	}
	if task == TaskReasoning {
		if large := r.cat.ByTiers(types.TierL4, types.TierL5); len(large) > 0 {
			return large, SourceTask
		}
	}
	return r.cat.All(), SourceCatalog
}

// Decide walks the candidates in order and picks the first healthy one.
func (r *Router) Decide(ctx context.Context, task TaskCategory, tierHint *types.Tier) Decision {
	candidates, source := r.Candidates(task, tierHint)
	d := Decision{Candidates: candidates, Source: source}

	if m, ok := r.firstHealthy(ctx, candidates); ok {
		d.Model = m
		d.Reason = "first healthy candidate"
		r.record(task, d)
		return d
	}

	d.Model = candidates[len(candidates)-1]
	d.Fallback = true
	d.Reason = "no healthy candidate; using last candidate"
	r.log.Warn().
		Str("task", string(task)).
		Str("source", source).
		Int("candidates", len(candidates)).
		Str("model", d.Model.ID).
		Msg("no healthy model; falling back to last candidate")
	r.pub.Publish(Event{Name: EventRouteExhausted, ModelID: d.Model.ID, At: time.Now(), Fields: map[string]any{
		"task":       string(task),
		"source":     source,
		"candidates": len(candidates),
	}})
	r.record(task, d)
	return d
}

// Healthy reports whether Decide would find a healthy candidate, without publishing
// events or recording a decision.
func (r *Router) Healthy(ctx context.Context, task TaskCategory, tierHint *types.Tier) bool {
	candidates, _ := r.Candidates(task, tierHint)
	_, ok := r.firstHealthy(ctx, candidates)
	return ok
}

func (r *Router) firstHealthy(ctx context.Context, candidates []types.ModelDescriptor) (types.ModelDescriptor, bool) {
	for _, m := range candidates {
		a, ok := r.cat.Adapter(m.ID)
		if !ok {
			continue
		}
		if r.cache.IsHealthy(ctx, m.ID, r.probe(m, a)) {
			return m, true
		}
	}
	return types.ModelDescriptor{}, false
}

func (r *Router) record(task TaskCategory, d Decision) {
	routeDecisions.WithLabelValues(string(task), d.Model.ID, strconv.FormatBool(d.Fallback)).Inc()
	r.log.Debug().Str("task", string(task)).Str("model", d.Model.ID).Bool("fallback", d.Fallback).Msg("route")
}
