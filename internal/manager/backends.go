package manager

import (
	"context"
	"sync"

	"modelrouter/pkg/types"
)

// Discovery is the live model list of one backend.
type Discovery struct {
	Kind    types.BackendKind
	BaseURL string
	Models  []types.ModelDescriptor
	Err     error
}

// Discover asks every backend for its models, concurrently. A failing backend is
// reported in its Discovery and does not affect the others.
func (m *Manager) Discover(ctx context.Context) []Discovery {
	kinds := m.Backends()
	out := make([]Discovery, len(kinds))
	var wg sync.WaitGroup
	for i, kind := range kinds {
		a := m.adapters[kind]
		out[i] = Discovery{Kind: kind, BaseURL: a.BaseURL()}
		wg.Add(1)
		go func(d *Discovery) {
			defer wg.Done()
			d.Models, d.Err = a.ListModels(ctx)
			if d.Err != nil {
				m.log.Warn().Err(d.Err).Str("backend", string(d.Kind)).Msg("discover failed")
			}
		}(&out[i])
	}
	wg.Wait()
	return out
}

// BackendHealth checks every backend directly, bypassing the health cache.
func (m *Manager) BackendHealth(ctx context.Context) []types.BackendStatus {
	kinds := m.Backends()
	out := make([]types.BackendStatus, len(kinds))
	var wg sync.WaitGroup
	for i, kind := range kinds {
		a := m.adapters[kind]
		out[i] = types.BackendStatus{Kind: kind, BaseURL: a.BaseURL()}
		wg.Add(1)
		go func(s *types.BackendStatus) {
			defer wg.Done()
			s.Healthy = a.HealthCheck(ctx)
		}(&out[i])
	}
	wg.Wait()
	return out
}
