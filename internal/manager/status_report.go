package manager

import (
	"context"

	"modelrouter/internal/router"
	"modelrouter/pkg/types"
)

// Status builds the response for /status from the health cache and recent router events.
func (m *Manager) Status() types.StatusResponse {
	now := m.now()
	resp := types.StatusResponse{
		HealthTTLSeconds: int64(m.cache.TTL().Seconds()),
		UptimeSeconds:    int64(now.Sub(m.startTime).Seconds()),
		ServerTimeUnix:   now.Unix(),
	}
	snap := m.cache.Snapshot()
	resp.Health = make([]types.HealthEntryStatus, 0, len(snap))
	for _, e := range snap {
		resp.Health = append(resp.Health, types.HealthEntryStatus{
			ModelID:   e.ModelID,
			Healthy:   e.Healthy,
			CheckedAt: e.CheckedAt.Unix(),
			Fresh:     e.Fresh,
		})
	}
	evts := m.events.Events()
	resp.Events = make([]types.EventStatus, 0, len(evts))
	for _, e := range evts {
		resp.Events = append(resp.Events, types.EventStatus{
			Name:    e.Name,
			ModelID: e.ModelID,
			AtUnix:  e.At.Unix(),
			Fields:  e.Fields,
		})
	}
	return resp
}

// Ready reports whether any model a default-task route could pick is healthy.
// It goes through the health cache, so it is cheap within the TTL.
func (m *Manager) Ready(ctx context.Context) bool {
	return m.router.Healthy(ctx, router.TaskDefault, m.preferredTier)
}
