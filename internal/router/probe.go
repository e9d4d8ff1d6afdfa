package router

import (
	"context"

	"modelrouter/internal/backend"
	"modelrouter/internal/health"
	"modelrouter/pkg/types"
)

// ProbeFactory builds the liveness probe for one catalog entry.
type ProbeFactory func(m types.ModelDescriptor, a backend.Adapter) health.ProbeFunc

// ListProbe checks the backend host through its list endpoint. Every model on a host shares its verdict.
func ListProbe() ProbeFactory {
	return func(_ types.ModelDescriptor, a backend.Adapter) health.ProbeFunc {
		return a.HealthCheck
	}
}

// chatProbeMaxTokens keeps the probe reply short.
const chatProbeMaxTokens = 10

// ChatProbe sends a tiny chat to the model itself, so a host that is up but cannot
// load the model reports unhealthy.
func ChatProbe() ProbeFactory {
	return func(m types.ModelDescriptor, a backend.Adapter) health.ProbeFunc {
		return func(ctx context.Context) bool {
			ctx, cancel := context.WithTimeout(ctx, a.HealthTimeout())
			defer cancel()
			_, err := a.ChatCompletion(ctx, m.ID, []types.ChatMessage{types.User("Hi")}, backend.ChatOptions{
				MaxTokens:   chatProbeMaxTokens,
				Temperature: backend.DefaultTemperature,
			})
			return err == nil
		}
	}
}

// ProbeByName maps a config probe mode to a factory; unknown modes use ListProbe.
func ProbeByName(name string) ProbeFactory {
	if name == "chat" {
		return ChatProbe()
	}
	return ListProbe()
}
