package manager

import (
	"context"
	"fmt"

	"modelrouter/internal/chat"
	"modelrouter/internal/router"
	"modelrouter/pkg/types"
)

// Route picks a model for task. A nil tierHint falls back to the configured preferred tier.
func (m *Manager) Route(ctx context.Context, task router.TaskCategory, tierHint *types.Tier) router.Decision {
	if tierHint == nil {
		tierHint = m.preferredTier
	}
	return m.router.Decide(ctx, task, tierHint)
}

// RouteRequest parses the wire form of a route request.
func (m *Manager) RouteRequest(ctx context.Context, req types.RouteRequest) (router.Decision, error) {
	hint, err := parseTierHint(req.Tier)
	if err != nil {
		return router.Decision{}, err
	}
	return m.Route(ctx, router.ParseTask(req.Task), hint), nil
}

// Chat routes when req.Model is empty, then invokes the chosen model once.
// A failed chat is returned as is; the request is not re-routed.
func (m *Manager) Chat(ctx context.Context, req types.ChatRequest) (types.ChatResponse, error) {
	if len(req.Messages) == 0 {
		return types.ChatResponse{}, ErrInvalidRequest("messages must not be empty")
	}
	for i, msg := range req.Messages {
		switch msg.Role {
		case types.RoleSystem, types.RoleUser, types.RoleAssistant:
		default:
			return types.ChatResponse{}, ErrInvalidRequest(fmt.Sprintf("messages[%d]: unknown role %q", i, msg.Role))
		}
	}

	modelID := req.Model
	fallback := false
	if modelID == "" {
		d, err := m.RouteRequest(ctx, types.RouteRequest{Task: req.Task, Tier: req.Tier})
		if err != nil {
			return types.ChatResponse{}, err
		}
		modelID, fallback = d.Model.ID, d.Fallback
	}

	var opts []chat.Option
	if req.MaxTokens > 0 {
		opts = append(opts, chat.WithMaxTokens(req.MaxTokens))
	}
	if req.Temperature != nil {
		opts = append(opts, chat.WithTemperature(*req.Temperature))
	}
	r, err := m.invoker.Complete(ctx, modelID, req.Messages, opts...)
	if err != nil {
		return types.ChatResponse{}, err
	}
	return types.ChatResponse{
		ID:              r.ID,
		Model:           r.Model,
		Content:         r.Text,
		Usage:           r.Usage,
		LatencyMS:       r.Latency.Milliseconds(),
		TokensPerSecond: r.TokensPerSecond,
		Fallback:        fallback,
	}, nil
}

func parseTierHint(s string) (*types.Tier, error) {
	if s == "" {
		return nil, nil
	}
	t, err := types.ParseTier(s)
	if err != nil {
		return nil, ErrInvalidRequest(err.Error())
	}
	return &t, nil
}
