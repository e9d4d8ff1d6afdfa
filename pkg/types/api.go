package types

// ModelsResponse wraps the catalog returned by GET /models.
type ModelsResponse struct {
	// Catalog entries in priority order.
	Models []ModelDescriptor `json:"models"`
}

// BackendStatus reports a direct (uncached) health check of one backend.
type BackendStatus struct {
	// example: lm_studio
	Kind BackendKind `json:"kind" example:"lm_studio"`
	// example: http://127.0.0.1:1234
	BaseURL string `json:"base_url" example:"http://127.0.0.1:1234"`
	// example: true
	Healthy bool `json:"healthy" example:"true"`
}

// BackendsResponse is returned by GET /backends.
type BackendsResponse struct {
	Backends []BackendStatus `json:"backends"`
}

// HealthEntryStatus is one cached liveness record.
type HealthEntryStatus struct {
	// example: qwen2-7b-instruct
	ModelID string `json:"model_id" example:"qwen2-7b-instruct"`
	// example: true
	Healthy bool `json:"healthy" example:"true"`
	// Time of the probe (unix seconds).
	// example: 1700000000
	CheckedAt int64 `json:"checked_at_unix" example:"1700000000"`
	// Whether the entry is still within the cache TTL.
	// example: true
	Fresh bool `json:"fresh" example:"true"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	Health []HealthEntryStatus `json:"health"`
	// Cache TTL in seconds.
	// example: 60
	HealthTTLSeconds int64 `json:"health_ttl_seconds" example:"60"`
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
	// Most recent routing diagnostics, oldest first.
	Events []EventStatus `json:"events"`
}

// EventStatus is one routing diagnostic, e.g. route_exhausted.
type EventStatus struct {
	// example: route_exhausted
	Name string `json:"name" example:"route_exhausted"`
	// example: qwen3.5-397b-a17b
	ModelID string `json:"model_id" example:"qwen3.5-397b-a17b"`
	// example: 1700000000
	AtUnix int64          `json:"at_unix" example:"1700000000"`
	Fields map[string]any `json:"fields,omitempty"`
}

// RouteRequest asks the router for a model.
type RouteRequest struct {
	// Task category: realtime, reasoning, coding, generation. Unknown values use the default policy.
	// example: reasoning
	Task string `json:"task,omitempty" example:"reasoning"`
	// Optional tier constraint (L1..L5).
	// example: L4
	Tier string `json:"tier,omitempty" example:"L4"`
}

// RouteResponse carries the routing decision.
type RouteResponse struct {
	Model ModelDescriptor `json:"model"`
	// True when no candidate was healthy and the last-resort model was returned.
	// example: false
	Fallback bool `json:"fallback" example:"false"`
	// example: first healthy candidate
	Reason string `json:"reason" example:"first healthy candidate"`
}

// ChatRequest is the payload for POST /chat. When Model is empty the router picks one from Task/Tier.
type ChatRequest struct {
	// example: qwen2-7b-instruct
	Model string `json:"model,omitempty" example:"qwen2-7b-instruct"`
	// example: realtime
	Task string `json:"task,omitempty" example:"realtime"`
	// example: L2
	Tier     string        `json:"tier,omitempty" example:"L2"`
	Messages []ChatMessage `json:"messages"`
	// Defaults to 512.
	// example: 256
	MaxTokens int `json:"max_tokens,omitempty" example:"256"`
	// Defaults to 0.7.
	// example: 0.3
	Temperature *float64 `json:"temperature,omitempty" example:"0.3"`
}

// ChatResponse is returned by POST /chat.
type ChatResponse struct {
	// example: 5f0c2a0e-8d2b-4b1e-9d55-0b7f6b1f3e2a
	ID string `json:"id" example:"5f0c2a0e-8d2b-4b1e-9d55-0b7f6b1f3e2a"`
	// example: qwen2-7b-instruct
	Model string `json:"model" example:"qwen2-7b-instruct"`
	// example: Hello! I am a helpful assistant.
	Content string `json:"content" example:"Hello! I am a helpful assistant."`
	Usage   Usage  `json:"usage"`
	// example: 1234
	LatencyMS int64 `json:"latency_ms" example:"1234"`
	// Completion tokens per second; zero when the backend reports no usage.
	// example: 42.5
	TokensPerSecond float64 `json:"tokens_per_second" example:"42.5"`
	// Set when the router chose the model because nothing was healthy.
	// example: false
	Fallback bool `json:"fallback" example:"false"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// example: 502
	Code int `json:"code" example:"502"`
	// Status returned by the backend when the failure came from upstream.
	// example: 400
	UpstreamStatus int `json:"upstream_status,omitempty" example:"400"`
}
