package backend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"modelrouter/pkg/types"
)

// Defaults applied when the corresponding Options fields are unset.
const (
	DefaultTimeout       = 60 * time.Second
	DefaultHealthTimeout = 5 * time.Second

	DefaultMaxTokens   = 512
	DefaultTemperature = 0.7
)

// ErrUnknownBackend is returned when a backend kind has no implementation.
var ErrUnknownBackend = errors.New("unknown backend")

// Adapter is the canonical capability surface over one backend host.
type Adapter interface {
	Kind() types.BackendKind
	BaseURL() string
	// HealthTimeout bounds every liveness probe against this backend.
	HealthTimeout() time.Duration
	// ListModels asks the backend which models it serves.
	ListModels(ctx context.Context) ([]types.ModelDescriptor, error)
	// ChatCompletion posts one OpenAI-style chat request. Non-2xx statuses and
	// transport failures are returned as errors; nothing is retried.
	ChatCompletion(ctx context.Context, model string, msgs []types.ChatMessage, opts ChatOptions) (types.ChatResult, error)
	// HealthCheck never fails; any problem is reported as false.
	HealthCheck(ctx context.Context) bool
}

// ChatOptions are the generation parameters sent with a chat request.
type ChatOptions struct {
	MaxTokens   int
	Temperature float64
	Stream      bool
}

// DefaultChatOptions returns max_tokens=512, temperature=0.7, stream=false.
func DefaultChatOptions() ChatOptions {
	return ChatOptions{MaxTokens: DefaultMaxTokens, Temperature: DefaultTemperature}
}

// Options configure one adapter. Zero durations fall back to package defaults.
type Options struct {
	BaseURL       string
	Timeout       time.Duration
	HealthTimeout time.Duration
	Logger        *zerolog.Logger
}

// New constructs the adapter for kind. Unknown kinds fail fast.
func New(kind types.BackendKind, opts Options) (Adapter, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("%s: base url is required", kind)
	}
	switch kind {
	case types.BackendLMStudio:
		return &lmStudioAdapter{newHTTPBackend(kind, opts)}, nil
	case types.BackendOllama:
		return &ollamaAdapter{newHTTPBackend(kind, opts)}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, kind)
	}
}

// Set maps each backend kind to its adapter.
type Set map[types.BackendKind]Adapter

// Get returns the adapter for kind or ErrUnknownBackend.
func (s Set) Get(kind types.BackendKind) (Adapter, error) {
	if a, ok := s[kind]; ok && a != nil {
		return a, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, kind)
}
