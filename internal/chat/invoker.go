// Package chat sends a conversation to one named catalog model.
//
// The invoker does no routing, retries or health bookkeeping: backend errors come back
// unchanged so callers can inspect the upstream status.
package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"modelrouter/internal/backend"
	"modelrouter/internal/catalog"
	"modelrouter/pkg/types"
)

var (
	ErrModelNotFound = errors.New("model not found")
	ErrEmptyResponse = errors.New("backend returned no choices")
)

// Option adjusts the generation parameters of one call.
type Option func(*backend.ChatOptions)

func WithMaxTokens(n int) Option {
	return func(o *backend.ChatOptions) {
		if n > 0 {
			o.MaxTokens = n
		}
	}
}

func WithTemperature(t float64) Option {
	return func(o *backend.ChatOptions) { o.Temperature = t }
}

func WithStream(s bool) Option {
	return func(o *backend.ChatOptions) { o.Stream = s }
}

type Options struct {
	Logger *zerolog.Logger
	// Clock is used for latency measurement; defaults to time.Now.
	Clock func() time.Time
}

// Reply is a completed chat with timing.
type Reply struct {
	ID              string
	Model           string
	Text            string
	FinishReason    string
	Usage           types.Usage
	Latency         time.Duration
	TokensPerSecond float64
}

type Invoker struct {
	cat *catalog.Catalog
	log zerolog.Logger
	now func() time.Time
}

func New(cat *catalog.Catalog, opts Options) *Invoker {
	inv := &Invoker{cat: cat, log: zerolog.Nop(), now: opts.Clock}
	if inv.now == nil {
		inv.now = time.Now
	}
	if opts.Logger != nil {
		inv.log = opts.Logger.With().Str("component", "chat").Logger()
	}
	return inv
}

// Converse returns the first choice's text.
func (i *Invoker) Converse(ctx context.Context, modelID string, msgs []types.ChatMessage, opts ...Option) (string, error) {
	r, err := i.Complete(ctx, modelID, msgs, opts...)
	if err != nil {
		return "", err
	}
	return r.Text, nil
}

// Ask sends prompt as a single user message.
func (i *Invoker) Ask(ctx context.Context, modelID, prompt string, opts ...Option) (string, error) {
	return i.Converse(ctx, modelID, []types.ChatMessage{types.User(prompt)}, opts...)
}

// Complete is Converse with usage and timing.
func (i *Invoker) Complete(ctx context.Context, modelID string, msgs []types.ChatMessage, opts ...Option) (Reply, error) {
	a, ok := i.cat.Adapter(modelID)
	if !ok {
		chatCalls.WithLabelValues(modelID, "not_found").Inc()
		return Reply{}, fmt.Errorf("%w: %s", ErrModelNotFound, modelID)
	}
	co := backend.DefaultChatOptions()
	for _, o := range opts {
		o(&co)
	}

	id := uuid.NewString()
	log := i.log.With().Str("call_id", id).Str("model", modelID).Str("backend", string(a.Kind())).Logger()
	start := i.now()
	res, err := a.ChatCompletion(ctx, modelID, msgs, co)
	took := i.now().Sub(start)
	chatLatency.WithLabelValues(modelID).Observe(took.Seconds())
	if err != nil {
		chatCalls.WithLabelValues(modelID, outcome(err)).Inc()
		log.Warn().Err(err).Dur("took", took).Msg("chat failed")
		return Reply{}, err
	}
	text, ok := res.Text()
	if !ok {
		chatCalls.WithLabelValues(modelID, "empty").Inc()
		log.Warn().Dur("took", took).Msg("chat returned no choices")
		return Reply{}, fmt.Errorf("%s: %w", modelID, ErrEmptyResponse)
	}
	chatCalls.WithLabelValues(modelID, "ok").Inc()

	r := Reply{
		ID:           id,
		Model:        modelID,
		Text:         text,
		FinishReason: res.Choices[0].FinishReason,
		Usage:        res.Usage,
		Latency:      took,
	}
	if took > 0 && res.Usage.CompletionTokens > 0 {
		r.TokensPerSecond = float64(res.Usage.CompletionTokens) / took.Seconds()
	}
	log.Info().Dur("took", took).Int("completion_tokens", res.Usage.CompletionTokens).Msg("chat done")
	return r, nil
}

func outcome(err error) string {
	if _, ok := backend.IsStatus(err); ok {
		return "status"
	}
	if backend.IsTransport(err) {
		return "transport"
	}
	return "error"
}
