package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"modelrouter/pkg/types"
)

const (
	chatCompletionsPath = "/v1/chat/completions"
	maxErrorBody        = 4096
)

// httpBackend holds what both dialects share: one pooled client bound to one base URL.
type httpBackend struct {
	kind          types.BackendKind
	baseURL       string
	timeout       time.Duration
	healthTimeout time.Duration
	httpClient    *http.Client
	log           zerolog.Logger
}

func newHTTPBackend(kind types.BackendKind, opts Options) *httpBackend {
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	b := &httpBackend{
		kind:          kind,
		baseURL:       strings.TrimRight(opts.BaseURL, "/"),
		timeout:       opts.Timeout,
		healthTimeout: opts.HealthTimeout,
		// Timeout stays 0: every call carries its own deadline through the context.
		httpClient: &http.Client{Transport: tr},
		log:        zerolog.Nop(),
	}
	if b.timeout <= 0 {
		b.timeout = DefaultTimeout
	}
	if b.healthTimeout <= 0 {
		b.healthTimeout = DefaultHealthTimeout
	}
	if opts.Logger != nil {
		b.log = opts.Logger.With().Str("backend", string(kind)).Logger()
	}
	return b
}

func (b *httpBackend) Kind() types.BackendKind { return b.kind }

func (b *httpBackend) BaseURL() string { return b.baseURL }

func (b *httpBackend) HealthTimeout() time.Duration { return b.healthTimeout }

// do sends req under timeout and decodes a 2xx JSON body into out.
func (b *httpBackend) do(ctx context.Context, op, method, path string, body any, timeout time.Duration, out any) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	url := b.baseURL + path
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		rd = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, rd)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	start := time.Now()
	resp, err := b.httpClient.Do(req)
	if err != nil {
		observeCall(b.kind, op, "transport_error", time.Since(start))
		return &TransportError{Op: op, URL: url, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		observeCall(b.kind, op, "status_error", time.Since(start))
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Op: op, URL: url, Status: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		observeCall(b.kind, op, "decode_error", time.Since(start))
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	observeCall(b.kind, op, "ok", time.Since(start))
	b.log.Debug().Str("op", op).Str("url", url).Dur("dur", time.Since(start)).Msg("backend call")
	return nil
}

// ping GETs path with the health timeout and reports whether the answer was 200.
func (b *httpBackend) ping(ctx context.Context, path string) bool {
	ctx, cancel := context.WithTimeout(ctx, b.healthTimeout)
	defer cancel()
	url := b.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		b.log.Debug().Err(err).Str("url", url).Msg("health check failed")
		return false
	}
	resp, err := b.httpClient.Do(req)
	if err != nil {
		b.log.Debug().Err(err).Str("url", url).Msg("health check failed")
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
	if resp.StatusCode != http.StatusOK {
		b.log.Debug().Int("status", resp.StatusCode).Str("url", url).Msg("health check not ok")
		return false
	}
	return true
}

// chatMessage and chatRequest mirror the OpenAI chat body field for field; nothing is omitted.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	Stream      bool          `json:"stream"`
}

func (b *httpBackend) ChatCompletion(ctx context.Context, model string, msgs []types.ChatMessage, opts ChatOptions) (types.ChatResult, error) {
	payload := chatRequest{
		Model:       model,
		Messages:    make([]chatMessage, len(msgs)),
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
		Stream:      opts.Stream,
	}
	for i, m := range msgs {
		payload.Messages[i] = chatMessage{Role: string(m.Role), Content: m.Content}
	}
	var resp openai.ChatCompletionResponse
	if err := b.do(ctx, "chat_completion", http.MethodPost, chatCompletionsPath, payload, b.timeout, &resp); err != nil {
		return types.ChatResult{}, err
	}
	out := types.ChatResult{
		ID:      resp.ID,
		Model:   resp.Model,
		Choices: make([]types.Choice, 0, len(resp.Choices)),
		Usage: types.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}
	for _, c := range resp.Choices {
		out.Choices = append(out.Choices, types.Choice{
			Index:        c.Index,
			Message:      types.ChatMessage{Role: types.Role(c.Message.Role), Content: c.Message.Content},
			FinishReason: string(c.FinishReason),
		})
	}
	return out, nil
}
