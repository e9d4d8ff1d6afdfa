package manager

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"modelrouter/internal/backend"
	"modelrouter/pkg/types"
)

// fakeHost is a scriptable LM Studio or Ollama server.
type fakeHost struct {
	*httptest.Server
	kind       types.BackendKind
	down       atomic.Bool
	chatStatus atomic.Int32
	listCalls  atomic.Int32
	chatCalls  atomic.Int32

	mu        sync.Mutex
	lastModel string
}

func newFakeHost(t *testing.T, kind types.BackendKind) *fakeHost {
	t.Helper()
	h := &fakeHost{kind: kind}
	h.chatStatus.Store(http.StatusOK)
	mux := http.NewServeMux()
	list := func(w http.ResponseWriter, r *http.Request) {
		h.listCalls.Add(1)
		if h.down.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		if kind == types.BackendOllama {
			_, _ = w.Write([]byte(`{"models":[{"name":"qwen2.5-coder:32b","details":{"parameter_size":"32.8B","quantization_level":"Q4_K_M"}}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"data":[{"id":"qwen2-7b-instruct"}]}`))
	}
	mux.HandleFunc("/v1/models", list)
	mux.HandleFunc("/api/tags", list)
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		h.chatCalls.Add(1)
		var body struct {
			Model string `json:"model"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		h.mu.Lock()
		h.lastModel = body.Model
		h.mu.Unlock()
		if code := int(h.chatStatus.Load()); code != http.StatusOK {
			w.WriteHeader(code)
			_, _ = w.Write([]byte(`{"error":"model failed to load"}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":"c","choices":[{"index":0,"message":{"role":"assistant","content":"hello from ` + body.Model + `"},"finish_reason":"stop"}],"usage":{"prompt_tokens":2,"completion_tokens":3,"total_tokens":5}}`))
	})
	h.Server = httptest.NewServer(mux)
	t.Cleanup(h.Close)
	return h
}

func (h *fakeHost) model() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastModel
}

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

type fixture struct {
	m        *Manager
	lmstudio *fakeHost
	ollama   *fakeHost
	clock    *clock
}

func newFixture(t *testing.T, mutate func(*ManagerConfig)) *fixture {
	t.Helper()
	f := &fixture{
		lmstudio: newFakeHost(t, types.BackendLMStudio),
		ollama:   newFakeHost(t, types.BackendOllama),
		clock:    &clock{t: time.Unix(1_700_000_000, 0)},
	}
	cfg := ManagerConfig{
		Backends: map[types.BackendKind]backend.Options{
			types.BackendLMStudio: {BaseURL: f.lmstudio.URL, Timeout: 2 * time.Second, HealthTimeout: 500 * time.Millisecond},
			types.BackendOllama:   {BaseURL: f.ollama.URL, Timeout: 2 * time.Second, HealthTimeout: 500 * time.Millisecond},
		},
		Clock: f.clock.Now,
	}
	if mutate != nil {
		mutate(&cfg)
	}
	m, err := NewWithConfig(cfg)
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}
	f.m = m
	return f
}
