package e2e

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"modelrouter/internal/backend"
	"modelrouter/internal/httpapi"
	"modelrouter/internal/manager"
	"modelrouter/pkg/types"
)

// fakeHost stands in for one LM Studio or Ollama process.
type fakeHost struct {
	srv        *httptest.Server
	down       atomic.Bool
	chatStatus atomic.Int32
	chatDelay  atomic.Int64
	chats      atomic.Int32
	probes     atomic.Int32
}

func newFakeHost(t *testing.T, listPath string) *fakeHost {
	t.Helper()
	h := &fakeHost{}
	h.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.down.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		switch r.URL.Path {
		case listPath:
			h.probes.Add(1)
			if listPath == "/api/tags" {
				_, _ = w.Write([]byte(`{"models":[]}`))
			} else {
				_, _ = w.Write([]byte(`{"object":"list","data":[]}`))
			}
		case "/v1/chat/completions":
			h.chats.Add(1)
			if d := time.Duration(h.chatDelay.Load()); d > 0 {
				time.Sleep(d)
			}
			if code := h.chatStatus.Load(); code != 0 {
				w.WriteHeader(int(code))
				_, _ = w.Write([]byte(`{"error":"model crashed"}`))
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"up","choices":[{"index":0,"message":{"role":"assistant","content":"pong"},"finish_reason":"stop"}],"usage":{"prompt_tokens":2,"completion_tokens":1,"total_tokens":3}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(h.srv.Close)
	return h
}

type stack struct {
	srv    *httptest.Server
	mgr    *manager.Manager
	lms    *fakeHost
	ollama *fakeHost
}

// newStack serves the real mux over a manager bound to two fake hosts:
// fast-7b (L2) on LM Studio, deep-32b (L4) on Ollama.
func newStack(t *testing.T) *stack {
	t.Helper()
	s := &stack{
		lms:    newFakeHost(t, "/v1/models"),
		ollama: newFakeHost(t, "/api/tags"),
	}
	opts := func(url string) backend.Options {
		return backend.Options{BaseURL: url, Timeout: 2 * time.Second, HealthTimeout: 500 * time.Millisecond}
	}
	mgr, err := manager.NewWithConfig(manager.ManagerConfig{
		Backends: map[types.BackendKind]backend.Options{
			types.BackendLMStudio: opts(s.lms.srv.URL),
			types.BackendOllama:   opts(s.ollama.srv.URL),
		},
		Models: []types.ModelDescriptor{
			{ID: "fast-7b", Backend: types.BackendLMStudio, Tier: types.TierL2},
			{ID: "deep-32b", Backend: types.BackendOllama, Tier: types.TierL4},
		},
	})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	s.mgr = mgr
	s.srv = httptest.NewServer(httpapi.NewMux(mgr))
	t.Cleanup(s.srv.Close)
	return s
}

func httpGet(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	return do(t, req)
}

func httpPostJSON(t *testing.T, url string, payload string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, bytes.NewBufferString(payload))
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return do(t, req)
}

func do(t *testing.T, req *http.Request) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}
