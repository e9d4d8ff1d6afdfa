package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"modelrouter/internal/router"
	"modelrouter/pkg/types"
)

type mockService struct {
	models    []types.ModelDescriptor
	backends  []types.BackendStatus
	status    types.StatusResponse
	ready     bool
	decision  router.Decision
	routeErr  error
	chatResp  types.ChatResponse
	chatErr   error
	refreshed int
	lastChat  types.ChatRequest
	lastRoute types.RouteRequest
}

func (m *mockService) ListModels() []types.ModelDescriptor {
	return append([]types.ModelDescriptor(nil), m.models...)
}
func (m *mockService) BackendHealth(context.Context) []types.BackendStatus { return m.backends }
func (m *mockService) Status() types.StatusResponse                        { return m.status }
func (m *mockService) Refresh()                                            { m.refreshed++ }
func (m *mockService) Ready(context.Context) bool                          { return m.ready }
func (m *mockService) RouteRequest(_ context.Context, req types.RouteRequest) (router.Decision, error) {
	m.lastRoute = req
	return m.decision, m.routeErr
}
func (m *mockService) Chat(_ context.Context, req types.ChatRequest) (types.ChatResponse, error) {
	m.lastChat = req
	return m.chatResp, m.chatErr
}

type mockHTTPError struct {
	msg  string
	code int
}

func (e mockHTTPError) Error() string   { return e.msg }
func (e mockHTTPError) StatusCode() int { return e.code }

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestModelsHandler(t *testing.T) {
	svc := &mockService{models: []types.ModelDescriptor{{ID: "m1", Tier: types.TierL2}, {ID: "m2", Tier: types.TierL4}}}
	r := NewMux(svc)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/models", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Fatalf("content-type=%s", ct)
	}
	var body types.ModelsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(body.Models) != 2 || body.Models[1].Tier != types.TierL4 {
		t.Fatalf("unexpected body: %+v", body)
	}
	if !strings.Contains(w.Body.String(), `"tier":"L4"`) {
		t.Fatalf("tier should be encoded as a label: %s", w.Body.String())
	}
}

func TestBackendsHandler(t *testing.T) {
	svc := &mockService{backends: []types.BackendStatus{{Kind: types.BackendOllama, BaseURL: "http://x", Healthy: false}}}
	w := httptest.NewRecorder()
	NewMux(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/backends", nil))
	var body types.BackendsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(body.Backends) != 1 || body.Backends[0].Kind != types.BackendOllama || body.Backends[0].Healthy {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestStatusHandler(t *testing.T) {
	svc := &mockService{status: types.StatusResponse{HealthTTLSeconds: 60}}
	r := NewMux(svc)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/status", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var body types.StatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.HealthTTLSeconds != 60 || svc.refreshed != 0 {
		t.Fatalf("unexpected body: %+v", body)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/status?refresh=1", nil))
	if svc.refreshed != 1 {
		t.Fatalf("expected refresh")
	}
}

func TestReadyz(t *testing.T) {
	svc := &mockService{ready: true}
	r := NewMux(svc)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestReadyz_NotReady(t *testing.T) {
	svc := &mockService{ready: false}
	r := NewMux(svc)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "no healthy model") {
		t.Fatalf("body=%q", w.Body.String())
	}
}

func TestRouteHandler(t *testing.T) {
	svc := &mockService{decision: router.Decision{
		Model:    types.ModelDescriptor{ID: "deepseek-r1:32b", Tier: types.TierL4},
		Fallback: true,
		Reason:   "no healthy candidate; using last candidate",
	}}
	w := postJSON(t, NewMux(svc), "/route", `{"task":"reasoning","tier":"L4"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var body types.RouteResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.Model.ID != "deepseek-r1:32b" || !body.Fallback || body.Reason == "" {
		t.Fatalf("unexpected body: %+v", body)
	}
	if svc.lastRoute.Task != "reasoning" || svc.lastRoute.Tier != "L4" {
		t.Fatalf("request not forwarded: %+v", svc.lastRoute)
	}
}

func TestRouteHandler_EmptyBody(t *testing.T) {
	svc := &mockService{decision: router.Decision{Model: types.ModelDescriptor{ID: "m"}}}
	w := httptest.NewRecorder()
	NewMux(svc).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/route", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
}

func TestChatHandler(t *testing.T) {
	svc := &mockService{chatResp: types.ChatResponse{ID: "id", Model: "qwen2-7b-instruct", Content: "hi", LatencyMS: 12}}
	w := postJSON(t, NewMux(svc), "/chat", `{"task":"realtime","messages":[{"role":"user","content":"hello"}],"max_tokens":64,"temperature":0}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var body types.ChatResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.Content != "hi" || body.LatencyMS != 12 {
		t.Fatalf("unexpected body: %+v", body)
	}
	got := svc.lastChat
	if got.Task != "realtime" || got.MaxTokens != 64 || got.Temperature == nil || *got.Temperature != 0 {
		t.Fatalf("request not decoded: %+v", got)
	}
	if len(got.Messages) != 1 || got.Messages[0].Role != types.RoleUser {
		t.Fatalf("messages not decoded: %+v", got.Messages)
	}
}

func TestChatBadJSON(t *testing.T) {
	w := postJSON(t, NewMux(&mockService{}), "/chat", "not-json")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestChatEmptyBodyIsBadRequest(t *testing.T) {
	w := postJSON(t, NewMux(&mockService{}), "/chat", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestChatUnsupportedMediaType(t *testing.T) {
	r := NewMux(&mockService{})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "text/plain")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestChatBodyTooLarge(t *testing.T) {
	big := `{"messages":[{"role":"user","content":"` + strings.Repeat("a", (1<<20)+10) + `"}]}`
	w := postJSON(t, NewMux(&mockService{}), "/chat", big)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for too-large body, got %d", w.Code)
	}
}

func TestHealthz(t *testing.T) {
	r := NewMux(&mockService{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
}
