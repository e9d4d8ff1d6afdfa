package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"modelrouter/internal/backend"
	"modelrouter/internal/chat"
	"modelrouter/internal/manager"
	"modelrouter/pkg/types"
)

func TestChatErrorMapping(t *testing.T) {
	cases := []struct {
		name         string
		err          error
		wantStatus   int
		wantUpstream int
	}{
		{"invalid request", manager.ErrInvalidRequest("messages must not be empty"), http.StatusBadRequest, 0},
		{"unknown model", fmt.Errorf("%w: nope", chat.ErrModelNotFound), http.StatusNotFound, 0},
		{"upstream 400", &backend.StatusError{Op: "chat", URL: "http://x", Status: 400, Body: "model failed to load"}, http.StatusBadGateway, 400},
		{"upstream 500", &backend.StatusError{Op: "chat", URL: "http://x", Status: 500}, http.StatusBadGateway, 500},
		{"transport", &backend.TransportError{Op: "chat", URL: "http://x", Err: io.ErrUnexpectedEOF}, http.StatusBadGateway, 0},
		{"timeout", &backend.TransportError{Op: "chat", URL: "http://x", Err: context.DeadlineExceeded}, http.StatusGatewayTimeout, 0},
		{"empty choices", fmt.Errorf("m: %w", chat.ErrEmptyResponse), http.StatusBadGateway, 0},
		{"http error", mockHTTPError{msg: "busy", code: http.StatusTooManyRequests}, http.StatusTooManyRequests, 0},
		{"generic", io.EOF, http.StatusInternalServerError, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			svc := &mockService{chatErr: c.err}
			w := postJSON(t, NewMux(svc), "/chat", `{"messages":[{"role":"user","content":"hi"}]}`)
			if w.Code != c.wantStatus {
				t.Fatalf("expected %d, got %d", c.wantStatus, w.Code)
			}
			var body types.ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("json: %v", err)
			}
			if body.Code != c.wantStatus || body.UpstreamStatus != c.wantUpstream || body.Error == "" {
				t.Fatalf("unexpected error body: %+v", body)
			}
		})
	}
}

func TestRouteErrorMapping(t *testing.T) {
	svc := &mockService{routeErr: manager.ErrInvalidRequest("invalid tier")}
	w := postJSON(t, NewMux(svc), "/route", `{"tier":"L9"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
