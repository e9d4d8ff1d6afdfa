package manager

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"modelrouter/internal/backend"
	"modelrouter/internal/chat"
)

func TestIsInvalidRequest(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", ErrInvalidRequest("messages must not be empty"))
	if !IsInvalidRequest(err) {
		t.Fatalf("expected IsInvalidRequest true")
	}
	if IsInvalidRequest(errors.New("other")) {
		t.Fatalf("expected IsInvalidRequest false for plain error")
	}
}

func TestUpstreamClassification(t *testing.T) {
	status := fmt.Errorf("m: %w", &backend.StatusError{Status: 503, Body: "busy"})
	transport := &backend.TransportError{Op: "POST", URL: "http://x", Err: context.DeadlineExceeded}
	empty := fmt.Errorf("m: %w", chat.ErrEmptyResponse)
	missing := fmt.Errorf("%w: nope", chat.ErrModelNotFound)

	for _, err := range []error{status, transport, empty} {
		if !IsUpstream(err) {
			t.Fatalf("expected upstream: %v", err)
		}
	}
	if IsUpstream(missing) || IsUpstream(ErrInvalidRequest("x")) {
		t.Fatalf("catalog and validation errors are not upstream")
	}
	if !IsModelNotFound(missing) {
		t.Fatalf("expected IsModelNotFound true")
	}
	if code, ok := UpstreamStatus(status); !ok || code != 503 {
		t.Fatalf("expected 503, got %d %v", code, ok)
	}
	if _, ok := UpstreamStatus(transport); ok {
		t.Fatalf("transport error carries no status")
	}
}
