package httpapi

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"
)

type ctxKey struct{}

func TestSetBaseContext_NilResetsToBackground(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	SetBaseContext(ctx)
	// nolint:staticcheck // SA1012: this test intentionally passes nil to verify fallback behavior
	SetBaseContext(nil)
	cancel()
	if serverBaseCtx.Err() != nil {
		t.Fatal("base context should have been reset to Background")
	}
}

func TestJoinContexts_CancelsWhenEitherDone(t *testing.T) {
	for _, first := range []string{"base", "req"} {
		base, bc := context.WithCancel(context.Background())
		req, rc := context.WithCancel(context.WithValue(context.Background(), ctxKey{}, "v"))
		j, cancelJ := joinContexts(base, req)
		if j.Value(ctxKey{}) != "v" {
			t.Fatal("joined context lost request values")
		}
		if first == "base" {
			bc()
		} else {
			rc()
		}
		select {
		case <-j.Done():
		case <-time.After(500 * time.Millisecond):
			t.Fatalf("joined context did not cancel when %s was canceled", first)
		}
		cancelJ()
		bc()
		rc()
	}
}

func TestHandlerContext_AddsNoDeadline(t *testing.T) {
	ctx, cancel := handlerContext(httptest.NewRequest("GET", "/", nil))
	defer cancel()
	if _, ok := ctx.Deadline(); ok {
		t.Fatal("handler context must not carry a deadline")
	}
	cancel()
	if ctx.Err() != context.Canceled {
		t.Fatalf("unexpected err %v", ctx.Err())
	}
}
