package main

import (
	"testing"

	"modelrouter/pkg/types"
)

func TestBackendNames(t *testing.T) {
	got := backendNames([]types.BackendKind{types.BackendLMStudio, types.BackendOllama})
	if len(got) != 2 || got[0] != "lm_studio" || got[1] != "ollama" {
		t.Fatalf("unexpected names: %v", got)
	}
	if got := backendNames(nil); len(got) != 0 {
		t.Fatalf("expected empty, got %v", got)
	}
}
