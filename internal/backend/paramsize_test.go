package backend

import "testing"

func TestInferParamSize(t *testing.T) {
	cases := []struct{ in, want string }{
		{"qwen3-coder-30b-a3b-instruct", "30B"},
		{"qwen3.5-397b-a17b", "397B"},
		{"qwen2.5-coder:32b", "32B"},
		{"Qwen2-7B-Instruct", "7B"},
		{"some-30-b-model", "30B"},
		{"distill-7b-from-32b", "32B"},
		{"draft-30b-for-397b", "397B"},
		{"mystery-model", "unknown"},
		{"", "unknown"},
	}
	for _, c := range cases {
		if got := InferParamSize(c.in); got != c.want {
			t.Fatalf("InferParamSize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
