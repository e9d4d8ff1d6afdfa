package backend

import (
	"strings"

	"modelrouter/pkg/types"
)

// sizeRule maps any of its tokens, found as a substring of a lowercased model id, to a label.
type sizeRule struct {
	tokens []string
	label  string
}

// sizeRules are evaluated top to bottom; the first match wins.
var sizeRules = []sizeRule{
	{tokens: []string{"397b", "397-b"}, label: "397B"},
	{tokens: []string{"32b", "32-b"}, label: "32B"},
	{tokens: []string{"30b", "30-b"}, label: "30B"},
	{tokens: []string{"7b", "7-b"}, label: "7B"},
}

// InferParamSize guesses a parameter-size label from a model id, or returns "unknown".
func InferParamSize(id string) string {
	lower := strings.ToLower(id)
	for _, r := range sizeRules {
		for _, tok := range r.tokens {
			if strings.Contains(lower, tok) {
				return r.label
			}
		}
	}
	return types.Unknown
}
