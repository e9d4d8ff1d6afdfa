package catalog

import "modelrouter/pkg/types"

// Default returns the built-in fleet in priority order.
func Default() []types.ModelDescriptor {
	return []types.ModelDescriptor{
		{
			ID:            "qwen3-coder-30b-a3b-instruct",
			DisplayName:   "Qwen3-Coder-30B",
			Backend:       types.BackendLMStudio,
			Tier:          types.TierL3,
			ParamSize:     "30B",
			Quantization:  types.Unknown,
			LatencyMS:     1550,
			MaxTokens:     8192,
			ContextWindow: 131072,
		},
		{
			ID:            "qwen2-7b-instruct",
			DisplayName:   "Qwen2-7B-Instruct",
			Backend:       types.BackendLMStudio,
			Tier:          types.TierL2,
			ParamSize:     "7B",
			Quantization:  types.Unknown,
			LatencyMS:     3430,
			MaxTokens:     2048,
			ContextWindow: 32768,
		},
		{
			ID:            "qwen2.5-coder:32b",
			DisplayName:   "Qwen2.5-Coder-32B",
			Backend:       types.BackendOllama,
			Tier:          types.TierL4,
			ParamSize:     "32B",
			Quantization:  types.Unknown,
			LatencyMS:     10660,
			MaxTokens:     4096,
			ContextWindow: 32768,
		},
		{
			ID:            "deepseek-r1:32b",
			DisplayName:   "DeepSeek-R1-32B",
			Backend:       types.BackendOllama,
			Tier:          types.TierL4,
			ParamSize:     "32B",
			Quantization:  types.Unknown,
			LatencyMS:     21600,
			MaxTokens:     4096,
			ContextWindow: 32768,
		},
		{
			ID:            "qwen3.5-397b-a17b",
			DisplayName:   "Qwen3.5-397B",
			Backend:       types.BackendLMStudio,
			Tier:          types.TierL5,
			ParamSize:     "397B",
			Quantization:  types.Unknown,
			LatencyMS:     15000,
			MaxTokens:     8192,
			ContextWindow: 131072,
		},
	}
}
