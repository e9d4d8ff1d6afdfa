package catalog

import (
	"fmt"

	"modelrouter/internal/backend"
	"modelrouter/internal/config"
	"modelrouter/pkg/types"
)

// Descriptors converts config entries to descriptors. No entries means the built-in fleet.
// A missing param_size is inferred from the id.
func Descriptors(entries []config.ModelConfig) ([]types.ModelDescriptor, error) {
	if len(entries) == 0 {
		return Default(), nil
	}
	out := make([]types.ModelDescriptor, 0, len(entries))
	for i, e := range entries {
		kind, err := types.ParseBackendKind(e.Backend)
		if err != nil {
			return nil, fmt.Errorf("models[%d] %s: %w", i, e.ID, err)
		}
		tier, err := types.ParseTier(e.Tier)
		if err != nil {
			return nil, fmt.Errorf("models[%d] %s: %w", i, e.ID, err)
		}
		size := e.ParamSize
		if size == "" {
			size = backend.InferParamSize(e.ID)
		}
		out = append(out, types.ModelDescriptor{
			ID:            e.ID,
			DisplayName:   e.Name,
			Backend:       kind,
			Tier:          tier,
			ParamSize:     size,
			Quantization:  e.Quantization,
			LatencyMS:     e.LatencyMS,
			MaxTokens:     e.MaxTokens,
			ContextWindow: e.ContextWindow,
		})
	}
	return out, nil
}
