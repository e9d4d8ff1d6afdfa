package backend

import (
	"context"
	"net/http"
	"strings"

	"modelrouter/pkg/types"
)

const ollamaTagsPath = "/api/tags"

// ollamaAdapter lists through the native tag API and chats through the OpenAI-compatible endpoint.
type ollamaAdapter struct {
	*httpBackend
}

type ollamaTags struct {
	Models []struct {
		Name    string `json:"name"`
		Details struct {
			ParameterSize     string `json:"parameter_size"`
			QuantizationLevel string `json:"quantization_level"`
		} `json:"details"`
	} `json:"models"`
}

func (a *ollamaAdapter) ListModels(ctx context.Context) ([]types.ModelDescriptor, error) {
	var tags ollamaTags
	if err := a.do(ctx, "list_models", http.MethodGet, ollamaTagsPath, nil, a.timeout, &tags); err != nil {
		return nil, err
	}
	out := make([]types.ModelDescriptor, 0, len(tags.Models))
	for _, m := range tags.Models {
		out = append(out, types.ModelDescriptor{
			ID:           m.Name,
			DisplayName:  m.Name,
			Backend:      types.BackendOllama,
			ParamSize:    orUnknown(m.Details.ParameterSize),
			Quantization: orUnknown(m.Details.QuantizationLevel),
		})
	}
	return out, nil
}

func (a *ollamaAdapter) HealthCheck(ctx context.Context) bool {
	return a.ping(ctx, ollamaTagsPath)
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return types.Unknown
	}
	return s
}
