package backend

import (
	"context"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"modelrouter/pkg/types"
)

const lmStudioModelsPath = "/v1/models"

// lmStudioAdapter talks to an OpenAI-compatible native server such as LM Studio.
// The listing carries ids only, so sizes are inferred from the id and quantization is unknown.
type lmStudioAdapter struct {
	*httpBackend
}

func (a *lmStudioAdapter) ListModels(ctx context.Context) ([]types.ModelDescriptor, error) {
	var list openai.ModelsList
	if err := a.do(ctx, "list_models", http.MethodGet, lmStudioModelsPath, nil, a.timeout, &list); err != nil {
		return nil, err
	}
	out := make([]types.ModelDescriptor, 0, len(list.Models))
	for _, m := range list.Models {
		out = append(out, types.ModelDescriptor{
			ID:           m.ID,
			DisplayName:  m.ID,
			Backend:      types.BackendLMStudio,
			ParamSize:    InferParamSize(m.ID),
			Quantization: types.Unknown,
		})
	}
	return out, nil
}

func (a *lmStudioAdapter) HealthCheck(ctx context.Context) bool {
	return a.ping(ctx, lmStudioModelsPath)
}
