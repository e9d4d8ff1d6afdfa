package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"modelrouter/internal/manager"
	"modelrouter/pkg/types"
)

// HTTPError allows services to provide an HTTP status code for an error.
type HTTPError interface {
	error
	StatusCode() int
}

// statusFor maps a service error to an HTTP status and, for backend status
// failures, the upstream status. Upstream checks come first: backend status
// errors also satisfy HTTPError but must not leak their code as ours.
func statusFor(err error) (status, upstream int) {
	switch {
	case manager.IsInvalidRequest(err):
		return http.StatusBadRequest, 0
	case manager.IsModelNotFound(err):
		return http.StatusNotFound, 0
	}
	if code, ok := manager.UpstreamStatus(err); ok {
		return http.StatusBadGateway, code
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout, 0
	}
	if manager.IsUpstream(err) {
		return http.StatusBadGateway, 0
	}
	var he HTTPError
	if errors.As(err, &he) {
		return he.StatusCode(), 0
	}
	return http.StatusInternalServerError, 0
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, types.ErrorResponse{Error: msg, Code: status})
}

// writeServiceError maps err and writes it; returns the status written.
func writeServiceError(w http.ResponseWriter, err error) int {
	status, upstream := statusFor(err)
	if status == http.StatusBadGateway || status == http.StatusGatewayTimeout {
		IncrementUpstreamError(upstream)
	}
	writeJSON(w, status, types.ErrorResponse{Error: err.Error(), Code: status, UpstreamStatus: upstream})
	return status
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
