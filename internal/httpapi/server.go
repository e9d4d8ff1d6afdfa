package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"modelrouter/internal/router"
	"modelrouter/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	ListModels() []types.ModelDescriptor
	BackendHealth(ctx context.Context) []types.BackendStatus
	Status() types.StatusResponse
	Refresh()
	RouteRequest(ctx context.Context, req types.RouteRequest) (router.Decision, error)
	Chat(ctx context.Context, req types.ChatRequest) (types.ChatResponse, error)
	Ready(ctx context.Context) bool
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
			ExposedHeaders: []string{"X-Request-Id"},
			MaxAge:         300,
		}))
	}

	r.Get("/models", handleModels(svc))
	r.Get("/backends", handleBackends(svc))
	r.Get("/status", handleStatus(svc))
	r.Post("/route", handleRoute(svc))
	r.Post("/chat", handleChat(svc))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := handlerContext(r)
		defer cancel()
		if svc.Ready(ctx) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("no healthy model"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	if swaggerEnabled {
		MountSwagger(r)
	}
	return r
}

// handleModels godoc
//
//	@Summary	List the model catalog
//	@Tags		models
//	@Produce	json
//	@Success	200	{object}	types.ModelsResponse
//	@Router		/models [get]
func handleModels(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, types.ModelsResponse{Models: svc.ListModels()})
	}
}

// handleBackends godoc
//
//	@Summary	Check every backend directly
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	types.BackendsResponse
//	@Router		/backends [get]
func handleBackends(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := handlerContext(r)
		defer cancel()
		writeJSON(w, http.StatusOK, types.BackendsResponse{Backends: svc.BackendHealth(ctx)})
	}
}

// handleStatus godoc
//
//	@Summary	Health cache snapshot and recent routing events
//	@Tags		health
//	@Produce	json
//	@Param		refresh	query		bool	false	"Mark every cached verdict stale first"
//	@Success	200		{object}	types.StatusResponse
//	@Router		/status [get]
func handleStatus(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if v := r.URL.Query().Get("refresh"); v == "1" || v == "true" {
			svc.Refresh()
		}
		writeJSON(w, http.StatusOK, svc.Status())
	}
}

// handleRoute godoc
//
//	@Summary	Pick a model for a task
//	@Tags		routing
//	@Accept		json
//	@Produce	json
//	@Param		request	body		types.RouteRequest	false	"Task and optional tier"
//	@Success	200		{object}	types.RouteResponse
//	@Failure	400		{object}	types.ErrorResponse
//	@Failure	415		{object}	types.ErrorResponse
//	@Router		/route [post]
func handleRoute(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		var req types.RouteRequest
		if !decodeJSON(w, r, &req, true) {
			return
		}
		logStart(r, "route", map[string]string{"task": req.Task, "tier": req.Tier})
		ctx, cancel := handlerContext(r)
		defer cancel()
		d, err := svc.RouteRequest(ctx, req)
		if err != nil {
			logEnd(r, "route", writeServiceError(w, err), start, err, "")
			return
		}
		writeJSON(w, http.StatusOK, types.RouteResponse{Model: d.Model, Fallback: d.Fallback, Reason: d.Reason})
		logEnd(r, "route", http.StatusOK, start, nil, d.Model.ID)
	}
}

// handleChat godoc
//
//	@Summary		Send a conversation to a model
//	@Description	Routes by task and tier when model is empty. Backend failures map to 502 with the upstream status.
//	@Tags			chat
//	@Accept			json
//	@Produce		json
//	@Param			request	body		types.ChatRequest	true	"Chat request"
//	@Success		200		{object}	types.ChatResponse
//	@Failure		400		{object}	types.ErrorResponse
//	@Failure		404		{object}	types.ErrorResponse
//	@Failure		415		{object}	types.ErrorResponse
//	@Failure		502		{object}	types.ErrorResponse
//	@Failure		504		{object}	types.ErrorResponse
//	@Router			/chat [post]
func handleChat(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		var req types.ChatRequest
		if !decodeJSON(w, r, &req, false) {
			return
		}
		logStart(r, "chat", map[string]string{"model": req.Model, "task": req.Task, "tier": req.Tier})
		ctx, cancel := handlerContext(r)
		defer cancel()
		resp, err := svc.Chat(ctx, req)
		if err != nil {
			// Client went away or server is shutting down; nobody to answer.
			if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
				return
			}
			logEnd(r, "chat", writeServiceError(w, err), start, err, req.Model)
			return
		}
		writeJSON(w, http.StatusOK, resp)
		logEnd(r, "chat", http.StatusOK, start, nil, resp.Model)
	}
}

// decodeJSON enforces the content type and body limit. With allowEmpty an empty
// body decodes to the zero value.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any, allowEmpty bool) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" && allowEmpty && r.ContentLength == 0 {
		return true
	}
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if allowEmpty && errors.Is(err, io.EOF) {
			return true
		}
		// Oversized bodies also land here; still 400 to avoid size leak details.
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}
