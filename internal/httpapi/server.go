package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"endpointd/internal/manager"
	"endpointd/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Deploy(ctx context.Context, spec types.EndpointSpec) (types.Endpoint, error)
	Describe(name string) (types.Endpoint, error)
	List() []types.Endpoint
	Invoke(ctx context.Context, name, contentType, accept string, body []byte) ([]byte, string, error)
	Delete(ctx context.Context, name string, deleteConfig bool) error
	Status() types.StatusResponse
	Ready() bool
}

// NewMux builds the platform control surface:
//
//	POST   /endpoints                     deploy (blocks until running/failed)
//	GET    /endpoints                     list
//	GET    /endpoints/{name}              describe
//	DELETE /endpoints/{name}?config=true  teardown (idempotent)
//	POST   /endpoints/{name}/invocations  invoke
//	GET    /status /healthz /readyz /metrics
func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	r.Use(MetricsMiddleware)
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
		}))
	}
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	r.Post("/endpoints", func(w http.ResponseWriter, r *http.Request) {
		ct := r.Header.Get("Content-Type")
		if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
			writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		var spec types.EndpointSpec
		if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		joinedCtx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()
		ep, err := svc.Deploy(joinedCtx, spec)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(ep); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
		}
	})

	r.Get("/endpoints", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(types.EndpointsResponse{Endpoints: svc.List()}); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
		}
	})

	r.Get("/endpoints/{name}", func(w http.ResponseWriter, r *http.Request) {
		ep, err := svc.Describe(chi.URLParam(r, "name"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(ep); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
		}
	})

	r.Delete("/endpoints/{name}", func(w http.ResponseWriter, r *http.Request) {
		deleteConfig := r.URL.Query().Get("config") == "true"
		joinedCtx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()
		if err := svc.Delete(joinedCtx, chi.URLParam(r, "name"), deleteConfig); err != nil {
			writeServiceError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "deleted"})
	})

	r.Post("/endpoints/{name}/invocations", func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "failed to read request body")
			return
		}
		start := time.Now()
		joinedCtx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()
		out, outCT, err := svc.Invoke(joinedCtx, name, r.Header.Get("Content-Type"), r.Header.Get("Accept"), body)
		lvl := requestLogLevel(r)
		if err != nil {
			// If context was canceled (client disconnect), just return.
			if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
				return
			}
			status := serviceErrorStatus(err)
			if status == http.StatusTooManyRequests {
				IncrementBackpressure("invocation_queue")
			}
			writeJSONError(w, status, err.Error())
			if lvl >= LevelInfo {
				logInvocation(r, name, status, time.Since(start), err)
			}
			return
		}
		w.Header().Set("Content-Type", outCT)
		_, _ = w.Write(out)
		if lvl >= LevelInfo {
			logInvocation(r, name, http.StatusOK, time.Since(start), nil)
		}
	})

	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(svc.Status()); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
		}
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("shutting down"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)

	return r
}

// serviceErrorStatus maps well-known manager errors to HTTP status codes.
func serviceErrorStatus(err error) int {
	switch {
	case manager.IsEndpointNotFound(err):
		return http.StatusNotFound
	case manager.IsConflict(err), manager.IsEndpointNotReady(err):
		return http.StatusConflict
	case manager.IsValidation(err):
		return http.StatusBadRequest
	case manager.IsTooBusy(err):
		return http.StatusTooManyRequests
	}
	if he, ok := err.(HTTPError); ok {
		return he.StatusCode()
	}
	return http.StatusInternalServerError
}

func writeServiceError(w http.ResponseWriter, err error) {
	writeJSONError(w, serviceErrorStatus(err), err.Error())
}
