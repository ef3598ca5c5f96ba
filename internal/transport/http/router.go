// Package httptransport assembles the public HTTP surface: shared middleware,
// module routes, health and metrics endpoints.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"njgeo/internal/platform/logger"
	dErrors "njgeo/pkg/domain-errors"
	"njgeo/pkg/platform/httputil"
	"njgeo/pkg/platform/middleware/metadata"
	"njgeo/pkg/platform/middleware/requesttime"
	"njgeo/pkg/requestcontext"
)

// Registrar is implemented by module handlers.
type Registrar interface {
	Register(r chi.Router)
}

// HealthFunc reports whether the service can answer queries.
type HealthFunc func(ctx context.Context) error

// Deps carries everything the router needs.
type Deps struct {
	Logger   *slog.Logger
	Gatherer prometheus.Gatherer
	Health   HealthFunc
	Handlers []Registrar
}

type healthResponse struct {
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
}

// NewRouter wires middleware, module routes, /healthz and /metrics.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(metadata.RequestID)
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	r.Use(logger.AccessMiddleware(deps.Logger))
	r.Use(chimw.Recoverer)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusMethodNotAllowed, httputil.ErrorResponse{Error: "method_not_allowed"})
	})

	r.Get("/healthz", healthHandler(deps.Logger, deps.Health))
	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}
	for _, h := range deps.Handlers {
		h.Register(r)
	}
	return r
}

func healthHandler(log *slog.Logger, check HealthFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		resp := healthResponse{Status: "ok", Time: requestcontext.Now(ctx)}
		if check != nil {
			if err := check(ctx); err != nil {
				log.WarnContext(ctx, "health check failed",
					"request_id", requestcontext.RequestID(ctx),
					"error", err.Error(),
				)
				resp.Status = "unavailable"
				httputil.WriteJSON(w, http.StatusServiceUnavailable, resp)
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, resp)
	}
}
