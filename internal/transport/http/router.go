package httptransport

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"mandate/internal/platform/config"
	"mandate/internal/platform/metrics"
	"mandate/internal/platform/middleware"
	"mandate/pkg/platform/httputil"
	"mandate/pkg/platform/middleware/requesttime"
)

// OrgRoutes mounts endpoints on a router scoped to /v1/orgs/{orgID}.
type OrgRoutes interface {
	Register(r chi.Router)
}

// HealthCheck reports whether one dependency is reachable.
type HealthCheck func(ctx context.Context) error

type Deps struct {
	Routes  []OrgRoutes
	Metrics *metrics.Metrics
	// Auth enables bearer auth and org scoping when non-nil.
	Auth   middleware.JWTValidator
	CORS   config.CORSConfig
	Health map[string]HealthCheck
	Logger zerolog.Logger
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(d.Logger))
	r.Use(middleware.Recovery(d.Logger))
	r.Use(requesttime.Middleware)
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware)
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.CORS.AllowedOrigins,
		AllowedMethods: d.CORS.AllowedMethods,
		AllowedHeaders: d.CORS.AllowedHeaders,
		ExposedHeaders: []string{"X-Request-Id", "X-Content-Hash"},
		MaxAge:         d.CORS.MaxAge,
	}))

	r.Get("/healthz", healthHandler(d.Health))
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}

	r.Route("/v1/orgs/{orgID}", func(r chi.Router) {
		if d.Auth != nil {
			r.Use(middleware.RequireAuth(d.Auth, d.Logger))
			r.Use(middleware.RequireOrgScope(d.Logger))
		}
		for _, routes := range d.Routes {
			routes.Register(r)
		}
	})

	return r
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func healthHandler(checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := healthResponse{Status: "ok", Checks: make(map[string]string, len(checks))}
		status := http.StatusOK
		for name, check := range checks {
			if err := check(ctx); err != nil {
				resp.Checks[name] = "unavailable"
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "ok"
		}
		httputil.WriteJSON(w, status, resp)
	}
}
