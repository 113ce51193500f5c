package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mandate/internal/platform/metrics"
	"mandate/internal/platform/middleware"
	"mandate/pkg/platform/httputil"
	"mandate/pkg/requestcontext"
)

type echoRoutes struct{}

func (echoRoutes) Register(r chi.Router) {
	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"org":      chi.URLParam(r, "orgID"),
			"has_time": !requestcontext.Now(r.Context()).IsZero(),
		})
	})
}

type staticValidator struct {
	claims *middleware.JWTClaims
}

func (v staticValidator) ValidateToken(token string) (*middleware.JWTClaims, error) {
	if token != "good" {
		return nil, errors.New("bad token")
	}
	return v.claims, nil
}

func TestRouter_OrgRoutes(t *testing.T) {
	router := NewRouter(Deps{
		Routes:  []OrgRoutes{echoRoutes{}},
		Metrics: metrics.New(prometheus.NewRegistry()),
		Logger:  zerolog.New(io.Discard),
	})
	org := uuid.NewString()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/orgs/"+org+"/ping", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, org, body["org"])
	assert.Equal(t, true, body["has_time"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	t.Run("metrics endpoint exposes request counter", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "mandate_http_requests_total")
	})
}

func TestRouter_Auth(t *testing.T) {
	org := uuid.New()
	router := NewRouter(Deps{
		Routes: []OrgRoutes{echoRoutes{}},
		Auth:   staticValidator{claims: &middleware.JWTClaims{Subject: "auditor", OrgID: org.String()}},
		Logger: zerolog.New(io.Discard),
	})

	tests := []struct {
		name   string
		org    string
		token  string
		status int
	}{
		{"missing token", org.String(), "", http.StatusUnauthorized},
		{"invalid token", org.String(), "bad", http.StatusUnauthorized},
		{"token for another org", uuid.NewString(), "good", http.StatusForbidden},
		{"token for this org", org.String(), "good", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/orgs/"+tt.org+"/ping", nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestRouter_Health(t *testing.T) {
	t.Run("all checks pass", func(t *testing.T) {
		router := NewRouter(Deps{
			Health: map[string]HealthCheck{"postgres": func(context.Context) error { return nil }},
			Logger: zerolog.New(io.Discard),
		})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("failing check degrades", func(t *testing.T) {
		router := NewRouter(Deps{
			Health: map[string]HealthCheck{
				"postgres": func(context.Context) error { return nil },
				"redis":    func(context.Context) error { return errors.New("dial tcp: refused") },
			},
			Logger: zerolog.New(io.Discard),
		})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var body healthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "degraded", body.Status)
		assert.Equal(t, "unavailable", body.Checks["redis"])
		assert.Equal(t, "ok", body.Checks["postgres"])
	})
}

