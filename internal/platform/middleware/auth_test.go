package middleware

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mandate/pkg/requestcontext"
)

type stubValidator struct {
	claims *JWTClaims
	err    error
}

func (s stubValidator) ValidateToken(string) (*JWTClaims, error) {
	return s.claims, s.err
}

func newScopedRouter(v JWTValidator) http.Handler {
	log := zerolog.New(io.Discard)
	r := chi.NewRouter()
	r.Use(RequireAuth(v, log))
	r.With(RequireOrgScope(log)).Get("/v1/orgs/{orgID}/compliance", func(w http.ResponseWriter, r *http.Request) {
		org, _ := requestcontext.PrincipalOrg(r.Context())
		_, _ = w.Write([]byte(org.String()))
	})
	return r
}

func TestRequireAuth(t *testing.T) {
	org := uuid.New()
	path := "/v1/orgs/" + org.String() + "/compliance"

	t.Run("missing header is unauthorized", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newScopedRouter(stubValidator{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("invalid token is unauthorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer nope")
		rec := httptest.NewRecorder()
		newScopedRouter(stubValidator{err: errors.New("bad")}).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("matching org passes through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer ok")
		rec := httptest.NewRecorder()
		newScopedRouter(stubValidator{claims: &JWTClaims{Subject: "ops", OrgID: org.String()}}).ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, org.String(), rec.Body.String())
	})

	t.Run("other org is forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer ok")
		rec := httptest.NewRecorder()
		newScopedRouter(stubValidator{claims: &JWTClaims{OrgID: uuid.NewString()}}).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("malformed path org is bad request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/orgs/not-a-uuid/compliance", nil)
		req.Header.Set("Authorization", "Bearer ok")
		rec := httptest.NewRecorder()
		newScopedRouter(stubValidator{claims: &JWTClaims{OrgID: org.String()}}).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRecovery(t *testing.T) {
	h := Recovery(zerolog.New(io.Discard))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
