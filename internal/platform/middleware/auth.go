package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	id "mandate/pkg/domain"
	dErrors "mandate/pkg/domain-errors"
	"mandate/pkg/platform/httputil"
	"mandate/pkg/requestcontext"
)

// JWTValidator validates bearer tokens.
type JWTValidator interface {
	ValidateToken(tokenString string) (*JWTClaims, error)
}

// JWTClaims are the claims the middleware needs from a validated token.
type JWTClaims struct {
	Subject string
	OrgID   string
	JTI     string
}

// RequireAuth validates the bearer token and stores the principal's org and
// subject on the request context.
func RequireAuth(validator JWTValidator, log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := requestcontext.RequestID(ctx)

			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				log.Warn().Str("request_id", requestID).Msg("unauthorized access - missing token")
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "missing or invalid Authorization header"))
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				log.Warn().Err(err).Str("request_id", requestID).Msg("unauthorized access - invalid token")
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid or expired token"))
				return
			}
			orgID, err := id.ParseOrgID(claims.OrgID)
			if err != nil {
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "token has no organization"))
				return
			}

			ctx = requestcontext.WithPrincipalOrg(ctx, orgID)
			ctx = requestcontext.WithSubject(ctx, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireOrgScope rejects requests whose {orgID} path parameter differs from
// the authenticated principal's org. Mount it after RequireAuth.
func RequireOrgScope(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			principal, ok := requestcontext.PrincipalOrg(ctx)
			if !ok {
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "not authenticated"))
				return
			}
			pathOrg, err := id.ParseOrgID(chi.URLParam(r, "orgID"))
			if err != nil {
				httputil.WriteError(w, err)
				return
			}
			if pathOrg != principal {
				log.Warn().
					Str("request_id", requestcontext.RequestID(ctx)).
					Str("principal_org", principal.String()).
					Str("path_org", pathOrg.String()).
					Msg("cross-organization access denied")
				httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "token is not valid for this organization"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
