// Package requesttime pins a single "now" per HTTP request. Classification
// and aggregation read it through requestcontext.Now so every row of one
// response is computed against the same instant.
package requesttime

import (
	"net/http"
	"time"

	"mandate/pkg/requestcontext"
)

// Middleware captures the wall-clock time at the start of the request.
func Middleware(next http.Handler) http.Handler {
	return New(time.Now)(next)
}

// New builds the middleware around an explicit clock.
func New(clock func() time.Time) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := requestcontext.WithTime(r.Context(), clock().UTC())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
