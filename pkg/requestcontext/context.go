// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values.
//
// Middleware sets these values; services and handlers read them. Keeping the
// package free of net/http lets the CLI and the reminder pass use the same
// accessors.
//
//	now := requestcontext.Now(ctx)
//	ctx = requestcontext.WithTime(ctx, fixedTime) // tests
package requestcontext

import (
	"context"
	"time"

	id "mandate/pkg/domain"
)

type (
	requestIDKey    struct{}
	requestTimeKey  struct{}
	principalOrgKey struct{}
	subjectKey      struct{}
)

// RequestID retrieves the request id, or "" if not set.
func RequestID(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey{}).(string); ok {
		return v
	}
	return ""
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// Now returns the request-scoped time. Falls back to time.Now() so callers
// outside a request still get a usable clock.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime pins "now" for everything downstream of ctx.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t)
}

// PrincipalOrg returns the organization the caller is authenticated for.
func PrincipalOrg(ctx context.Context) (id.OrgID, bool) {
	v, ok := ctx.Value(principalOrgKey{}).(id.OrgID)
	return v, ok
}

func WithPrincipalOrg(ctx context.Context, orgID id.OrgID) context.Context {
	return context.WithValue(ctx, principalOrgKey{}, orgID)
}

// Subject returns the authenticated token subject, or "".
func Subject(ctx context.Context) string {
	if v, ok := ctx.Value(subjectKey{}).(string); ok {
		return v
	}
	return ""
}

func WithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectKey{}, subject)
}
