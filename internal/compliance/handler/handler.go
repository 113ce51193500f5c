package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"mandate/internal/compliance"
	id "mandate/pkg/domain"
	"mandate/pkg/platform/httputil"
	"mandate/pkg/requestcontext"
)

// Service defines the compliance operations the handler needs.
type Service interface {
	Report(ctx context.Context, orgID id.OrgID, now time.Time) (*compliance.Report, error)
	UserObligations(ctx context.Context, orgID id.OrgID, userID id.UserID, now time.Time) ([]compliance.Classified, error)
}

// Handler wires compliance endpoints to the compliance service.
type Handler struct {
	service Service
	logger  zerolog.Logger
}

func New(service Service, logger zerolog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts endpoints on a router already scoped to /v1/orgs/{orgID}.
func (h *Handler) Register(r chi.Router) {
	r.Get("/compliance", h.HandleReport)
	r.Get("/users/{userID}/obligations", h.HandleUserObligations)
}

// HandleReport handles GET /v1/orgs/{orgID}/compliance.
func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	orgID, err := id.ParseOrgID(chi.URLParam(r, "orgID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	start := time.Now()
	report, err := h.service.Report(ctx, orgID, requestcontext.Now(ctx))
	if err != nil {
		h.logger.Error().Err(err).
			Str("request_id", requestID).
			Str("org_id", orgID.String()).
			Msg("compliance report failed")
		httputil.WriteError(w, err)
		return
	}

	h.logger.Info().
		Str("request_id", requestID).
		Str("org_id", orgID.String()).
		Str("status", string(report.Org.ComplianceStatus)).
		Int("warnings", len(report.Warnings)).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("compliance report served")

	httputil.WriteJSON(w, http.StatusOK, report)
}

// HandleUserObligations handles GET /v1/orgs/{orgID}/users/{userID}/obligations.
func (h *Handler) HandleUserObligations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orgID, err := id.ParseOrgID(chi.URLParam(r, "orgID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	userID, err := id.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	now := requestcontext.Now(ctx)
	classified, err := h.service.UserObligations(ctx, orgID, userID, now)
	if err != nil {
		h.logger.Error().Err(err).
			Str("request_id", requestcontext.RequestID(ctx)).
			Str("org_id", orgID.String()).
			Str("user_id", userID.String()).
			Msg("user obligations failed")
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromClassified(userID, now, classified))
}
