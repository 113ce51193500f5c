package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	id "mandate/pkg/domain"
	dErrors "mandate/pkg/domain-errors"
	"mandate/pkg/platform/audit"
	"mandate/pkg/platform/httputil"
	"mandate/pkg/requestcontext"
)

type Service interface {
	List(ctx context.Context, orgID id.OrgID, limit int) ([]audit.Event, error)
}

type Handler struct {
	service Service
	logger  zerolog.Logger
}

func New(service Service, logger zerolog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts endpoints on a router already scoped to /v1/orgs/{orgID}.
func (h *Handler) Register(r chi.Router) {
	r.Get("/audit-events", h.HandleList)
}

type listResponse struct {
	Events []audit.Event `json:"events"`
}

// HandleList handles GET /v1/orgs/{orgID}/audit-events?limit=N.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orgID, err := id.ParseOrgID(chi.URLParam(r, "orgID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "limit must be an integer"))
			return
		}
	}

	events, err := h.service.List(ctx, orgID, limit)
	if err != nil {
		h.logger.Error().Err(err).
			Str("request_id", requestcontext.RequestID(ctx)).
			Str("org_id", orgID.String()).
			Msg("audit trail query failed")
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, listResponse{Events: events})
}
