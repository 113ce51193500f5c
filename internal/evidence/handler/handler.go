package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"mandate/internal/evidence"
	id "mandate/pkg/domain"
	"mandate/pkg/platform/httputil"
	"mandate/pkg/requestcontext"
)

type Service interface {
	Build(ctx context.Context, orgID id.OrgID, now time.Time) (*evidence.Pack, error)
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
	r.Get("/evidence-pack", h.HandleEvidencePack)
}

// HandleEvidencePack handles GET /v1/orgs/{orgID}/evidence-pack. The content
// hash is echoed in a header so clients can verify a saved download.
func (h *Handler) HandleEvidencePack(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orgID, err := id.ParseOrgID(chi.URLParam(r, "orgID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	pack, err := h.service.Build(ctx, orgID, requestcontext.Now(ctx))
	if err != nil {
		h.logger.Error().Err(err).
			Str("request_id", requestcontext.RequestID(ctx)).
			Str("org_id", orgID.String()).
			Msg("evidence pack failed")
		httputil.WriteError(w, err)
		return
	}

	w.Header().Set("X-Content-Hash", "sha256="+pack.ContentHash)
	httputil.WriteJSON(w, http.StatusOK, pack)
}
