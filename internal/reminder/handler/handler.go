package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"mandate/internal/reminder"
	id "mandate/pkg/domain"
	dErrors "mandate/pkg/domain-errors"
	"mandate/pkg/platform/httputil"
	"mandate/pkg/requestcontext"
)

type Service interface {
	RunPass(ctx context.Context, orgID id.OrgID, now time.Time, window time.Duration) (*reminder.Summary, error)
}

// Handler exposes the reminder pass to an external scheduler trigger.
type Handler struct {
	service       Service
	defaultWindow time.Duration
	logger        zerolog.Logger
}

func New(service Service, defaultWindow time.Duration, logger zerolog.Logger) *Handler {
	if defaultWindow <= 0 {
		defaultWindow = reminder.DefaultDebounceWindow
	}
	return &Handler{service: service, defaultWindow: defaultWindow, logger: logger}
}

// Register mounts endpoints on a router already scoped to /v1/orgs/{orgID}.
func (h *Handler) Register(r chi.Router) {
	r.Post("/reminders/run", h.HandleRunPass)
}

type RunPassRequest struct {
	// DebounceWindow is a Go duration string, e.g. "72h".
	DebounceWindow string `json:"debounce_window"`
}

// HandleRunPass handles POST /v1/orgs/{orgID}/reminders/run.
func (h *Handler) HandleRunPass(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	orgID, err := id.ParseOrgID(chi.URLParam(r, "orgID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var req RunPassRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	window := h.defaultWindow
	if req.DebounceWindow != "" {
		window, err = time.ParseDuration(req.DebounceWindow)
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "debounce_window must be a duration such as 72h"))
			return
		}
	}

	summary, err := h.service.RunPass(ctx, orgID, requestcontext.Now(ctx), window)
	if err != nil {
		h.logger.Error().Err(err).
			Str("request_id", requestID).
			Str("org_id", orgID.String()).
			Msg("reminder pass failed")
		httputil.WriteError(w, err)
		return
	}

	h.logger.Info().
		Str("request_id", requestID).
		Str("org_id", orgID.String()).
		Int("reminders_sent", summary.RemindersSent).
		Int("errors", len(summary.Errors)).
		Msg("reminder pass triggered")

	httputil.WriteJSON(w, http.StatusOK, summary)
}
