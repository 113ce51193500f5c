package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mandate/internal/reminder"
	id "mandate/pkg/domain"
	dErrors "mandate/pkg/domain-errors"
	"mandate/pkg/requestcontext"
)

type stubService struct {
	err       error
	called    bool
	gotWindow time.Duration
	gotNow    time.Time
}

func (s *stubService) RunPass(_ context.Context, orgID id.OrgID, now time.Time, window time.Duration) (*reminder.Summary, error) {
	s.called = true
	s.gotWindow, s.gotNow = window, now
	if s.err != nil {
		return nil, s.err
	}
	return &reminder.Summary{OrgID: orgID, RanAt: now, TotalOverdue: 2, RemindersSent: 1, Errors: []reminder.PassError{}}, nil
}

var fixedNow = time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)

func serve(svc Service, body string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(requestcontext.WithTime(r.Context(), fixedNow)))
		})
	})
	r.Route("/v1/orgs/{orgID}", New(svc, 0, zerolog.New(io.Discard)).Register)

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(http.MethodPost, "/v1/orgs/"+uuid.NewString()+"/reminders/run", reader)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandleRunPass(t *testing.T) {
	t.Run("empty body uses default window", func(t *testing.T) {
		svc := &stubService{}
		rec := serve(svc, "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, reminder.DefaultDebounceWindow, svc.gotWindow)
		assert.Equal(t, fixedNow, svc.gotNow)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.EqualValues(t, 1, body["reminders_sent"])
		assert.EqualValues(t, 2, body["total_overdue"])
	})

	t.Run("window from body", func(t *testing.T) {
		svc := &stubService{}
		rec := serve(svc, `{"debounce_window":"24h"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 24*time.Hour, svc.gotWindow)
	})

	t.Run("unparseable window is rejected before the pass", func(t *testing.T) {
		svc := &stubService{}
		rec := serve(svc, `{"debounce_window":"three days"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, svc.called)
	})

	t.Run("unknown field is rejected", func(t *testing.T) {
		rec := serve(&stubService{}, `{"window":"24h"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("store unavailable maps to 503", func(t *testing.T) {
		svc := &stubService{err: dErrors.New(dErrors.CodeStoreUnavailable, "obligation store unavailable")}
		rec := serve(svc, "")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("concurrent pass maps to 409", func(t *testing.T) {
		svc := &stubService{err: dErrors.New(dErrors.CodeConflict, "reminder pass already running")}
		rec := serve(svc, "")
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}
