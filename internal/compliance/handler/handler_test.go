package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mandate/internal/compliance"
	"mandate/internal/obligation/models"
	id "mandate/pkg/domain"
	dErrors "mandate/pkg/domain-errors"
	"mandate/pkg/requestcontext"
)

type stubService struct {
	report     *compliance.Report
	classified []compliance.Classified
	err        error
	gotNow     time.Time
}

func (s *stubService) Report(_ context.Context, orgID id.OrgID, now time.Time) (*compliance.Report, error) {
	s.gotNow = now
	if s.err != nil {
		return nil, s.err
	}
	r := *s.report
	r.OrgID = orgID
	return &r, nil
}

func (s *stubService) UserObligations(_ context.Context, _ id.OrgID, _ id.UserID, now time.Time) ([]compliance.Classified, error) {
	s.gotNow = now
	return s.classified, s.err
}

var fixedNow = time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)

func newRouter(svc Service) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(requestcontext.WithTime(r.Context(), fixedNow)))
		})
	})
	r.Route("/v1/orgs/{orgID}", New(svc, zerolog.New(io.Discard)).Register)
	return r
}

func TestHandleReport(t *testing.T) {
	org := uuid.New()

	t.Run("returns report as json with request time", func(t *testing.T) {
		svc := &stubService{report: &compliance.Report{
			Result: compliance.Result{
				Matrix:   []compliance.MatrixRow{},
				Courses:  []compliance.CourseRow{},
				Warnings: []compliance.Warning{},
				Org:      compliance.OrgSummary{CompletionRate: 80, ComplianceStatus: compliance.StatusReady},
			},
		}}
		rec := httptest.NewRecorder()
		newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/orgs/"+org.String()+"/compliance", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, fixedNow, svc.gotNow)
		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, org.String(), body["org_id"])
		orgSummary := body["org"].(map[string]any)
		assert.Equal(t, "ready", orgSummary["compliance_status"])
		assert.Contains(t, body, "warnings")
	})

	t.Run("store unavailable maps to 503", func(t *testing.T) {
		svc := &stubService{err: dErrors.New(dErrors.CodeStoreUnavailable, "obligation store unavailable")}
		rec := httptest.NewRecorder()
		newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/orgs/"+org.String()+"/compliance", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("bad org id is 400", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newRouter(&stubService{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/orgs/nope/compliance", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleUserObligations(t *testing.T) {
	org, user := uuid.New(), uuid.New()
	due := fixedNow.AddDate(0, 0, -3)
	svc := &stubService{classified: []compliance.Classified{{
		Obligation: models.Obligation{
			ID:               id.NewObligationID(),
			ScopeUserID:      id.UserID(user),
			CourseVersionRef: "fire@1",
			DueAt:            &due,
			Mandatory:        true,
		},
		State:       models.StateOverdue,
		DaysOverdue: 3,
	}}}

	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/orgs/"+org.String()+"/users/"+user.String()+"/obligations", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body UserObligationsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Obligations, 1)
	assert.Equal(t, "overdue", body.Obligations[0].State)
	assert.Equal(t, 3, body.Obligations[0].DaysOverdue)
	assert.Equal(t, id.UserID(user), body.UserID)
}
