package handler

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "mandate/pkg/domain"
	dErrors "mandate/pkg/domain-errors"
	"mandate/pkg/platform/audit"
	"mandate/pkg/testutil"
)

type stubService struct {
	gotLimit int
	err      error
}

func (s *stubService) List(_ context.Context, orgID id.OrgID, limit int) ([]audit.Event, error) {
	s.gotLimit = limit
	if s.err != nil {
		return nil, s.err
	}
	return []audit.Event{{ID: uuid.New(), OrgID: orgID, Action: audit.ActionEvidencePackExported}}, nil
}

func newRouter(svc Service) http.Handler {
	r := chi.NewRouter()
	r.Route("/v1/orgs/{orgID}", New(svc, zerolog.New(io.Discard)).Register)
	return r
}

func TestHandleList(t *testing.T) {
	org := uuid.NewString()

	t.Run("returns events", func(t *testing.T) {
		svc := &stubService{}
		rec := testutil.DoRequest(newRouter(svc), testutil.NewJSONRequest(t, http.MethodGet, "/v1/orgs/"+org+"/audit-events?limit=25", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 25, svc.gotLimit)

		body := testutil.UnmarshalResponse[listResponse](t, rec)
		require.Len(t, body.Events, 1)
		assert.Equal(t, audit.ActionEvidencePackExported, body.Events[0].Action)
	})

	t.Run("non-numeric limit is a bad request", func(t *testing.T) {
		rec := testutil.DoRequest(newRouter(&stubService{}), testutil.NewJSONRequest(t, http.MethodGet, "/v1/orgs/"+org+"/audit-events?limit=lots", nil))
		testutil.AssertStatusAndError(t, rec, http.StatusBadRequest, "invalid_input")
	})

	t.Run("invalid org id is rejected", func(t *testing.T) {
		rec := testutil.DoRequest(newRouter(&stubService{}), testutil.NewJSONRequest(t, http.MethodGet, "/v1/orgs/not-a-uuid/audit-events", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("store unavailable maps to 503", func(t *testing.T) {
		svc := &stubService{err: dErrors.New(dErrors.CodeStoreUnavailable, "down")}
		rec := testutil.DoRequest(newRouter(svc), testutil.NewJSONRequest(t, http.MethodGet, "/v1/orgs/"+org+"/audit-events", nil))
		testutil.AssertStatusAndError(t, rec, http.StatusServiceUnavailable, "store_unavailable")
	})
}
