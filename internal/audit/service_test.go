package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	id "mandate/pkg/domain"
	dErrors "mandate/pkg/domain-errors"
	"mandate/pkg/platform/audit"
	"mandate/pkg/platform/audit/store/memory"
)

type brokenStore struct{}

func (brokenStore) Append(context.Context, audit.Event) error { return errors.New("down") }
func (brokenStore) ListByOrg(context.Context, id.OrgID, int) ([]audit.Event, error) {
	return nil, errors.New("down")
}

type ServiceSuite struct {
	suite.Suite
	store   *memory.InMemoryStore
	service *Service
	org     id.OrgID
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.store = memory.NewInMemoryStore()
	s.service = NewService(s.store)
	s.org = id.OrgID(uuid.New())
	base := time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		s.Require().NoError(s.store.Append(context.Background(), audit.Event{
			ID:        uuid.New(),
			OrgID:     s.org,
			Action:    audit.ActionReminderSent,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}))
	}
}

func (s *ServiceSuite) TestList() {
	s.Run("zero limit uses the default", func() {
		events, err := s.service.List(context.Background(), s.org, 0)
		s.Require().NoError(err)
		s.Len(events, 3)
	})

	s.Run("limit caps the result", func() {
		events, err := s.service.List(context.Background(), s.org, 2)
		s.Require().NoError(err)
		s.Len(events, 2)
	})

	s.Run("out of range limits are rejected", func() {
		_, err := s.service.List(context.Background(), s.org, MaxLimit+1)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("store failures are unavailable", func() {
		_, err := NewService(brokenStore{}).List(context.Background(), s.org, 10)
		s.True(dErrors.HasCode(err, dErrors.CodeStoreUnavailable))
	})
}
