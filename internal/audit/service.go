// Package audit serves an org's audit trail.
package audit

import (
	"context"

	id "mandate/pkg/domain"
	dErrors "mandate/pkg/domain-errors"
	"mandate/pkg/platform/audit"
)

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

type Service struct {
	store audit.Store
}

func NewService(store audit.Store) *Service {
	return &Service{store: store}
}

// List returns up to limit events for orgID, newest first. A zero limit uses
// DefaultLimit.
func (s *Service) List(ctx context.Context, orgID id.OrgID, limit int) ([]audit.Event, error) {
	if orgID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "org id required")
	}
	switch {
	case limit == 0:
		limit = DefaultLimit
	case limit < 0 || limit > MaxLimit:
		return nil, dErrors.New(dErrors.CodeInvalidInput, "limit must be between 1 and 1000")
	}
	events, err := s.store.ListByOrg(ctx, orgID, limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "audit trail unavailable")
	}
	return events, nil
}
