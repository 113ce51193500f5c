package store

import (
	"context"
	"sort"
	"sync"

	"mandate/internal/acknowledgement/models"
	id "mandate/pkg/domain"
)

type InMemoryStore struct {
	mu   sync.RWMutex
	acks map[id.OrgID][]models.Acknowledgement
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{acks: make(map[id.OrgID][]models.Acknowledgement)}
}

func (s *InMemoryStore) Record(_ context.Context, orgID id.OrgID, a models.Acknowledgement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.acks[orgID] = append(s.acks[orgID], a)
	return nil
}

// ListAcknowledgements returns the org's acknowledgements, newest first.
func (s *InMemoryStore) ListAcknowledgements(_ context.Context, orgID id.OrgID) ([]models.Acknowledgement, error) {
	s.mu.RLock()
	out := append([]models.Acknowledgement(nil), s.acks[orgID]...)
	s.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AcknowledgedAt.After(out[j].AcknowledgedAt)
	})
	if out == nil {
		out = []models.Acknowledgement{}
	}
	return out, nil
}
