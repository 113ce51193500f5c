package store

import (
	"context"
	"sync"

	"mandate/internal/directory/models"
	id "mandate/pkg/domain"
	"mandate/pkg/platform/sentinel"
)

type InMemoryStore struct {
	mu    sync.RWMutex
	users map[id.OrgID]map[id.UserID]models.Recipient
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{users: make(map[id.OrgID]map[id.UserID]models.Recipient)}
}

func (s *InMemoryStore) PutUser(orgID id.OrgID, r models.Recipient) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.users[orgID] == nil {
		s.users[orgID] = make(map[id.UserID]models.Recipient)
	}
	s.users[orgID][r.UserID] = r
}

func (s *InMemoryStore) FindRecipient(_ context.Context, orgID id.OrgID, userID id.UserID) (models.Recipient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.users[orgID][userID]
	if !ok {
		return models.Recipient{}, sentinel.ErrNotFound
	}
	return r, nil
}
