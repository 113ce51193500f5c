package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"mandate/internal/obligation/models"
	id "mandate/pkg/domain"
	"mandate/pkg/platform/sentinel"
)

// InMemoryStore is a process-local obligation store and completion ledger.
// Safe for concurrent use; StampReminder is a true compare-and-swap under the lock.
type InMemoryStore struct {
	mu          sync.RWMutex
	obligations map[id.ObligationID]models.Obligation
	completions map[id.OrgID][]models.CompletionRecord
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		obligations: make(map[id.ObligationID]models.Obligation),
		completions: make(map[id.OrgID][]models.CompletionRecord),
	}
}

// CreateObligation inserts or replaces an obligation.
func (s *InMemoryStore) CreateObligation(_ context.Context, o models.Obligation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.obligations[o.ID] = cloneObligation(o)
	return nil
}

func (s *InMemoryStore) DeleteObligation(_ context.Context, obligationID id.ObligationID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.obligations[obligationID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.obligations, obligationID)
	return nil
}

func (s *InMemoryStore) GetObligation(_ context.Context, obligationID id.ObligationID) (models.Obligation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.obligations[obligationID]
	if !ok {
		return models.Obligation{}, sentinel.ErrNotFound
	}
	return cloneObligation(o), nil
}

// AppendCompletion records completion evidence for an org. Records are never
// mutated or removed.
func (s *InMemoryStore) AppendCompletion(_ context.Context, orgID id.OrgID, rec models.CompletionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.completions[orgID] = append(s.completions[orgID], cloneCompletion(rec))
	return nil
}

func (s *InMemoryStore) ListObligations(_ context.Context, orgID id.OrgID) ([]models.Obligation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Obligation, 0)
	for _, o := range s.obligations {
		if o.OrgID == orgID {
			out = append(out, cloneObligation(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *InMemoryStore) ListCompletions(_ context.Context, orgID id.OrgID) ([]models.CompletionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	src := s.completions[orgID]
	out := make([]models.CompletionRecord, len(src))
	for i, rec := range src {
		out[i] = cloneCompletion(rec)
	}
	return out, nil
}

func (s *InMemoryStore) ListOrgIDs(_ context.Context) ([]id.OrgID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[id.OrgID]struct{})
	out := make([]id.OrgID, 0)
	for _, o := range s.obligations {
		if _, ok := seen[o.OrgID]; ok {
			continue
		}
		seen[o.OrgID] = struct{}{}
		out = append(out, o.OrgID)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out, nil
}

// StampReminder sets ReminderSentAt to now only if it still equals prev.
// Returns false without error when the value changed underneath the caller.
func (s *InMemoryStore) StampReminder(_ context.Context, obligationID id.ObligationID, prev *time.Time, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.obligations[obligationID]
	if !ok {
		return false, nil
	}
	if !sameInstant(o.ReminderSentAt, prev) {
		return false, nil
	}
	stamped := now
	o.ReminderSentAt = &stamped
	s.obligations[obligationID] = o
	return true, nil
}

func sameInstant(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func cloneObligation(o models.Obligation) models.Obligation {
	if o.DueAt != nil {
		due := *o.DueAt
		o.DueAt = &due
	}
	if o.ReminderSentAt != nil {
		sent := *o.ReminderSentAt
		o.ReminderSentAt = &sent
	}
	return o
}

func cloneCompletion(c models.CompletionRecord) models.CompletionRecord {
	if c.Score != nil {
		score := *c.Score
		c.Score = &score
	}
	return c
}
