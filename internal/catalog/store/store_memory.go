package store

import (
	"context"
	"sort"
	"sync"

	"mandate/internal/catalog/models"
	id "mandate/pkg/domain"
)

type orgRef struct {
	org id.OrgID
	ref id.CourseVersionRef
}

// InMemoryStore is a catalog for tests and local runs.
type InMemoryStore struct {
	mu      sync.RWMutex
	courses map[orgRef]models.CourseInfo
	history map[id.OrgID][]models.VersionHistoryEntry
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		courses: make(map[orgRef]models.CourseInfo),
		history: make(map[id.OrgID][]models.VersionHistoryEntry),
	}
}

// PutCourse publishes a course version for orgID and records it in the
// org's version history.
func (s *InMemoryStore) PutCourse(orgID id.OrgID, c models.CourseInfo, changeNote string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.courses[orgRef{orgID, c.Ref}] = c
	s.history[orgID] = append(s.history[orgID], models.VersionHistoryEntry{
		CourseID:    c.CourseID,
		Ref:         c.Ref,
		Version:     c.Version,
		Title:       c.Title,
		PublishedAt: c.PublishedAt,
		ChangeNote:  changeNote,
	})
}

// RemoveCourse deletes a course version; obligations pointing at it become
// orphaned. History is kept.
func (s *InMemoryStore) RemoveCourse(orgID id.OrgID, ref id.CourseVersionRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.courses, orgRef{orgID, ref})
}

func (s *InMemoryStore) Resolve(_ context.Context, orgID id.OrgID, refs []id.CourseVersionRef) (models.Resolutions, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(models.Resolutions, len(refs))
	for _, ref := range refs {
		if c, ok := s.courses[orgRef{orgID, ref}]; ok {
			out[ref] = models.Resolved(c)
			continue
		}
		out[ref] = models.Orphaned(ref)
	}
	return out, nil
}

func (s *InMemoryStore) VersionHistory(_ context.Context, orgID id.OrgID) ([]models.VersionHistoryEntry, error) {
	s.mu.RLock()
	entries := append([]models.VersionHistoryEntry(nil), s.history[orgID]...)
	s.mu.RUnlock()
	sortHistory(entries)
	return entries, nil
}

// sortHistory orders entries by course then version, newest version first.
func sortHistory(entries []models.VersionHistoryEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].CourseID != entries[j].CourseID {
			return entries[i].CourseID < entries[j].CourseID
		}
		return entries[i].Version > entries[j].Version
	})
}
