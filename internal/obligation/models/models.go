// Package models defines obligations, completion evidence, and the derived
// lifecycle state.
package models

import (
	"time"

	id "mandate/pkg/domain"
)

// Obligation is a training duty assigned to one user for one course version.
// Group and role scopes are fanned out upstream; every record here names a
// single user.
type Obligation struct {
	ID               id.ObligationID     `json:"id"`
	OrgID            id.OrgID            `json:"org_id"`
	ScopeUserID      id.UserID           `json:"scope_user_id"`
	CourseVersionRef id.CourseVersionRef `json:"course_version_ref"`
	DueAt            *time.Time          `json:"due_at,omitempty"`
	Mandatory        bool                `json:"mandatory"`
	CreatedAt        time.Time           `json:"created_at"`
	// ReminderSentAt is written only by the reminder scheduler.
	ReminderSentAt *time.Time `json:"reminder_sent_at,omitempty"`
}

// Key is the uniqueness key of an active obligation.
func (o Obligation) Key() ObligationKey {
	return ObligationKey{OrgID: o.OrgID, UserID: o.ScopeUserID, Ref: o.CourseVersionRef}
}

// CompletionKey returns the ledger key that satisfies this obligation.
func (o Obligation) CompletionKey() CompletionKey {
	return CompletionKey{UserID: o.ScopeUserID, Ref: o.CourseVersionRef}
}

// DaysOverdue returns whole days elapsed since the due date, floored.
// Returns 0 when there is no due date or it has not passed.
func (o Obligation) DaysOverdue(now time.Time) int {
	if o.DueAt == nil || !o.DueAt.Before(now) {
		return 0
	}
	return int(now.Sub(*o.DueAt) / (24 * time.Hour))
}

type ObligationKey struct {
	OrgID  id.OrgID
	UserID id.UserID
	Ref    id.CourseVersionRef
}

// CompletionRecord is append-only evidence that a user finished a course
// version's assessment. Written only by the course/quiz collaborator.
type CompletionRecord struct {
	UserID           id.UserID           `json:"user_id"`
	CourseVersionRef id.CourseVersionRef `json:"course_version_ref"`
	CompletedAt      time.Time           `json:"completed_at"`
	// Score is 0-100 when the assessment is graded.
	Score  *int `json:"score,omitempty"`
	Passed bool `json:"passed"`
}

func (c CompletionRecord) Key() CompletionKey {
	return CompletionKey{UserID: c.UserID, Ref: c.CourseVersionRef}
}

type CompletionKey struct {
	UserID id.UserID
	Ref    id.CourseVersionRef
}

// CompletionIndex answers "has this user passed this course version" in O(1).
// Only the existence of a passing record matters, so repeated attempts and
// duplicate passes collapse to one entry.
type CompletionIndex map[CompletionKey]time.Time

// NewCompletionIndex builds the index from raw ledger records, keeping the
// earliest passing completion per key.
func NewCompletionIndex(records []CompletionRecord) CompletionIndex {
	idx := make(CompletionIndex, len(records))
	for _, r := range records {
		if !r.Passed {
			continue
		}
		k := r.Key()
		if prev, ok := idx[k]; !ok || r.CompletedAt.Before(prev) {
			idx[k] = r.CompletedAt
		}
	}
	return idx
}

func (idx CompletionIndex) Has(k CompletionKey) bool {
	_, ok := idx[k]
	return ok
}

// CompletedAt returns the first passing completion time for k.
func (idx CompletionIndex) CompletedAt(k CompletionKey) (time.Time, bool) {
	t, ok := idx[k]
	return t, ok
}

// State is the derived lifecycle state of an obligation. Never persisted.
type State string

const (
	StatePending   State = "pending"
	StateCompleted State = "completed"
	StateOverdue   State = "overdue"
)

func (s State) IsValid() bool {
	switch s {
	case StatePending, StateCompleted, StateOverdue:
		return true
	}
	return false
}
