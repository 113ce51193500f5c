package compliance

import (
	"time"

	catalogmodels "mandate/internal/catalog/models"
	"mandate/internal/obligation/models"
)

// Classify derives an obligation's lifecycle state. Rules, in order:
//  1. a passing completion exists: Completed, whatever the due date
//  2. the course reference is malformed: Pending, the due date is ignored
//  3. the due date has passed: Overdue
//  4. otherwise Pending
//
// The state is never stored; callers classify fresh against their own now.
func Classify(o models.Obligation, hasCompletion bool, now time.Time) models.State {
	if hasCompletion {
		return models.StateCompleted
	}
	if !o.CourseVersionRef.Valid() {
		return models.StatePending
	}
	if o.DueAt != nil && o.DueAt.Before(now) {
		return models.StateOverdue
	}
	return models.StatePending
}

// Classified is one obligation with its derived state.
type Classified struct {
	Obligation  models.Obligation         `json:"obligation"`
	State       models.State              `json:"state"`
	DaysOverdue int                       `json:"days_overdue"`
	CompletedAt *time.Time                `json:"completed_at,omitempty"`
	Orphaned    bool                      `json:"orphaned"`
	Course      *catalogmodels.CourseInfo `json:"course,omitempty"`
}

// classifyOne applies Classify with catalog context. An orphaned reference
// (malformed, or unknown to the catalog) classifies as Pending unless the
// user already completed it.
func classifyOne(o models.Obligation, idx models.CompletionIndex, courses catalogmodels.Resolutions, now time.Time) Classified {
	completedAt, has := idx.CompletedAt(o.CompletionKey())
	c := Classified{Obligation: o}

	orphaned := !o.CourseVersionRef.Valid()
	if !orphaned && courses != nil {
		res := courses.Lookup(o.CourseVersionRef)
		if course, ok := res.Course(); ok {
			c.Course = &course
		} else {
			orphaned = true
		}
	}
	c.Orphaned = orphaned

	switch {
	case has:
		c.State = models.StateCompleted
		t := completedAt
		c.CompletedAt = &t
	case orphaned:
		c.State = models.StatePending
	default:
		c.State = Classify(o, false, now)
	}
	if c.State == models.StateOverdue {
		c.DaysOverdue = o.DaysOverdue(now)
	}
	return c
}

// ClassifyAll deduplicates and classifies a snapshot. A nil courses map
// means no catalog information: only malformed references are orphaned.
func ClassifyAll(obligations []models.Obligation, idx models.CompletionIndex, courses catalogmodels.Resolutions, now time.Time) []Classified {
	kept, _ := Dedupe(obligations)
	out := make([]Classified, len(kept))
	for i, o := range kept {
		out[i] = classifyOne(o, idx, courses, now)
	}
	return out
}
