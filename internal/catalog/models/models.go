// Package models holds the course catalog view the engine consumes: display
// data for course versions and their publication history.
package models

import (
	"time"

	id "mandate/pkg/domain"
)

// CourseInfo is the display data for one immutable course version.
type CourseInfo struct {
	Ref         id.CourseVersionRef `json:"course_version_ref"`
	CourseID    string              `json:"course_id"`
	Title       string              `json:"title"`
	Category    string              `json:"category"`
	Version     int                 `json:"version"`
	PublishedAt time.Time           `json:"published_at"`
}

type resolutionKind uint8

const (
	kindOrphaned resolutionKind = iota
	kindResolved
)

// Resolution is the outcome of looking up a course version reference: either
// Resolved with its course data or Orphaned when the collaborator no longer
// knows the reference. The zero value is Orphaned with an empty ref.
type Resolution struct {
	kind   resolutionKind
	ref    id.CourseVersionRef
	course CourseInfo
}

func Resolved(c CourseInfo) Resolution {
	return Resolution{kind: kindResolved, ref: c.Ref, course: c}
}

func Orphaned(ref id.CourseVersionRef) Resolution {
	return Resolution{kind: kindOrphaned, ref: ref}
}

func (r Resolution) Ref() id.CourseVersionRef { return r.ref }

func (r Resolution) IsOrphaned() bool { return r.kind != kindResolved }

// Course returns the resolved course; ok is false for orphans.
func (r Resolution) Course() (CourseInfo, bool) {
	if r.kind != kindResolved {
		return CourseInfo{}, false
	}
	return r.course, true
}

// Resolutions maps every requested ref to its resolution.
type Resolutions map[id.CourseVersionRef]Resolution

// Lookup returns the resolution for ref, treating unknown refs as orphans.
func (rs Resolutions) Lookup(ref id.CourseVersionRef) Resolution {
	if r, ok := rs[ref]; ok {
		return r
	}
	return Orphaned(ref)
}

// VersionHistoryEntry is one published version of a course, passed through
// verbatim into evidence packs.
type VersionHistoryEntry struct {
	CourseID    string              `json:"course_id"`
	Ref         id.CourseVersionRef `json:"course_version_ref"`
	Version     int                 `json:"version"`
	Title       string              `json:"title"`
	PublishedAt time.Time           `json:"published_at"`
	ChangeNote  string              `json:"change_note,omitempty"`
}
