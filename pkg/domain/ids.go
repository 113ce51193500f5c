// Package domain holds the typed identifiers shared across modules.
//
// UUID-backed ids are distinct types so an OrgID can never be passed where a
// UserID is expected. Parsing happens once at trust boundaries (HTTP, CLI);
// everything behind that boundary works with the typed values.
package domain

import (
	"strings"
	"unicode"

	"github.com/google/uuid"

	dErrors "mandate/pkg/domain-errors"
)

type (
	OrgID        uuid.UUID
	UserID       uuid.UUID
	ObligationID uuid.UUID
)

// CourseVersionRef is an opaque reference to an immutable course version owned
// by the course collaborator. The engine never inspects its content.
type CourseVersionRef string

const maxCourseVersionRefLen = 256

func parseUUID(kind, raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" is required")
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid "+kind)
	}
	if parsed == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" must not be nil")
	}
	return parsed, nil
}

func ParseOrgID(raw string) (OrgID, error) {
	u, err := parseUUID("org_id", raw)
	return OrgID(u), err
}

func ParseUserID(raw string) (UserID, error) {
	u, err := parseUUID("user_id", raw)
	return UserID(u), err
}

func ParseObligationID(raw string) (ObligationID, error) {
	u, err := parseUUID("obligation_id", raw)
	return ObligationID(u), err
}

// ParseCourseVersionRef trims and validates a course version reference.
func ParseCourseVersionRef(raw string) (CourseVersionRef, error) {
	ref := CourseVersionRef(strings.TrimSpace(raw))
	if !ref.Valid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid course_version_ref")
	}
	return ref, nil
}

func NewObligationID() ObligationID { return ObligationID(uuid.New()) }

func (id OrgID) String() string        { return uuid.UUID(id).String() }
func (id UserID) String() string       { return uuid.UUID(id).String() }
func (id ObligationID) String() string { return uuid.UUID(id).String() }
func (r CourseVersionRef) String() string {
	return string(r)
}

func (id OrgID) IsNil() bool        { return uuid.UUID(id) == uuid.Nil }
func (id UserID) IsNil() bool       { return uuid.UUID(id) == uuid.Nil }
func (id ObligationID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// Valid reports whether the reference is usable as a lookup key: non-empty,
// bounded, free of surrounding whitespace and control characters.
func (r CourseVersionRef) Valid() bool {
	s := string(r)
	if s == "" || len(s) > maxCourseVersionRefLen || strings.TrimSpace(s) != s {
		return false
	}
	for _, c := range s {
		if unicode.IsControl(c) || c == unicode.ReplacementChar {
			return false
		}
	}
	return true
}

func (id OrgID) MarshalText() ([]byte, error)        { return uuid.UUID(id).MarshalText() }
func (id UserID) MarshalText() ([]byte, error)       { return uuid.UUID(id).MarshalText() }
func (id ObligationID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *OrgID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

func (id *UserID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

func (id *ObligationID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}
