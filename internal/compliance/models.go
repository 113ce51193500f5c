package compliance

import (
	"time"

	id "mandate/pkg/domain"
)

// MatrixRow is one user's line in the training matrix. Orphaned obligations
// count toward Assigned as Pending, or Completed when already passed;
// Orphaned reports how many of them there are.
type MatrixRow struct {
	UserID         id.UserID `json:"user_id"`
	Assigned       int       `json:"assigned"`
	Completed      int       `json:"completed"`
	Overdue        int       `json:"overdue"`
	Pending        int       `json:"pending"`
	Orphaned       int       `json:"orphaned"`
	CompletionRate int       `json:"completion_rate"`
}

// CourseRow is compliance for one course version. Orphaned references never
// get a row.
type CourseRow struct {
	CourseVersionRef id.CourseVersionRef `json:"course_version_ref"`
	CourseID         string              `json:"course_id,omitempty"`
	Title            string              `json:"title,omitempty"`
	Category         string              `json:"category,omitempty"`
	Assigned         int                 `json:"assigned"`
	Completed        int                 `json:"completed"`
	Overdue          int                 `json:"overdue"`
	Rate             int                 `json:"rate"`
}

type OrgSummary struct {
	Users            int    `json:"users"`
	Assigned         int    `json:"assigned"`
	Completed        int    `json:"completed"`
	Pending          int    `json:"pending"`
	OverdueCount     int    `json:"overdue_count"`
	Orphaned         int    `json:"orphaned"`
	CompletionRate   int    `json:"completion_rate"`
	ComplianceStatus Status `json:"compliance_status"`
}

type WarningKind string

const (
	WarningOrphanedReference  WarningKind = "orphaned_reference"
	WarningInvalidReference   WarningKind = "invalid_reference"
	WarningDuplicate          WarningKind = "duplicate_obligation"
	WarningCatalogUnavailable WarningKind = "catalog_unavailable"
)

// Warning flags a data-shape problem that was tolerated rather than failed.
type Warning struct {
	Kind             WarningKind `json:"kind"`
	ObligationID     string      `json:"obligation_id,omitempty"`
	UserID           string      `json:"user_id,omitempty"`
	CourseVersionRef string      `json:"course_version_ref,omitempty"`
	Message          string      `json:"message"`
}

// CatalogUnavailable is the warning attached when course lookups failed
// and the snapshot was aggregated without catalog data.
func CatalogUnavailable() Warning {
	return Warning{
		Kind:    WarningCatalogUnavailable,
		Message: "course catalog unavailable; orphaned references could not be detected and course titles are missing",
	}
}

// Result is the aggregation of one classified snapshot.
type Result struct {
	Matrix   []MatrixRow `json:"matrix"`
	Courses  []CourseRow `json:"courses"`
	Org      OrgSummary  `json:"org"`
	Warnings []Warning   `json:"warnings"`
}

// Report is a Result bound to the org, instant, and thresholds it was built
// with.
type Report struct {
	OrgID       id.OrgID   `json:"org_id"`
	GeneratedAt time.Time  `json:"generated_at"`
	Thresholds  Thresholds `json:"thresholds"`
	Result
}
