package evidence

import (
	"time"

	"github.com/google/uuid"

	ackmodels "mandate/internal/acknowledgement/models"
	catalogmodels "mandate/internal/catalog/models"
	"mandate/internal/compliance"
	id "mandate/pkg/domain"
)

// Section names, also used as metric labels.
const (
	SectionTrainingMatrix         = "training_matrix"
	SectionCompletionLogs         = "completion_logs"
	SectionCourseVersionHistory   = "course_version_history"
	SectionPolicyAcknowledgements = "policy_acknowledgements"
	SectionOverdue                = "overdue"
)

// Pack is an immutable point-in-time export of an org's compliance data.
// ContentHash seals Sections; see Seal and Verify.
type Pack struct {
	ID          uuid.UUID `json:"id"`
	OrgID       id.OrgID  `json:"org_id"`
	GeneratedAt time.Time `json:"generated_at"`
	ContentHash string    `json:"content_hash"`
	Sections    Sections  `json:"sections"`
}

type Sections struct {
	TrainingMatrix         TrainingMatrixSection  `json:"training_matrix"`
	CompletionLogs         CompletionLogSection   `json:"completion_logs"`
	CourseVersionHistory   CourseHistorySection   `json:"course_version_history"`
	PolicyAcknowledgements AcknowledgementSection `json:"policy_acknowledgements"`
	Overdue                OverdueSection         `json:"overdue"`
}

// SectionStatus flags a section whose source could not be read. The
// section's data is empty when Error is set.
type SectionStatus struct {
	Error        bool   `json:"error"`
	ErrorMessage string `json:"error_message,omitempty"`
}

func failed(message string) SectionStatus {
	return SectionStatus{Error: true, ErrorMessage: message}
}

type TrainingMatrixSection struct {
	SectionStatus
	Thresholds compliance.Thresholds  `json:"thresholds"`
	Matrix     []compliance.MatrixRow `json:"matrix"`
	Courses    []compliance.CourseRow `json:"courses"`
	Org        compliance.OrgSummary  `json:"org"`
	Warnings   []compliance.Warning   `json:"warnings"`
}

type CompletionLogEntry struct {
	UserID           id.UserID           `json:"user_id"`
	CourseVersionRef id.CourseVersionRef `json:"course_version_ref"`
	CompletedAt      time.Time           `json:"completed_at"`
	Score            *int                `json:"score,omitempty"`
	Passed           bool                `json:"passed"`
}

// CompletionLogSection lists every ledger record, newest first. Failed
// attempts are included.
type CompletionLogSection struct {
	SectionStatus
	Entries []CompletionLogEntry `json:"entries"`
}

type CourseHistorySection struct {
	SectionStatus
	Versions []catalogmodels.VersionHistoryEntry `json:"versions"`
}

type AcknowledgementSection struct {
	SectionStatus
	Records []ackmodels.Acknowledgement `json:"records"`
}

type OverdueEntry struct {
	ObligationID     id.ObligationID     `json:"obligation_id"`
	UserID           id.UserID           `json:"user_id"`
	CourseVersionRef id.CourseVersionRef `json:"course_version_ref"`
	CourseTitle      string              `json:"course_title,omitempty"`
	Mandatory        bool                `json:"mandatory"`
	DueAt            time.Time           `json:"due_at"`
	DaysOverdue      int                 `json:"days_overdue"`
	ReminderSentAt   *time.Time          `json:"reminder_sent_at,omitempty"`
}

// OverdueSection lists overdue obligations, most overdue first.
type OverdueSection struct {
	SectionStatus
	Entries []OverdueEntry `json:"entries"`
}
