package reminder

import (
	"time"

	id "mandate/pkg/domain"
)

// DefaultDebounceWindow is the minimum gap between two reminders for the
// same obligation.
const DefaultDebounceWindow = 72 * time.Hour

// Stage names the step at which a per-obligation failure happened.
type Stage string

const (
	StageRecipient Stage = "recipient"
	StageCourse    Stage = "course"
	StageThrottle  Stage = "throttle"
	StageNotify    Stage = "notify"
	StageStamp     Stage = "stamp"
)

// PassError records one obligation the pass could not finish. It will be
// picked up again by the next pass.
type PassError struct {
	ObligationID id.ObligationID `json:"obligation_id"`
	UserID       id.UserID       `json:"user_id"`
	Stage        Stage           `json:"stage"`
	Message      string          `json:"message"`
}

// Summary reports the outcome of one org pass.
type Summary struct {
	OrgID          id.OrgID  `json:"org_id"`
	RanAt          time.Time `json:"ran_at"`
	DebounceWindow string    `json:"debounce_window"`
	// TotalOverdue counts every overdue obligation, mandatory or not. It
	// matches the compliance report's overdue count for the same snapshot.
	TotalOverdue  int `json:"total_overdue"`
	Selected      int `json:"selected"`
	RemindersSent int `json:"reminders_sent"`
	Debounced     int `json:"debounced"`
	// Skipped counts obligations past their due date whose course reference
	// no longer resolves. They classify as Pending and are not reminded.
	Skipped     int         `json:"skipped"`
	StaleStamps int         `json:"stale_stamps"`
	Errors      []PassError `json:"errors"`
}

// OrgFailure is a pass that could not run at all.
type OrgFailure struct {
	OrgID id.OrgID `json:"org_id"`
	Error string   `json:"error"`
}

// BatchSummary reports a pass over every org.
type BatchSummary struct {
	Passes   []Summary    `json:"passes"`
	Failures []OrgFailure `json:"failures"`
}
