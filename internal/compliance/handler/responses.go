package handler

import (
	"time"

	"mandate/internal/compliance"
	id "mandate/pkg/domain"
)

type UserObligationsResponse struct {
	UserID      id.UserID            `json:"user_id"`
	EvaluatedAt time.Time            `json:"evaluated_at"`
	Obligations []ObligationResponse `json:"obligations"`
}

type ObligationResponse struct {
	ObligationID     id.ObligationID     `json:"obligation_id"`
	CourseVersionRef id.CourseVersionRef `json:"course_version_ref"`
	CourseTitle      string              `json:"course_title,omitempty"`
	State            string              `json:"state"`
	Mandatory        bool                `json:"mandatory"`
	DueAt            *time.Time          `json:"due_at,omitempty"`
	DaysOverdue      int                 `json:"days_overdue"`
	CompletedAt      *time.Time          `json:"completed_at,omitempty"`
	Orphaned         bool                `json:"orphaned"`
}

func FromClassified(userID id.UserID, now time.Time, classified []compliance.Classified) *UserObligationsResponse {
	resp := &UserObligationsResponse{
		UserID:      userID,
		EvaluatedAt: now,
		Obligations: make([]ObligationResponse, 0, len(classified)),
	}
	for _, c := range classified {
		o := ObligationResponse{
			ObligationID:     c.Obligation.ID,
			CourseVersionRef: c.Obligation.CourseVersionRef,
			State:            string(c.State),
			Mandatory:        c.Obligation.Mandatory,
			DueAt:            c.Obligation.DueAt,
			DaysOverdue:      c.DaysOverdue,
			CompletedAt:      c.CompletedAt,
			Orphaned:         c.Orphaned,
		}
		if c.Course != nil {
			o.CourseTitle = c.Course.Title
		}
		resp.Obligations = append(resp.Obligations, o)
	}
	return resp
}
