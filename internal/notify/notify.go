// Package notify delivers reminder messages to the outbound messaging
// collaborator. The engine hands over structured data only; rendering is the
// consumer's job.
package notify

import (
	"context"
	"time"

	id "mandate/pkg/domain"
)

// TemplateOverdueReminder names the template consumers render for overdue
// training reminders.
const TemplateOverdueReminder = "training.overdue_reminder"

// Message is the wire payload for one reminder.
type Message struct {
	Template     string          `json:"template"`
	OrgID        id.OrgID        `json:"org_id"`
	UserID       id.UserID       `json:"user_id"`
	ObligationID id.ObligationID `json:"obligation_id"`
	Data         ReminderData    `json:"data"`
	SentAt       time.Time       `json:"sent_at"`
}

// ReminderData is what a template needs to render an overdue reminder.
type ReminderData struct {
	UserName    string `json:"user_name"`
	CourseName  string `json:"course_name"`
	DaysOverdue int    `json:"days_overdue"`
	DeepLink    string `json:"deep_link"`
}

// IdempotencyKey identifies one send attempt for consumer-side dedup. A
// resend in a later pass gets a new key.
func (m Message) IdempotencyKey() string {
	return m.ObligationID.String() + ":" + m.SentAt.UTC().Format(time.RFC3339)
}

// Notifier sends a message. An error means the message was not accepted and
// the caller may retry later.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}
