package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	id "mandate/pkg/domain"
)

// Category classifies audit events by retention needs.
type Category string

const (
	// CategoryCompliance events back regulator-facing evidence and are
	// written fail-closed.
	CategoryCompliance Category = "compliance"
	// CategoryOperations events record routine activity and are best effort.
	CategoryOperations Category = "operations"
)

// Action names what happened.
type Action string

const (
	ActionEvidencePackExported  Action = "evidence_pack_exported"
	ActionReminderSent          Action = "reminder_sent"
	ActionReminderPassCompleted Action = "reminder_pass_completed"
)

var actionCategories = map[Action]Category{
	ActionEvidencePackExported:  CategoryCompliance,
	ActionReminderSent:          CategoryOperations,
	ActionReminderPassCompleted: CategoryOperations,
}

// Category returns the category for a, defaulting to operations.
func (a Action) Category() Category {
	if c, ok := actionCategories[a]; ok {
		return c
	}
	return CategoryOperations
}

// Event is one entry in an org's audit trail.
type Event struct {
	ID        uuid.UUID `json:"id"`
	Category  Category  `json:"category"`
	Timestamp time.Time `json:"timestamp"`
	OrgID     id.OrgID  `json:"org_id"`
	// UserID is the affected member, when there is one.
	UserID    id.UserID `json:"user_id,omitzero"`
	Action    Action    `json:"action"`
	Subject   string    `json:"subject"`
	Detail    string    `json:"detail,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	// ActorID is the token subject that triggered the action, empty for
	// scheduled work.
	ActorID string `json:"actor_id,omitempty"`
}

// Store persists audit events. Append is the only write; events are never
// updated or deleted.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByOrg(ctx context.Context, orgID id.OrgID, limit int) ([]Event, error)
}
