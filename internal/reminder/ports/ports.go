// Package ports declares the collaborators of the reminder scheduler.
package ports

import (
	"context"
	"time"

	catalogmodels "mandate/internal/catalog/models"
	directorymodels "mandate/internal/directory/models"
	"mandate/internal/notify"
	"mandate/internal/obligation/models"
	id "mandate/pkg/domain"
	"mandate/pkg/platform/audit"
)

// ObligationStore is the primary store. Read failures abort the pass.
type ObligationStore interface {
	ListObligations(ctx context.Context, orgID id.OrgID) ([]models.Obligation, error)
	ListCompletions(ctx context.Context, orgID id.OrgID) ([]models.CompletionRecord, error)
	ListOrgIDs(ctx context.Context) ([]id.OrgID, error)
	// StampReminder sets reminder_sent_at to now only if it still equals
	// prev. It returns false, nil when another writer got there first.
	StampReminder(ctx context.Context, obligationID id.ObligationID, prev *time.Time, now time.Time) (bool, error)
}

type RecipientDirectory interface {
	FindRecipient(ctx context.Context, orgID id.OrgID, userID id.UserID) (directorymodels.Recipient, error)
}

type CourseResolver interface {
	Resolve(ctx context.Context, orgID id.OrgID, refs []id.CourseVersionRef) (catalogmodels.Resolutions, error)
}

type Notifier interface {
	Send(ctx context.Context, msg notify.Message) error
}

// PassLock serializes passes for one org across replicas. Acquire returns
// ok=false when another holder owns the lock.
type PassLock interface {
	Acquire(ctx context.Context, orgID id.OrgID, ttl time.Duration) (token string, ok bool, err error)
	Release(ctx context.Context, orgID id.OrgID, token string) error
}

// Auditor appends to the org's audit trail. Reminder events are best effort:
// a failed write is logged and the pass continues.
type Auditor interface {
	Emit(ctx context.Context, event audit.Event) error
}
