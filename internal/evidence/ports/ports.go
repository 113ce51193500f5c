// Package ports declares the sources an evidence pack is assembled from.
package ports

import (
	"context"

	ackmodels "mandate/internal/acknowledgement/models"
	catalogmodels "mandate/internal/catalog/models"
	"mandate/internal/obligation/models"
	id "mandate/pkg/domain"
	"mandate/pkg/platform/audit"
)

// ObligationReader is the primary store. A failure here fails the pack.
type ObligationReader interface {
	ListObligations(ctx context.Context, orgID id.OrgID) ([]models.Obligation, error)
	ListCompletions(ctx context.Context, orgID id.OrgID) ([]models.CompletionRecord, error)
}

type CourseCatalog interface {
	Resolve(ctx context.Context, orgID id.OrgID, refs []id.CourseVersionRef) (catalogmodels.Resolutions, error)
	VersionHistory(ctx context.Context, orgID id.OrgID) ([]catalogmodels.VersionHistoryEntry, error)
}

type AcknowledgementSource interface {
	ListAcknowledgements(ctx context.Context, orgID id.OrgID) ([]ackmodels.Acknowledgement, error)
}

// Auditor records pack exports in the org's audit trail. A failed write
// fails the export.
type Auditor interface {
	Emit(ctx context.Context, event audit.Event) error
}
