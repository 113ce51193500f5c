// Package ports declares what the compliance service needs from its
// collaborators.
package ports

import (
	"context"

	catalogmodels "mandate/internal/catalog/models"
	"mandate/internal/obligation/models"
	id "mandate/pkg/domain"
)

// ObligationReader reads the primary store. Any error here is fatal to the
// operation.
type ObligationReader interface {
	ListObligations(ctx context.Context, orgID id.OrgID) ([]models.Obligation, error)
	ListCompletions(ctx context.Context, orgID id.OrgID) ([]models.CompletionRecord, error)
}

// CourseResolver looks up course display data. Failures degrade to a
// warning.
type CourseResolver interface {
	Resolve(ctx context.Context, orgID id.OrgID, refs []id.CourseVersionRef) (catalogmodels.Resolutions, error)
}
