package models

import (
	"time"

	"github.com/google/uuid"

	id "mandate/pkg/domain"
)

// Acknowledgement records that a user accepted a policy version. Owned by the
// policy collaborator and passed through into evidence packs untouched.
type Acknowledgement struct {
	ID             uuid.UUID `json:"id"`
	UserID         id.UserID `json:"user_id"`
	PolicyID       string    `json:"policy_id"`
	PolicyVersion  string    `json:"policy_version"`
	AcknowledgedAt time.Time `json:"acknowledged_at"`
}
