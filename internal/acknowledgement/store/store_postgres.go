package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"mandate/internal/acknowledgement/models"
	id "mandate/pkg/domain"
	"mandate/pkg/platform/tx"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Record(ctx context.Context, orgID id.OrgID, a models.Acknowledgement) error {
	_, err := tx.Using(ctx, s.db).ExecContext(ctx, `
		INSERT INTO policy_acknowledgements (id, org_id, user_id, policy_id, policy_version, acknowledged_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, uuid.UUID(orgID), uuid.UUID(a.UserID), a.PolicyID, a.PolicyVersion, a.AcknowledgedAt,
	)
	if err != nil {
		return fmt.Errorf("insert acknowledgement: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListAcknowledgements(ctx context.Context, orgID id.OrgID) ([]models.Acknowledgement, error) {
	rows, err := tx.Using(ctx, s.db).QueryContext(ctx, `
		SELECT id, user_id, policy_id, policy_version, acknowledged_at
		FROM policy_acknowledgements
		WHERE org_id = $1
		ORDER BY acknowledged_at DESC, id`,
		uuid.UUID(orgID),
	)
	if err != nil {
		return nil, fmt.Errorf("list acknowledgements: %w", err)
	}
	defer rows.Close()

	out := make([]models.Acknowledgement, 0)
	for rows.Next() {
		var a models.Acknowledgement
		var userID uuid.UUID
		if err := rows.Scan(&a.ID, &userID, &a.PolicyID, &a.PolicyVersion, &a.AcknowledgedAt); err != nil {
			return nil, fmt.Errorf("scan acknowledgement: %w", err)
		}
		a.UserID = id.UserID(userID)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate acknowledgements: %w", err)
	}
	return out, nil
}
