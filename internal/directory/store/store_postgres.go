package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"mandate/internal/directory/models"
	id "mandate/pkg/domain"
	"mandate/pkg/platform/sentinel"
	"mandate/pkg/platform/tx"
)

// PostgresStore reads recipients from the identity collaborator's users table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) PutUser(ctx context.Context, orgID id.OrgID, r models.Recipient) error {
	_, err := tx.Using(ctx, s.db).ExecContext(ctx, `
		INSERT INTO users (id, org_id, display_name, email)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET display_name = EXCLUDED.display_name, email = EXCLUDED.email`,
		uuid.UUID(r.UserID), uuid.UUID(orgID), r.DisplayName, r.Email,
	)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindRecipient(ctx context.Context, orgID id.OrgID, userID id.UserID) (models.Recipient, error) {
	var r models.Recipient
	err := tx.Using(ctx, s.db).QueryRowContext(ctx,
		`SELECT display_name, email FROM users WHERE org_id = $1 AND id = $2`,
		uuid.UUID(orgID), uuid.UUID(userID),
	).Scan(&r.DisplayName, &r.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Recipient{}, sentinel.ErrNotFound
		}
		return models.Recipient{}, fmt.Errorf("find recipient: %w", err)
	}
	r.UserID = userID
	return r, nil
}
