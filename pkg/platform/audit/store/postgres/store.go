package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	id "mandate/pkg/domain"
	"mandate/pkg/platform/audit"
	"mandate/pkg/platform/tx"
)

// Store is the append-only audit_events table.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const eventColumns = `id, category, occurred_at, org_id, user_id, action, subject, detail, request_id, actor_id`

// Append inserts event. Replays of the same event id are ignored.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	var userID uuid.NullUUID
	if !event.UserID.IsNil() {
		userID = uuid.NullUUID{UUID: uuid.UUID(event.UserID), Valid: true}
	}
	_, err := tx.Using(ctx, s.db).ExecContext(ctx, `
		INSERT INTO audit_events (`+eventColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO NOTHING`,
		event.ID,
		string(event.Category),
		event.Timestamp,
		uuid.UUID(event.OrgID),
		userID,
		string(event.Action),
		event.Subject,
		event.Detail,
		event.RequestID,
		event.ActorID,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// ListByOrg returns the org's most recent events, newest first.
func (s *Store) ListByOrg(ctx context.Context, orgID id.OrgID, limit int) ([]audit.Event, error) {
	rows, err := tx.Using(ctx, s.db).QueryContext(ctx, `
		SELECT `+eventColumns+`
		FROM audit_events
		WHERE org_id = $1
		ORDER BY occurred_at DESC, id
		LIMIT $2`,
		uuid.UUID(orgID), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	events := make([]audit.Event, 0)
	for rows.Next() {
		var (
			e        audit.Event
			category string
			action   string
			org      uuid.UUID
			userID   uuid.NullUUID
		)
		if err := rows.Scan(&e.ID, &category, &e.Timestamp, &org, &userID, &action,
			&e.Subject, &e.Detail, &e.RequestID, &e.ActorID); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		e.Category = audit.Category(category)
		e.Action = audit.Action(action)
		e.OrgID = id.OrgID(org)
		if userID.Valid {
			e.UserID = id.UserID(userID.UUID)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return events, nil
}
