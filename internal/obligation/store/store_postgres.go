package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"mandate/internal/obligation/models"
	id "mandate/pkg/domain"
	"mandate/pkg/platform/sentinel"
	"mandate/pkg/platform/tx"
)

// PostgresStore persists obligations and the completion ledger in PostgreSQL.
// Calls participate in a transaction when one is carried by the context.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed obligation store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const obligationColumns = `id, org_id, scope_user_id, course_version_ref, due_at, mandatory, created_at, reminder_sent_at`

func (s *PostgresStore) CreateObligation(ctx context.Context, o models.Obligation) error {
	_, err := tx.Using(ctx, s.db).ExecContext(ctx, `
		INSERT INTO obligations (`+obligationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		uuid.UUID(o.ID),
		uuid.UUID(o.OrgID),
		uuid.UUID(o.ScopeUserID),
		string(o.CourseVersionRef),
		nullTime(o.DueAt),
		o.Mandatory,
		o.CreatedAt,
		nullTime(o.ReminderSentAt),
	)
	if err != nil {
		return fmt.Errorf("insert obligation: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteObligation(ctx context.Context, obligationID id.ObligationID) error {
	res, err := tx.Using(ctx, s.db).ExecContext(ctx, `DELETE FROM obligations WHERE id = $1`, uuid.UUID(obligationID))
	if err != nil {
		return fmt.Errorf("delete obligation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete obligation rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) GetObligation(ctx context.Context, obligationID id.ObligationID) (models.Obligation, error) {
	row := tx.Using(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+obligationColumns+` FROM obligations WHERE id = $1`, uuid.UUID(obligationID))
	o, err := scanObligation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Obligation{}, sentinel.ErrNotFound
		}
		return models.Obligation{}, fmt.Errorf("get obligation: %w", err)
	}
	return o, nil
}

func (s *PostgresStore) ListObligations(ctx context.Context, orgID id.OrgID) ([]models.Obligation, error) {
	rows, err := tx.Using(ctx, s.db).QueryContext(ctx,
		`SELECT `+obligationColumns+` FROM obligations WHERE org_id = $1 ORDER BY created_at`, uuid.UUID(orgID))
	if err != nil {
		return nil, fmt.Errorf("list obligations: %w", err)
	}
	defer rows.Close()

	out := make([]models.Obligation, 0)
	for rows.Next() {
		o, err := scanObligation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan obligation: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate obligations: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) AppendCompletion(ctx context.Context, orgID id.OrgID, rec models.CompletionRecord) error {
	var score sql.NullInt32
	if rec.Score != nil {
		score = sql.NullInt32{Int32: int32(*rec.Score), Valid: true}
	}
	_, err := tx.Using(ctx, s.db).ExecContext(ctx, `
		INSERT INTO completion_records (org_id, user_id, course_version_ref, completed_at, score, passed)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.UUID(orgID),
		uuid.UUID(rec.UserID),
		string(rec.CourseVersionRef),
		rec.CompletedAt,
		score,
		rec.Passed,
	)
	if err != nil {
		return fmt.Errorf("insert completion: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListCompletions(ctx context.Context, orgID id.OrgID) ([]models.CompletionRecord, error) {
	rows, err := tx.Using(ctx, s.db).QueryContext(ctx, `
		SELECT user_id, course_version_ref, completed_at, score, passed
		FROM completion_records
		WHERE org_id = $1`, uuid.UUID(orgID))
	if err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}
	defer rows.Close()

	out := make([]models.CompletionRecord, 0)
	for rows.Next() {
		var (
			userID uuid.UUID
			ref    string
			rec    models.CompletionRecord
			score  sql.NullInt32
		)
		if err := rows.Scan(&userID, &ref, &rec.CompletedAt, &score, &rec.Passed); err != nil {
			return nil, fmt.Errorf("scan completion: %w", err)
		}
		rec.UserID = id.UserID(userID)
		rec.CourseVersionRef = id.CourseVersionRef(ref)
		if score.Valid {
			v := int(score.Int32)
			rec.Score = &v
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate completions: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) ListOrgIDs(ctx context.Context) ([]id.OrgID, error) {
	rows, err := tx.Using(ctx, s.db).QueryContext(ctx, `SELECT DISTINCT org_id FROM obligations ORDER BY org_id`)
	if err != nil {
		return nil, fmt.Errorf("list org ids: %w", err)
	}
	defer rows.Close()

	out := make([]id.OrgID, 0)
	for rows.Next() {
		var orgID uuid.UUID
		if err := rows.Scan(&orgID); err != nil {
			return nil, fmt.Errorf("scan org id: %w", err)
		}
		out = append(out, id.OrgID(orgID))
	}
	return out, rows.Err()
}

// StampReminder performs the conditional write guarding reminder sends:
// the row is updated only if reminder_sent_at still equals prev.
func (s *PostgresStore) StampReminder(ctx context.Context, obligationID id.ObligationID, prev *time.Time, now time.Time) (bool, error) {
	res, err := tx.Using(ctx, s.db).ExecContext(ctx, `
		UPDATE obligations
		SET reminder_sent_at = $3
		WHERE id = $1 AND reminder_sent_at IS NOT DISTINCT FROM $2`,
		uuid.UUID(obligationID),
		nullTime(prev),
		now,
	)
	if err != nil {
		return false, fmt.Errorf("stamp reminder: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("stamp reminder rows affected: %w", err)
	}
	return n == 1, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanObligation(row rowScanner) (models.Obligation, error) {
	var (
		o                           models.Obligation
		obligationID, orgID, userID uuid.UUID
		ref                         string
		dueAt, sentAt               sql.NullTime
	)
	if err := row.Scan(&obligationID, &orgID, &userID, &ref, &dueAt, &o.Mandatory, &o.CreatedAt, &sentAt); err != nil {
		return models.Obligation{}, err
	}
	o.ID = id.ObligationID(obligationID)
	o.OrgID = id.OrgID(orgID)
	o.ScopeUserID = id.UserID(userID)
	o.CourseVersionRef = id.CourseVersionRef(ref)
	if dueAt.Valid {
		t := dueAt.Time
		o.DueAt = &t
	}
	if sentAt.Valid {
		t := sentAt.Time
		o.ReminderSentAt = &t
	}
	return o, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
