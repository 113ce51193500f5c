package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"mandate/internal/catalog/models"
	id "mandate/pkg/domain"
	"mandate/pkg/platform/tx"
)

// PostgresStore reads course versions from the course_versions table owned
// by the course/quiz collaborator.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// PutCourse upserts a course version. Used for seeding and tests; the
// collaborator owns the table in production.
func (s *PostgresStore) PutCourse(ctx context.Context, orgID id.OrgID, c models.CourseInfo, changeNote string) error {
	_, err := tx.Using(ctx, s.db).ExecContext(ctx, `
		INSERT INTO course_versions (ref, org_id, course_id, title, category, version, published_at, change_note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (ref) DO UPDATE SET
			title = EXCLUDED.title,
			category = EXCLUDED.category,
			change_note = EXCLUDED.change_note`,
		string(c.Ref), uuid.UUID(orgID), c.CourseID, c.Title, c.Category, c.Version, c.PublishedAt, changeNote,
	)
	if err != nil {
		return fmt.Errorf("upsert course version: %w", err)
	}
	return nil
}

// Resolve looks up all refs in one round trip. Refs without a row come back
// Orphaned.
func (s *PostgresStore) Resolve(ctx context.Context, orgID id.OrgID, refs []id.CourseVersionRef) (models.Resolutions, error) {
	out := make(models.Resolutions, len(refs))
	if len(refs) == 0 {
		return out, nil
	}
	raw := make([]string, len(refs))
	for i, ref := range refs {
		raw[i] = string(ref)
		out[ref] = models.Orphaned(ref)
	}

	rows, err := tx.Using(ctx, s.db).QueryContext(ctx, `
		SELECT ref, course_id, title, category, version, published_at
		FROM course_versions
		WHERE org_id = $1 AND ref = ANY($2)`,
		uuid.UUID(orgID), pq.Array(raw),
	)
	if err != nil {
		return nil, fmt.Errorf("resolve course versions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c models.CourseInfo
		var ref string
		if err := rows.Scan(&ref, &c.CourseID, &c.Title, &c.Category, &c.Version, &c.PublishedAt); err != nil {
			return nil, fmt.Errorf("scan course version: %w", err)
		}
		c.Ref = id.CourseVersionRef(ref)
		out[c.Ref] = models.Resolved(c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate course versions: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) VersionHistory(ctx context.Context, orgID id.OrgID) ([]models.VersionHistoryEntry, error) {
	rows, err := tx.Using(ctx, s.db).QueryContext(ctx, `
		SELECT course_id, ref, version, title, published_at, change_note
		FROM course_versions
		WHERE org_id = $1
		ORDER BY course_id, version DESC`,
		uuid.UUID(orgID),
	)
	if err != nil {
		return nil, fmt.Errorf("list version history: %w", err)
	}
	defer rows.Close()

	out := make([]models.VersionHistoryEntry, 0)
	for rows.Next() {
		var e models.VersionHistoryEntry
		var ref string
		if err := rows.Scan(&e.CourseID, &ref, &e.Version, &e.Title, &e.PublishedAt, &e.ChangeNote); err != nil {
			return nil, fmt.Errorf("scan version history: %w", err)
		}
		e.Ref = id.CourseVersionRef(ref)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate version history: %w", err)
	}
	return out, nil
}
