package override

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"campus/internal/waffle/models"
	id "campus/pkg/domain"
	"campus/pkg/platform/sentinel"
)

// PostgresStore persists course override records in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed override store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Value(ctx context.Context, flagKey string, courseID id.CourseKey) (models.ForceState, error) {
	record, err := s.Get(ctx, flagKey, courseID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return models.Unset, nil
	}
	if err != nil {
		return models.Unset, err
	}
	return record.Effective(), nil
}

func (s *PostgresStore) Upsert(ctx context.Context, record *models.CourseOverride) error {
	if record == nil {
		return fmt.Errorf("override record is required")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO waffle_flag_course_overrides
			(id, flag_key, course_id, force_state, enabled, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (flag_key, course_id) DO UPDATE SET
			force_state = EXCLUDED.force_state,
			enabled = EXCLUDED.enabled,
			updated_at = EXCLUDED.updated_at`,
		record.ID,
		record.FlagKey,
		record.CourseID.String(),
		string(record.Force),
		record.Enabled,
		uuid.UUID(record.CreatedBy),
		record.CreatedAt,
		record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert course override: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, flagKey string, courseID id.CourseKey) (*models.CourseOverride, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, flag_key, course_id, force_state, enabled, created_by, created_at, updated_at
		FROM waffle_flag_course_overrides
		WHERE flag_key = $1 AND course_id = $2`,
		flagKey, courseID.String(),
	)
	record, err := scanOverride(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get course override: %w", err)
	}
	return record, nil
}

func (s *PostgresStore) Delete(ctx context.Context, flagKey string, courseID id.CourseKey) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM waffle_flag_course_overrides
		WHERE flag_key = $1 AND course_id = $2`,
		flagKey, courseID.String(),
	)
	if err != nil {
		return fmt.Errorf("delete course override: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete course override: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context, filter models.SearchFilter) ([]*models.CourseOverride, error) {
	query := `
		SELECT id, flag_key, course_id, force_state, enabled, created_by, created_at, updated_at
		FROM waffle_flag_course_overrides
		WHERE ($1 = '' OR course_id = $1)
		  AND ($2 = '' OR flag_key LIKE '%' || $2 || '%')
		ORDER BY flag_key, course_id`

	courseFilter := ""
	if !filter.CourseID.IsZero() {
		courseFilter = filter.CourseID.String()
	}

	rows, err := s.db.QueryContext(ctx, query, courseFilter, filter.Flag)
	if err != nil {
		return nil, fmt.Errorf("list course overrides: %w", err)
	}
	defer rows.Close()

	records := make([]*models.CourseOverride, 0)
	for rows.Next() {
		record, err := scanOverride(rows)
		if err != nil {
			return nil, fmt.Errorf("list course overrides: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list course overrides: %w", err)
	}
	return records, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOverride(row rowScanner) (*models.CourseOverride, error) {
	var (
		record    models.CourseOverride
		courseRaw string
		forceRaw  string
		createdBy uuid.UUID
	)
	err := row.Scan(
		&record.ID,
		&record.FlagKey,
		&courseRaw,
		&forceRaw,
		&record.Enabled,
		&createdBy,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	courseID, err := id.ParseCourseKey(courseRaw)
	if err != nil {
		return nil, fmt.Errorf("stored course key %q: %w", courseRaw, err)
	}
	record.CourseID = courseID
	record.Force = models.ForceState(forceRaw)
	record.CreatedBy = id.UserID(createdBy)
	return &record, nil
}
