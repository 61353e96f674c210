package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"campus/internal/bookmarks/models"
	id "campus/pkg/domain"
	"campus/pkg/platform/sentinel"
)

// PostgresStore persists bookmarks in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Add(ctx context.Context, bookmark *models.Bookmark) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO bookmarks (id, user_id, course_id, usage_key, display_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, usage_key) DO UPDATE SET
			display_name = EXCLUDED.display_name`,
		bookmark.ID,
		uuid.UUID(bookmark.UserID),
		bookmark.CourseID.String(),
		bookmark.UsageKey,
		bookmark.DisplayName,
		bookmark.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("add bookmark: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context, userID id.UserID, courseID id.CourseKey) ([]*models.Bookmark, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, course_id, usage_key, display_name, created_at
		FROM bookmarks
		WHERE user_id = $1 AND course_id = $2
		ORDER BY created_at DESC, usage_key`,
		uuid.UUID(userID), courseID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	defer rows.Close()

	bookmarks := make([]*models.Bookmark, 0)
	for rows.Next() {
		var (
			bookmark  models.Bookmark
			ownerID   uuid.UUID
			courseRaw string
		)
		if err := rows.Scan(&bookmark.ID, &ownerID, &courseRaw, &bookmark.UsageKey, &bookmark.DisplayName, &bookmark.CreatedAt); err != nil {
			return nil, fmt.Errorf("list bookmarks: %w", err)
		}
		parsed, err := id.ParseCourseKey(courseRaw)
		if err != nil {
			return nil, fmt.Errorf("stored course key %q: %w", courseRaw, err)
		}
		bookmark.UserID = id.UserID(ownerID)
		bookmark.CourseID = parsed
		bookmarks = append(bookmarks, &bookmark)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	return bookmarks, nil
}

func (s *PostgresStore) Delete(ctx context.Context, userID id.UserID, usageKey string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM bookmarks WHERE user_id = $1 AND usage_key = $2`,
		uuid.UUID(userID), usageKey,
	)
	if err != nil {
		return fmt.Errorf("delete bookmark: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete bookmark: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
