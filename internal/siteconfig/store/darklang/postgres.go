package darklang

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"campus/internal/siteconfig/models"
	"campus/pkg/platform/sentinel"
)

// PostgresStore persists dark-lang config rows in PostgreSQL. The released
// language list is stored as a comma-separated string, matching the shape of
// the admin-entered value it mirrors.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Insert(ctx context.Context, enabled bool, releasedLanguages []string) (*models.DarkLangConfig, error) {
	var (
		row models.DarkLangConfig
		raw string
	)
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO dark_lang_config (enabled, released_languages)
		VALUES ($1, $2)
		RETURNING id, enabled, released_languages, created_at`,
		enabled, strings.Join(releasedLanguages, ","),
	).Scan(&row.ID, &row.Enabled, &raw, &row.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert dark lang config: %w", err)
	}
	row.ReleasedLanguages = splitCodes(raw)
	return &row, nil
}

func (s *PostgresStore) Latest(ctx context.Context) (*models.DarkLangConfig, error) {
	var (
		row models.DarkLangConfig
		raw string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, enabled, released_languages, created_at
		FROM dark_lang_config
		ORDER BY id DESC
		LIMIT 1`,
	).Scan(&row.ID, &row.Enabled, &raw, &row.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read dark lang config: %w", err)
	}
	row.ReleasedLanguages = splitCodes(raw)
	return &row, nil
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM dark_lang_config`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count dark lang config rows: %w", err)
	}
	return count, nil
}

func splitCodes(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	codes := make([]string, 0, len(parts))
	for _, part := range parts {
		if code := strings.TrimSpace(part); code != "" {
			codes = append(codes, code)
		}
	}
	return codes
}
