package ratelimit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"campus/internal/siteconfig/models"
	"campus/pkg/platform/sentinel"
)

// PostgresStore persists rate-limit config rows in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Insert(ctx context.Context, enabled bool) (*models.RateLimitConfig, error) {
	var row models.RateLimitConfig
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO rate_limit_config (enabled)
		VALUES ($1)
		RETURNING id, enabled, created_at`,
		enabled,
	).Scan(&row.ID, &row.Enabled, &row.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert rate limit config: %w", err)
	}
	return &row, nil
}

func (s *PostgresStore) Latest(ctx context.Context) (*models.RateLimitConfig, error) {
	var row models.RateLimitConfig
	err := s.db.QueryRowContext(ctx, `
		SELECT id, enabled, created_at
		FROM rate_limit_config
		ORDER BY id DESC
		LIMIT 1`,
	).Scan(&row.ID, &row.Enabled, &row.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read rate limit config: %w", err)
	}
	return &row, nil
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM rate_limit_config`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count rate limit config rows: %w", err)
	}
	return count, nil
}
