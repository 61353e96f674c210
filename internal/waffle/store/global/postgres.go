package global

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PostgresStore persists switches and flags in PostgreSQL. Absent rows read
// as inactive, matching the Store contract.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed toggle store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) SwitchActive(ctx context.Context, key string) (bool, error) {
	return s.active(ctx, "waffle_switches", key)
}

func (s *PostgresStore) FlagActive(ctx context.Context, key string) (bool, error) {
	return s.active(ctx, "waffle_flags", key)
}

func (s *PostgresStore) active(ctx context.Context, table, key string) (bool, error) {
	// Table name comes from the two call sites above, never from input.
	query := fmt.Sprintf(`SELECT active FROM %s WHERE key = $1`, table)

	var active bool
	err := s.db.QueryRowContext(ctx, query, key).Scan(&active)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s %q: %w", table, key, err)
	}
	return active, nil
}

func (s *PostgresStore) SetSwitch(ctx context.Context, key string, active bool) error {
	return s.set(ctx, "waffle_switches", key, active)
}

func (s *PostgresStore) SetFlag(ctx context.Context, key string, active bool) error {
	return s.set(ctx, "waffle_flags", key, active)
}

func (s *PostgresStore) set(ctx context.Context, table, key string, active bool) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (key, active, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET active = EXCLUDED.active, updated_at = now()`, table)

	if _, err := s.db.ExecContext(ctx, query, key, active); err != nil {
		return fmt.Errorf("set %s %q: %w", table, key, err)
	}
	return nil
}
