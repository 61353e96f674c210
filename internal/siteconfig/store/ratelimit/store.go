// Package ratelimit stores the rate-limit configuration rows.
package ratelimit

import (
	"context"

	"campus/internal/siteconfig/models"
)

// Store persists rate-limit configuration rows. Rows are append-only; Latest
// returns the newest one, or sentinel.ErrNotFound when the table is empty.
type Store interface {
	Insert(ctx context.Context, enabled bool) (*models.RateLimitConfig, error)
	Latest(ctx context.Context) (*models.RateLimitConfig, error)
	Count(ctx context.Context) (int, error)
}
