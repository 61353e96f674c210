// Package darklang stores the dark-launch language configuration rows.
package darklang

import (
	"context"

	"campus/internal/siteconfig/models"
)

// Store persists dark-lang configuration rows. Rows are append-only; Latest
// returns the newest one, or sentinel.ErrNotFound when the table is empty.
type Store interface {
	Insert(ctx context.Context, enabled bool, releasedLanguages []string) (*models.DarkLangConfig, error)
	Latest(ctx context.Context) (*models.DarkLangConfig, error)
	Count(ctx context.Context) (int, error)
}
