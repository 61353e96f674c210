// Package store persists bookmarks.
package store

import (
	"context"

	"campus/internal/bookmarks/models"
	id "campus/pkg/domain"
)

// Store persists bookmark records. Add replaces an existing bookmark for the
// same (user, usage key); List returns a user's bookmarks in a course,
// newest first.
type Store interface {
	Add(ctx context.Context, bookmark *models.Bookmark) error
	List(ctx context.Context, userID id.UserID, courseID id.CourseKey) ([]*models.Bookmark, error)
	Delete(ctx context.Context, userID id.UserID, usageKey string) error
}
