// Package override holds the per-course flag override stores. Records are
// created and edited through the admin surface; the flag evaluation path only
// reads them via Value.
package override

import (
	"context"

	"campus/internal/waffle/models"
	id "campus/pkg/domain"
)

// Store persists course override records keyed by (flag key, course key).
//
// Value is the evaluation-path read: it returns Unset — not an error — when
// no record is on file or the record is disabled. Get returns
// sentinel.ErrNotFound for absent records; it serves the admin surface.
type Store interface {
	Value(ctx context.Context, flagKey string, courseID id.CourseKey) (models.ForceState, error)
	Upsert(ctx context.Context, record *models.CourseOverride) error
	Get(ctx context.Context, flagKey string, courseID id.CourseKey) (*models.CourseOverride, error)
	Delete(ctx context.Context, flagKey string, courseID id.CourseKey) error
	List(ctx context.Context, filter models.SearchFilter) ([]*models.CourseOverride, error)
}
