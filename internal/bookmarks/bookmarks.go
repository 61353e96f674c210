// Package bookmarks serves a learner's saved course bookmarks: the full
// course page and the embeddable fragment the page is built around.
package bookmarks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"campus/internal/bookmarks/models"
	"campus/internal/bookmarks/store"
	id "campus/pkg/domain"
	dErrors "campus/pkg/domain-errors"
	"campus/pkg/requestcontext"
)

// Service answers bookmark queries for the authenticated user.
type Service struct {
	store  store.Store
	logger *slog.Logger
}

// Option configures optional service collaborators.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func New(st store.Store, opts ...Option) (*Service, error) {
	if st == nil {
		return nil, fmt.Errorf("bookmark store is required")
	}
	s := &Service{
		store:  st,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// List returns the authenticated user's bookmarks in the course, newest
// first. An unauthenticated context is a CodeForbidden error.
func (s *Service) List(ctx context.Context, courseID id.CourseKey) ([]*models.Bookmark, error) {
	userID, err := s.authenticatedUser(ctx)
	if err != nil {
		return nil, err
	}
	if courseID.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "course id is required")
	}
	return s.store.List(ctx, userID, courseID)
}

// Add saves a bookmark for the authenticated user, replacing any existing
// bookmark on the same block.
func (s *Service) Add(ctx context.Context, courseID id.CourseKey, usageKey, displayName string) (*models.Bookmark, error) {
	userID, err := s.authenticatedUser(ctx)
	if err != nil {
		return nil, err
	}
	if courseID.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "course id is required")
	}
	if usageKey == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "usage key is required")
	}

	bookmark := &models.Bookmark{
		ID:          uuid.New(),
		UserID:      userID,
		CourseID:    courseID,
		UsageKey:    usageKey,
		DisplayName: displayName,
		CreatedAt:   requestcontext.Now(ctx),
	}
	if err := s.store.Add(ctx, bookmark); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "bookmark added",
		"course", courseID.String(),
		"usage_key", usageKey,
	)
	return bookmark, nil
}

// Remove deletes the authenticated user's bookmark on the block.
func (s *Service) Remove(ctx context.Context, usageKey string) error {
	userID, err := s.authenticatedUser(ctx)
	if err != nil {
		return err
	}
	if usageKey == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "usage key is required")
	}
	return s.store.Delete(ctx, userID, usageKey)
}

func (s *Service) authenticatedUser(ctx context.Context) (id.UserID, error) {
	userID := requestcontext.UserID(ctx)
	if userID.IsZero() {
		return id.UserID{}, dErrors.New(dErrors.CodeForbidden, "authentication required")
	}
	return userID, nil
}
