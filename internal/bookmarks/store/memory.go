package store

import (
	"context"
	"sort"
	"sync"

	"campus/internal/bookmarks/models"
	id "campus/pkg/domain"
	"campus/pkg/platform/sentinel"
)

type bookmarkKey struct {
	userID   id.UserID
	usageKey string
}

// InMemory is the in-memory bookmark store used in tests and dev.
type InMemory struct {
	mu        sync.RWMutex
	bookmarks map[bookmarkKey]*models.Bookmark
}

func NewInMemory() *InMemory {
	return &InMemory{bookmarks: make(map[bookmarkKey]*models.Bookmark)}
}

func (s *InMemory) Add(_ context.Context, bookmark *models.Bookmark) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *bookmark
	s.bookmarks[bookmarkKey{bookmark.UserID, bookmark.UsageKey}] = &copied
	return nil
}

func (s *InMemory) List(_ context.Context, userID id.UserID, courseID id.CourseKey) ([]*models.Bookmark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.Bookmark, 0)
	for key, bookmark := range s.bookmarks {
		if key.userID != userID || bookmark.CourseID != courseID {
			continue
		}
		copied := *bookmark
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].UsageKey < result[j].UsageKey
	})
	return result, nil
}

func (s *InMemory) Delete(_ context.Context, userID id.UserID, usageKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := bookmarkKey{userID, usageKey}
	if _, ok := s.bookmarks[key]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.bookmarks, key)
	return nil
}
