package ratelimit

import (
	"context"
	"sync"
	"time"

	"campus/internal/siteconfig/models"
	"campus/pkg/platform/sentinel"
)

// InMemory is the in-memory rate-limit config store used in tests and dev.
type InMemory struct {
	mu   sync.RWMutex
	rows []models.RateLimitConfig
}

func NewInMemory() *InMemory {
	return &InMemory{}
}

func (s *InMemory) Insert(_ context.Context, enabled bool) (*models.RateLimitConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := models.RateLimitConfig{
		ID:        int64(len(s.rows) + 1),
		Enabled:   enabled,
		CreatedAt: time.Now().UTC(),
	}
	s.rows = append(s.rows, row)
	return &row, nil
}

func (s *InMemory) Latest(_ context.Context) (*models.RateLimitConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.rows) == 0 {
		return nil, sentinel.ErrNotFound
	}
	row := s.rows[len(s.rows)-1]
	return &row, nil
}

func (s *InMemory) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows), nil
}
