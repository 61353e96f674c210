package override

import (
	"context"
	"sort"
	"strings"
	"sync"

	"campus/internal/waffle/models"
	id "campus/pkg/domain"
	"campus/pkg/platform/sentinel"
)

type recordKey struct {
	flagKey  string
	courseID id.CourseKey
}

// InMemory is a process-local Store for tests and single-node development.
type InMemory struct {
	mu      sync.RWMutex
	records map[recordKey]*models.CourseOverride
}

func NewInMemory() *InMemory {
	return &InMemory{records: make(map[recordKey]*models.CourseOverride)}
}

func (s *InMemory) Value(_ context.Context, flagKey string, courseID id.CourseKey) (models.ForceState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[recordKey{flagKey, courseID}]
	if !ok {
		return models.Unset, nil
	}
	return record.Effective(), nil
}

func (s *InMemory) Upsert(_ context.Context, record *models.CourseOverride) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *record
	s.records[recordKey{record.FlagKey, record.CourseID}] = &copied
	return nil
}

func (s *InMemory) Get(_ context.Context, flagKey string, courseID id.CourseKey) (*models.CourseOverride, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[recordKey{flagKey, courseID}]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *record
	return &copied, nil
}

func (s *InMemory) Delete(_ context.Context, flagKey string, courseID id.CourseKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := recordKey{flagKey, courseID}
	if _, ok := s.records[key]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.records, key)
	return nil
}

func (s *InMemory) List(_ context.Context, filter models.SearchFilter) ([]*models.CourseOverride, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]*models.CourseOverride, 0)
	for _, record := range s.records {
		if !filter.CourseID.IsZero() && record.CourseID != filter.CourseID {
			continue
		}
		if filter.Flag != "" && !strings.Contains(record.FlagKey, filter.Flag) {
			continue
		}
		copied := *record
		matches = append(matches, &copied)
	}

	// Deterministic listing order for the admin surface.
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].FlagKey != matches[j].FlagKey {
			return matches[i].FlagKey < matches[j].FlagKey
		}
		return matches[i].CourseID.String() < matches[j].CourseID.String()
	})
	return matches, nil
}
