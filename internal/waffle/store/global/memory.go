package global

import (
	"context"
	"sync"
)

// InMemory is a process-local Store for tests and single-node development.
type InMemory struct {
	mu       sync.RWMutex
	switches map[string]bool
	flags    map[string]bool
}

func NewInMemory() *InMemory {
	return &InMemory{
		switches: make(map[string]bool),
		flags:    make(map[string]bool),
	}
}

func (s *InMemory) SwitchActive(_ context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.switches[key], nil
}

func (s *InMemory) FlagActive(_ context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.flags[key], nil
}

func (s *InMemory) SetSwitch(_ context.Context, key string, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.switches[key] = active
	return nil
}

func (s *InMemory) SetFlag(_ context.Context, key string, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flags[key] = active
	return nil
}
