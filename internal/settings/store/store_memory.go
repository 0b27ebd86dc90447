package store

import (
	"context"
	"fmt"
	"sync"

	"propertyhub/internal/settings/models"
	id "propertyhub/pkg/domain"
	"propertyhub/pkg/sentinel"
)

// InMemoryStore stores settings in memory for tests and local development.
type InMemoryStore struct {
	mu       sync.RWMutex
	settings map[id.UserID]*models.Settings
}

// NewInMemory constructs an empty in-memory settings store.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{settings: make(map[id.UserID]*models.Settings)}
}

func (s *InMemoryStore) Upsert(_ context.Context, settings *models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *settings
	s.settings[settings.UserID] = &cp
	return nil
}

func (s *InMemoryStore) FindByUser(_ context.Context, userID id.UserID) (*models.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if settings, ok := s.settings[userID]; ok {
		cp := *settings
		return &cp, nil
	}
	return nil, fmt.Errorf("settings not found: %w", sentinel.ErrNotFound)
}
