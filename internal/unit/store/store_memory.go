package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"propertyhub/internal/unit/models"
	id "propertyhub/pkg/domain"
	"propertyhub/pkg/sentinel"
)

// InMemoryStore stores units in memory for tests and local development.
type InMemoryStore struct {
	mu    sync.RWMutex
	units map[id.UnitID]*models.Unit
}

// NewInMemory constructs an empty in-memory unit store.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{units: make(map[id.UnitID]*models.Unit)}
}

func (s *InMemoryStore) Create(_ context.Context, unit *models.Unit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.units {
		if existing.UnitNumber == unit.UnitNumber {
			return fmt.Errorf("unit number %q: %w", unit.UnitNumber, sentinel.ErrAlreadyUsed)
		}
	}
	cp := *unit
	s.units[unit.ID] = &cp
	return nil
}

func (s *InMemoryStore) Update(_ context.Context, unit *models.Unit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.units[unit.ID]; !ok {
		return fmt.Errorf("unit not found: %w", sentinel.ErrNotFound)
	}
	for _, existing := range s.units {
		if existing.ID != unit.ID && existing.UnitNumber == unit.UnitNumber {
			return fmt.Errorf("unit number %q: %w", unit.UnitNumber, sentinel.ErrAlreadyUsed)
		}
	}
	cp := *unit
	s.units[unit.ID] = &cp
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, unitID id.UnitID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.units[unitID]; !ok {
		return fmt.Errorf("unit not found: %w", sentinel.ErrNotFound)
	}
	delete(s.units, unitID)
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, unitID id.UnitID) (*models.Unit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if unit, ok := s.units[unitID]; ok {
		cp := *unit
		return &cp, nil
	}
	return nil, fmt.Errorf("unit not found: %w", sentinel.ErrNotFound)
}

func (s *InMemoryStore) FindByUnitNumber(_ context.Context, unitNumber string) (*models.Unit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, unit := range s.units {
		if unit.UnitNumber == unitNumber {
			cp := *unit
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("unit not found: %w", sentinel.ErrNotFound)
}

func (s *InMemoryStore) List(_ context.Context) ([]*models.Unit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	units := make([]*models.Unit, 0, len(s.units))
	for _, unit := range s.units {
		cp := *unit
		units = append(units, &cp)
	}
	sort.Slice(units, func(i, j int) bool { return units[i].UnitNumber < units[j].UnitNumber })
	return units, nil
}
