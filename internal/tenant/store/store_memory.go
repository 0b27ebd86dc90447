package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"propertyhub/internal/tenant/models"
	id "propertyhub/pkg/domain"
	"propertyhub/pkg/sentinel"
)

// InMemoryStore stores tenants in memory for tests and local development.
type InMemoryStore struct {
	mu      sync.RWMutex
	tenants map[id.TenantID]*models.Tenant
}

// NewInMemory constructs an empty in-memory tenant store.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{tenants: make(map[id.TenantID]*models.Tenant)}
}

func (s *InMemoryStore) Create(_ context.Context, tenant *models.Tenant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *tenant
	s.tenants[tenant.ID] = &cp
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, tenantID id.TenantID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tenants[tenantID]; !ok {
		return fmt.Errorf("tenant not found: %w", sentinel.ErrNotFound)
	}
	delete(s.tenants, tenantID)
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, tenantID id.TenantID) (*models.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if tenant, ok := s.tenants[tenantID]; ok {
		cp := *tenant
		return &cp, nil
	}
	return nil, fmt.Errorf("tenant not found: %w", sentinel.ErrNotFound)
}

func (s *InMemoryStore) List(_ context.Context) ([]*models.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tenants := make([]*models.Tenant, 0, len(s.tenants))
	for _, tenant := range s.tenants {
		cp := *tenant
		tenants = append(tenants, &cp)
	}
	sort.Slice(tenants, func(i, j int) bool { return tenants[i].Name < tenants[j].Name })
	return tenants, nil
}
