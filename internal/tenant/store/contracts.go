package store

import (
	"context"

	"propertyhub/internal/tenant/models"
	id "propertyhub/pkg/domain"
)

// Store defines the persistence interface for tenants.
// Error Contract: Find methods return sentinel.ErrNotFound (wrapped) when the
// entity doesn't exist. List returns every row ordered by name.
type Store interface {
	Create(ctx context.Context, tenant *models.Tenant) error
	Delete(ctx context.Context, tenantID id.TenantID) error
	FindByID(ctx context.Context, tenantID id.TenantID) (*models.Tenant, error)
	List(ctx context.Context) ([]*models.Tenant, error)
}
