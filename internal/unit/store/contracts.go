package store

import (
	"context"

	"propertyhub/internal/unit/models"
	id "propertyhub/pkg/domain"
)

// Store defines the persistence interface for units.
// Error Contract: Find methods return sentinel.ErrNotFound (wrapped) when the
// entity doesn't exist; Create returns sentinel.ErrAlreadyUsed for duplicate
// unit numbers. List returns every row ordered by unit number.
type Store interface {
	Create(ctx context.Context, unit *models.Unit) error
	Update(ctx context.Context, unit *models.Unit) error
	Delete(ctx context.Context, unitID id.UnitID) error
	FindByID(ctx context.Context, unitID id.UnitID) (*models.Unit, error)
	FindByUnitNumber(ctx context.Context, unitNumber string) (*models.Unit, error)
	List(ctx context.Context) ([]*models.Unit, error)
}
