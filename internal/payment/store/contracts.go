package store

import (
	"context"

	"propertyhub/internal/payment/models"
	id "propertyhub/pkg/domain"
)

// Store defines the persistence interface for payments.
// Error Contract: Find methods return sentinel.ErrNotFound (wrapped) when the
// entity doesn't exist. List returns every row ordered by created_at
// descending, newest first.
type Store interface {
	Create(ctx context.Context, payment *models.Payment) error
	Update(ctx context.Context, payment *models.Payment) error
	FindByID(ctx context.Context, paymentID id.PaymentID) (*models.Payment, error)
	List(ctx context.Context) ([]*models.Payment, error)
}
