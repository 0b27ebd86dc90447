package user

import (
	"context"

	"propertyhub/internal/auth/models"
	id "propertyhub/pkg/domain"
)

// Store defines the persistence interface for user data.
// Error Contract: Find methods return sentinel.ErrNotFound (wrapped) when the
// entity doesn't exist; Create returns sentinel.ErrAlreadyUsed for duplicate emails.
type Store interface {
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, userID id.UserID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}
