package store

import (
	"context"

	"propertyhub/internal/settings/models"
	id "propertyhub/pkg/domain"
)

// Store defines the persistence interface for settings.
// Error Contract: FindByUser returns sentinel.ErrNotFound (wrapped) when the
// user has never saved settings. Upsert inserts or replaces the user's row.
type Store interface {
	Upsert(ctx context.Context, settings *models.Settings) error
	FindByUser(ctx context.Context, userID id.UserID) (*models.Settings, error)
}
