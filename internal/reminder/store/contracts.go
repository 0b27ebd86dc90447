package store

import (
	"context"

	"propertyhub/internal/reminder/models"
)

// Store defines the persistence interface for the reminder history.
// The history is write-once: rows are appended and listed, never updated or
// deleted. List returns rows ordered by sent_at descending, newest first.
type Store interface {
	Create(ctx context.Context, reminder *models.Reminder) error
	List(ctx context.Context) ([]*models.Reminder, error)
}
