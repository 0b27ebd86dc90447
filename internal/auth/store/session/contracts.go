package session

import (
	"context"

	"propertyhub/internal/auth/models"
	id "propertyhub/pkg/domain"
)

// Store defines the persistence interface for session data.
// Error Contract: FindByID returns sentinel.ErrNotFound (wrapped) when the
// session doesn't exist.
type Store interface {
	Save(ctx context.Context, session *models.Session) error
	FindByID(ctx context.Context, sessionID id.SessionID) (*models.Session, error)
	Delete(ctx context.Context, sessionID id.SessionID) error
	DeleteByUser(ctx context.Context, userID id.UserID) error
}
