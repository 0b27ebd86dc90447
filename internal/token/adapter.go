package token

import (
	id "propertyhub/pkg/domain"

	"propertyhub/internal/platform/middleware"
)

// MiddlewareAdapter bridges the token service to the auth middleware's
// TokenValidator interface, translating raw claim strings into typed IDs.
type MiddlewareAdapter struct {
	service *Service
}

// NewMiddlewareAdapter wraps a token service for use by middleware.RequireAuth.
func NewMiddlewareAdapter(service *Service) *MiddlewareAdapter {
	return &MiddlewareAdapter{service: service}
}

// ValidateToken implements middleware.TokenValidator.
func (a *MiddlewareAdapter) ValidateToken(tokenString string) (*middleware.SessionClaims, error) {
	claims, err := a.service.Validate(tokenString)
	if err != nil {
		return nil, err
	}

	userID, err := id.ParseUserID(claims.UserID)
	if err != nil {
		return nil, err
	}
	sessionID, err := id.ParseSessionID(claims.SessionID)
	if err != nil {
		return nil, err
	}

	return &middleware.SessionClaims{
		UserID:    userID,
		SessionID: sessionID,
	}, nil
}
