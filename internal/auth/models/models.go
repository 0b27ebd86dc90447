// Package models contains pure domain models for authentication: entities
// that should not depend on transport or HTTP-specific concerns.
package models

import (
	"time"

	id "propertyhub/pkg/domain"
)

// User represents a manager account. There is a single tenant of the system
// (the landlord/manager), but nothing prevents several manager accounts.
// This is a pure domain entity - use handler responses for JSON.
type User struct {
	ID           id.UserID
	Email        string
	Name         string
	Phone        string
	PasswordHash string
	CreatedAt    time.Time
}

// Session represents a signed-in browser session.
type Session struct {
	ID        id.SessionID
	UserID    id.UserID
	Device    string // e.g. "Chrome on macOS", derived from the User-Agent
	CreatedAt time.Time
	ExpiresAt time.Time
}

// IsExpired reports whether the session has passed its expiry.
func (s *Session) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
