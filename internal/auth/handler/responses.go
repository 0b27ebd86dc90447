package handler

import (
	"time"

	"propertyhub/internal/auth/models"
)

// UserResponse is the public view of an account.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		Name:      u.Name,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt,
	}
}

// SessionResponse describes the session opened by a sign-in.
type SessionResponse struct {
	ID        string    `json:"id"`
	Device    string    `json:"device"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SignInResponse is the payload returned by POST /auth/signin.
type SignInResponse struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	User        UserResponse    `json:"user"`
	Session     SessionResponse `json:"session"`
}
