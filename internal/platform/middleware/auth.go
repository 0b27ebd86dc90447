package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	id "propertyhub/pkg/domain"
	dErrors "propertyhub/pkg/domain-errors"
)

// SessionClaims represents the claims we expect from the token validator.
type SessionClaims struct {
	UserID    id.UserID
	SessionID id.SessionID
}

// TokenValidator validates bearer session tokens.
type TokenValidator interface {
	ValidateToken(tokenString string) (*SessionClaims, error)
}

// SessionChecker confirms that the session referenced by a token still exists.
// Signed-out sessions are deleted, so a valid signature alone is not enough.
type SessionChecker interface {
	SessionExists(ctx context.Context, sessionID id.SessionID) (bool, error)
}

type contextKeyUserID struct{}
type contextKeySessionID struct{}

// WithUserID returns a context carrying the authenticated user ID.
func WithUserID(ctx context.Context, userID id.UserID) context.Context {
	return context.WithValue(ctx, contextKeyUserID{}, userID)
}

// WithSessionID returns a context carrying the session ID.
func WithSessionID(ctx context.Context, sessionID id.SessionID) context.Context {
	return context.WithValue(ctx, contextKeySessionID{}, sessionID)
}

// GetUserID retrieves the authenticated user ID from the context.
func GetUserID(ctx context.Context) id.UserID {
	userID, ok := ctx.Value(contextKeyUserID{}).(id.UserID)
	if !ok {
		return id.UserID{}
	}
	return userID
}

// GetSessionID retrieves the session ID from the context.
func GetSessionID(ctx context.Context) id.SessionID {
	sessionID, ok := ctx.Value(contextKeySessionID{}).(id.SessionID)
	if !ok {
		return id.SessionID{}
	}
	return sessionID
}

// RequireUserID extracts the authenticated user ID from context.
// Returns a domain error suitable for an HTTP response on failure.
func RequireUserID(ctx context.Context) (id.UserID, error) {
	userID := GetUserID(ctx)
	if userID.IsNil() {
		return id.UserID{}, dErrors.New(dErrors.CodeInternal, "authentication context error")
	}
	return userID, nil
}

// RequireAuth rejects requests that do not carry a valid bearer session token.
// On success the user and session IDs are stored on the request context.
func RequireAuth(validator TokenValidator, sessions SessionChecker, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := GetRequestID(ctx)

			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || token == "" {
				writeUnauthorized(w, "Missing bearer token")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestID,
				)
				writeUnauthorized(w, "Invalid or expired token")
				return
			}

			if sessions != nil {
				exists, err := sessions.SessionExists(ctx, claims.SessionID)
				if err != nil {
					logger.ErrorContext(ctx, "failed to check session",
						"error", err,
						"request_id", requestID,
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_, _ = w.Write([]byte(`{"error":"internal_error","error_description":"Failed to validate session"}`))
					return
				}
				if !exists {
					logger.WarnContext(ctx, "unauthorized access - session revoked",
						"session_id", claims.SessionID,
						"request_id", requestID,
					)
					writeUnauthorized(w, "Session has been signed out")
					return
				}
			}

			ctx = WithUserID(ctx, claims.UserID)
			ctx = WithSessionID(ctx, claims.SessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"` + description + `"}`))
}
