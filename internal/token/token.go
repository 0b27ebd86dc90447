// Package token issues and validates the signed session tokens handed to the
// browser after sign-in. Tokens are HS256 JWTs carrying the user and session IDs.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	id "propertyhub/pkg/domain"
	dErrors "propertyhub/pkg/domain-errors"
)

// SessionTokenClaims represents the JWT claims for session access tokens.
type SessionTokenClaims struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// Service handles JWT creation and validation.
type Service struct {
	signingKey []byte
	issuer     string
	tokenTTL   time.Duration
}

// New creates a token service. The TTL should match the session TTL so a
// token never outlives its session row.
func New(signingKey string, tokenTTL time.Duration) *Service {
	return &Service{
		signingKey: []byte(signingKey),
		issuer:     "propertyhub",
		tokenTTL:   tokenTTL,
	}
}

// Generate creates a signed session token for the given user and session.
func (s *Service) Generate(userID id.UserID, sessionID id.SessionID) (string, error) {
	now := time.Now()
	claims := SessionTokenClaims{
		UserID:    userID.String(),
		SessionID: sessionID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "could not sign session token")
	}
	return signed, nil
}

// Validate parses and verifies a session token, returning its claims.
func (s *Service) Validate(tokenString string) (*SessionTokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &SessionTokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "unexpected signing method")
		}
		return s.signingKey, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnauthorized, "invalid or expired token")
	}

	claims, ok := parsed.Claims.(*SessionTokenClaims)
	if !ok || !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	return claims, nil
}
