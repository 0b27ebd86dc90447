package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Server captures process level configuration.
type Server struct {
	Addr          string
	Environment   string
	DatabaseURL   string
	JWTSigningKey string
	SessionTTL    time.Duration
}

var defaultSessionTTL = 24 * time.Hour

// FromEnv builds a Server config from environment variables so main stays lean.
// A .env file in the working directory is loaded first when present.
func FromEnv() Server {
	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	addr := os.Getenv("PROPERTYHUB_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	env := os.Getenv("PROPERTYHUB_ENV")
	if env == "" {
		env = "development"
	}

	sessionTTL := defaultSessionTTL
	if raw := os.Getenv("SESSION_TTL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			sessionTTL = d
		}
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	return Server{
		Addr:          addr,
		Environment:   env,
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		JWTSigningKey: jwtSigningKey,
		SessionTTL:    sessionTTL,
	}
}
