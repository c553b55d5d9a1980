package config

import (
	"crypto/sha256"
	"time"
)

type SessionConfig interface {
	GetSessionKey() [32]byte
	GetSessionMaxAge() time.Duration
	GetPendingLoginTTL() time.Duration
	GetDefaultLandingRoute() string
}

type Session struct{}

var _ SessionConfig = Session{}

// GetSessionKey derives the secretbox key used to seal tokens at rest
// from the SESSION_SECRET environment variable.
func (Session) GetSessionKey() [32]byte {
	secret := GetEnv("SESSION_SECRET", "dev-only-session-secret")
	return sha256.Sum256([]byte(secret))
}

func (Session) GetSessionMaxAge() time.Duration {
	return 30 * 24 * time.Hour
}

// GetPendingLoginTTL bounds how long an abandoned organization-selection
// step stays resumable before credentials must be re-entered.
func (Session) GetPendingLoginTTL() time.Duration {
	return 5 * time.Minute
}

func (Session) GetDefaultLandingRoute() string {
	return "/home"
}
