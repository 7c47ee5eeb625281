package config

import "time"

type SessionConfig interface {
	GetSessionMaxAge() time.Duration
	GetSecureCookies() bool
}

type Session struct{}

var _ SessionConfig = Session{}

func (Session) GetSessionMaxAge() time.Duration {
	return 7 * 24 * time.Hour
}

// GetSecureCookies reports whether session cookies carry the Secure
// attribute. Disabled only in local development.
func (s Session) GetSecureCookies() bool {
	return EnvVars{}.GetEnv() == "PROD"
}
