package config

import (
	"strings"

	"github.com/pkg/errors"
)

// Validate checks the configuration once at process start. The returned
// Config is read from environment variables that do not change for the
// lifetime of the process, so a successful Validate holds for every
// subsequent request.
func Validate(c Config) error {
	identityURL := c.GetIdentityURL()
	if identityURL == "" {
		return errors.New("[config.Validate] IDENTITY_URL is required")
	}
	if !strings.HasPrefix(identityURL, "http://") && !strings.HasPrefix(identityURL, "https://") {
		return errors.New("[config.Validate] IDENTITY_URL must start with http:// or https://")
	}
	if c.GetIdentityAnonKey() == "" {
		return errors.New("[config.Validate] IDENTITY_ANON_KEY is required")
	}
	if c.GetVerifyMode() == VerifyModeLocal && c.GetIdentityJWTSecret() == "" {
		return errors.New("[config.Validate] AUTH_VERIFY_MODE=local requires IDENTITY_JWT_SECRET")
	}
	if c.GetDatabaseURL() == "" {
		return errors.New("[config.Validate] DATABASE_URL is required")
	}
	return nil
}
