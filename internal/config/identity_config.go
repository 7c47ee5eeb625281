package config

const (
	identityURLVar    = "IDENTITY_URL"
	identityKeyVar    = "IDENTITY_ANON_KEY"
	identitySecretVar = "IDENTITY_JWT_SECRET"
	verifyModeVar     = "AUTH_VERIFY_MODE"
)

// VerifyMode selects how access tokens are checked on protected requests.
type VerifyMode string

const (
	// VerifyModeRemote introspects every token against the identity
	// provider. Revocations are seen immediately.
	VerifyModeRemote VerifyMode = "remote"
	// VerifyModeLocal checks the token signature with the project JWT
	// secret, skipping the network round trip. Revoked-but-unexpired
	// tokens remain valid until expiry.
	VerifyModeLocal VerifyMode = "local"
)

type IdentityConfig interface {
	GetIdentityURL() string
	GetIdentityAnonKey() string
	GetIdentityJWTSecret() string
	GetVerifyMode() VerifyMode
}

type Identity struct{}

var _ IdentityConfig = Identity{}

func (Identity) GetIdentityURL() string {
	return GetEnv(identityURLVar, "")
}

func (Identity) GetIdentityAnonKey() string {
	return GetEnv(identityKeyVar, "")
}

func (Identity) GetIdentityJWTSecret() string {
	return GetEnv(identitySecretVar, "")
}

func (Identity) GetVerifyMode() VerifyMode {
	mode := VerifyMode(GetEnv(verifyModeVar, string(VerifyModeRemote)))
	if mode != VerifyModeLocal {
		return VerifyModeRemote
	}
	return mode
}
