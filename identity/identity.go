// Package identity wraps the hosted identity provider's token API. The
// portal never stores passwords or issues tokens itself; sign-in, sign-up
// and token verification are all delegated to the provider.
package identity

// Subject is the provider's identity for an authenticated user.
type Subject struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
}

// CredentialPair is the access/refresh token pair issued by the provider
// at sign-in. Both tokens are opaque to the portal.
type CredentialPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
