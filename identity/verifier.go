package identity

import (
	"context"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// Verifier resolves a bearer access token to a subject identity.
// Implementations report every definite failure as ErrInvalidToken and
// never cache results, positive or negative: each protected request is
// verified afresh.
type Verifier interface {
	Verify(ctx context.Context, accessToken string) (*Subject, error)
}

// RemoteVerifier delegates verification to the provider's user endpoint.
// This is the default mode: revocations take effect immediately, at the
// cost of one provider round trip per protected request.
type RemoteVerifier struct {
	client *Client
}

var _ Verifier = (*RemoteVerifier)(nil)

func NewRemoteVerifier(client *Client) (*RemoteVerifier, error) {
	if client == nil {
		return nil, errors.New("[identity.NewRemoteVerifier] client is required")
	}
	return &RemoteVerifier{client: client}, nil
}

func (v *RemoteVerifier) Verify(ctx context.Context, accessToken string) (*Subject, error) {
	return v.client.GetUser(ctx, accessToken)
}

// LocalVerifier checks the token signature and expiry against the
// project's JWT secret without calling the provider. Tokens revoked
// before expiry still verify, so this mode trades freshness for latency.
type LocalVerifier struct {
	secret []byte
	parser *jwt.Parser
}

var _ Verifier = (*LocalVerifier)(nil)

func NewLocalVerifier(secret string) (*LocalVerifier, error) {
	if secret == "" {
		return nil, errors.New("[identity.NewLocalVerifier] secret is required")
	}
	return &LocalVerifier{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}, nil
}

type accessTokenClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

func (v *LocalVerifier) Verify(_ context.Context, accessToken string) (*Subject, error) {
	if strings.TrimSpace(accessToken) == "" {
		return nil, ErrInvalidToken
	}

	var claims accessTokenClaims
	_, err := v.parser.ParseWithClaims(accessToken, &claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	if err != nil || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return &Subject{ID: claims.Subject, Email: claims.Email}, nil
}
