// Package session persists a verified credential pair as a cookie pair on
// the browser and reconstructs a transient Session from it on every
// protected request. Cookies are the only server-side representation of a
// session; nothing is held in process memory between requests.
package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/updeals/retailer-portal/identity"
)

const (
	// AccessTokenCookie and RefreshTokenCookie hold the provider-issued
	// credential pair. The invariant is that both are set or cleared
	// together; a partial pair is treated as no session.
	AccessTokenCookie  = "sb-access-token"
	RefreshTokenCookie = "sb-refresh-token"

	// DefaultMaxAge matches the provider's refresh token lifetime.
	DefaultMaxAge = 7 * 24 * time.Hour
)

// ErrNoSession is returned by Read when the request carries no usable
// credential pair: cookies absent, partial, or failing verification.
var ErrNoSession = errors.New("no session")

// Session is the per-request view of an authenticated subject. It is
// recomputed from the cookie pair on every read and never stored.
type Session struct {
	SubjectID string
	Email     string
}

// Store writes and reads the cookie pair. The verifier is injected so the
// store itself stays free of provider specifics.
type Store struct {
	verifier identity.Verifier
	secure   bool
	maxAge   time.Duration
}

// StoreOption modifies a Store during construction.
type StoreOption func(*Store)

// WithMaxAge overrides the cookie lifetime.
func WithMaxAge(maxAge time.Duration) StoreOption {
	return func(s *Store) {
		s.maxAge = maxAge
	}
}

// NewStore returns a cookie-pair store. secure controls the cookie Secure
// attribute and is false only in local development.
func NewStore(verifier identity.Verifier, secure bool, options ...StoreOption) (*Store, error) {
	if verifier == nil {
		return nil, pkgerrors.New("[session.NewStore] verifier is required")
	}

	s := &Store{
		verifier: verifier,
		secure:   secure,
		maxAge:   DefaultMaxAge,
	}

	for _, opt := range options {
		opt(s)
	}

	return s, nil
}

// Create verifies the access token and, only on success, writes both
// cookies to the response. Verification failure returns
// identity.ErrInvalidToken and leaves the response untouched.
func (s *Store) Create(ctx context.Context, w http.ResponseWriter, accessToken, refreshToken string) (*Session, error) {
	if accessToken == "" || refreshToken == "" {
		return nil, identity.ErrInvalidToken
	}

	subject, err := s.verifier.Verify(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	s.setCookie(w, AccessTokenCookie, accessToken)
	s.setCookie(w, RefreshTokenCookie, refreshToken)

	return &Session{SubjectID: subject.ID, Email: subject.Email}, nil
}

// Destroy expires both cookies. Destroying an absent session is not an
// error.
func (s *Store) Destroy(w http.ResponseWriter) {
	s.clearCookie(w, AccessTokenCookie)
	s.clearCookie(w, RefreshTokenCookie)
}

// Read reconstructs the session from the request's cookie pair. If either
// cookie is missing the verifier is never called. A failed verification
// yields ErrNoSession; the stale cookies are left in place and only
// removed by an explicit Destroy.
func (s *Store) Read(ctx context.Context, r *http.Request) (*Session, error) {
	accessCookie, err := r.Cookie(AccessTokenCookie)
	if err != nil || accessCookie.Value == "" {
		return nil, ErrNoSession
	}
	refreshCookie, err := r.Cookie(RefreshTokenCookie)
	if err != nil || refreshCookie.Value == "" {
		return nil, ErrNoSession
	}

	subject, err := s.verifier.Verify(ctx, accessCookie.Value)
	if err != nil {
		if errors.Is(err, identity.ErrProviderUnavailable) {
			return nil, err
		}
		return nil, ErrNoSession
	}

	return &Session{SubjectID: subject.ID, Email: subject.Email}, nil
}

// AccessToken returns the raw access token from the request, without
// verifying it. Used on logout to tell the provider which token to
// revoke.
func AccessToken(r *http.Request) string {
	cookie, err := r.Cookie(AccessTokenCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (s *Store) setCookie(w http.ResponseWriter, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(s.maxAge.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Store) clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
