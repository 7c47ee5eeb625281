package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/updeals/retailer-portal/identity"
	"github.com/updeals/retailer-portal/session"
)

const (
	validToken   = "valid-access-token"
	refreshToken = "refresh-token-1"
	subjectID    = "subject-1"
	subjectEmail = "owner@shop.example"
)

// spyVerifier accepts exactly one token and counts invocations so tests
// can assert the verifier is not called for partial cookie pairs.
type spyVerifier struct {
	calls     int
	transient bool
}

var _ identity.Verifier = (*spyVerifier)(nil)

func (v *spyVerifier) Verify(_ context.Context, accessToken string) (*identity.Subject, error) {
	v.calls++
	if v.transient {
		return nil, identity.ErrProviderUnavailable
	}
	if accessToken != validToken {
		return nil, identity.ErrInvalidToken
	}
	return &identity.Subject{ID: subjectID, Email: subjectEmail}, nil
}

func newTestStore(t *testing.T, verifier identity.Verifier) *session.Store {
	t.Helper()
	store, err := session.NewStore(verifier, false)
	require.NoError(t, err)
	return store
}

// requestWithCookies builds a request carrying the given cookie values,
// skipping any empty ones.
func requestWithCookies(access, refresh string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	if access != "" {
		r.AddCookie(&http.Cookie{Name: session.AccessTokenCookie, Value: access})
	}
	if refresh != "" {
		r.AddCookie(&http.Cookie{Name: session.RefreshTokenCookie, Value: refresh})
	}
	return r
}

func cookieByName(t *testing.T, w *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestCreateSetsBothCookies(t *testing.T) {
	store := newTestStore(t, &spyVerifier{})
	w := httptest.NewRecorder()

	sess, err := store.Create(context.Background(), w, validToken, refreshToken)
	require.NoError(t, err)
	require.Equal(t, subjectID, sess.SubjectID)
	require.Equal(t, subjectEmail, sess.Email)

	access := cookieByName(t, w, session.AccessTokenCookie)
	refresh := cookieByName(t, w, session.RefreshTokenCookie)
	require.NotNil(t, access)
	require.NotNil(t, refresh)
	require.Equal(t, validToken, access.Value)
	require.Equal(t, refreshToken, refresh.Value)

	for _, c := range []*http.Cookie{access, refresh} {
		require.True(t, c.HttpOnly)
		require.Equal(t, "/", c.Path)
		require.Equal(t, http.SameSiteLaxMode, c.SameSite)
		require.Equal(t, int(session.DefaultMaxAge.Seconds()), c.MaxAge)
	}
}

func TestCreateInvalidTokenLeavesCookieJarUnchanged(t *testing.T) {
	store := newTestStore(t, &spyVerifier{})
	w := httptest.NewRecorder()

	_, err := store.Create(context.Background(), w, "bad-token", refreshToken)
	require.ErrorIs(t, err, identity.ErrInvalidToken)
	require.Empty(t, w.Result().Cookies())
}

func TestCreateMissingTokenIsInvalid(t *testing.T) {
	verifier := &spyVerifier{}
	store := newTestStore(t, verifier)
	w := httptest.NewRecorder()

	_, err := store.Create(context.Background(), w, "", refreshToken)
	require.ErrorIs(t, err, identity.ErrInvalidToken)

	_, err = store.Create(context.Background(), w, validToken, "")
	require.ErrorIs(t, err, identity.ErrInvalidToken)

	require.Empty(t, w.Result().Cookies())
	require.Zero(t, verifier.calls)
}

func TestReadPartialPairSkipsVerifier(t *testing.T) {
	verifier := &spyVerifier{}
	store := newTestStore(t, verifier)

	cases := map[string]*http.Request{
		"no cookies":   requestWithCookies("", ""),
		"access only":  requestWithCookies(validToken, ""),
		"refresh only": requestWithCookies("", refreshToken),
	}
	for name, r := range cases {
		_, err := store.Read(context.Background(), r)
		require.ErrorIs(t, err, session.ErrNoSession, name)
	}
	require.Zero(t, verifier.calls)
}

func TestReadRoundTripPreservesSubject(t *testing.T) {
	store := newTestStore(t, &spyVerifier{})
	w := httptest.NewRecorder()

	created, err := store.Create(context.Background(), w, validToken, refreshToken)
	require.NoError(t, err)

	r := requestWithCookies(validToken, refreshToken)
	read, err := store.Read(context.Background(), r)
	require.NoError(t, err)
	require.Equal(t, created.SubjectID, read.SubjectID)
	require.Equal(t, created.Email, read.Email)
}

func TestReadExpiredTokenIsNoSession(t *testing.T) {
	store := newTestStore(t, &spyVerifier{})

	_, err := store.Read(context.Background(), requestWithCookies("expired-token", refreshToken))
	require.ErrorIs(t, err, session.ErrNoSession)
}

func TestReadProviderOutagePropagates(t *testing.T) {
	store := newTestStore(t, &spyVerifier{transient: true})

	_, err := store.Read(context.Background(), requestWithCookies(validToken, refreshToken))
	require.ErrorIs(t, err, identity.ErrProviderUnavailable)
}

func TestDestroyExpiresBothCookies(t *testing.T) {
	store := newTestStore(t, &spyVerifier{})
	w := httptest.NewRecorder()

	store.Destroy(w)

	access := cookieByName(t, w, session.AccessTokenCookie)
	refresh := cookieByName(t, w, session.RefreshTokenCookie)
	require.NotNil(t, access)
	require.NotNil(t, refresh)
	require.Less(t, access.MaxAge, 0)
	require.Less(t, refresh.MaxAge, 0)
	require.Empty(t, access.Value)
	require.Empty(t, refresh.Value)

	// Destroying again is a no-op, not an error.
	store.Destroy(httptest.NewRecorder())
}

func TestDestroyThenReadYieldsNoSession(t *testing.T) {
	store := newTestStore(t, &spyVerifier{})

	// Simulate a browser that honoured the expiry: no cookies remain.
	_, err := store.Read(context.Background(), requestWithCookies("", ""))
	require.ErrorIs(t, err, session.ErrNoSession)
}

func TestAccessTokenHelper(t *testing.T) {
	require.Equal(t, validToken, session.AccessToken(requestWithCookies(validToken, refreshToken)))
	require.Empty(t, session.AccessToken(requestWithCookies("", "")))
}
