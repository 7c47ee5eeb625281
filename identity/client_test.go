package identity_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/updeals/retailer-portal/identity"
)

const (
	testAPIKey       = "anon-key-1234"
	testSubjectID    = "5f8b0e6e-1d7a-4a8e-9a53-0f3f8d2c9b11"
	testSubjectEmail = "owner@shop.example"
	testAccessToken  = "valid-access-token"
	testRefreshToken = "valid-refresh-token"
)

// newFakeProvider stands in for the hosted identity provider. It accepts
// exactly one access token and one email/password pair.
func newFakeProvider(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /auth/v1/user", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("apikey") != testAPIKey {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.Header.Get("Authorization") != "Bearer "+testAccessToken {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"msg": "invalid JWT"})
			return
		}
		_ = json.NewEncoder(w).Encode(identity.Subject{ID: testSubjectID, Email: testSubjectEmail})
	})
	mux.HandleFunc("POST /auth/v1/token", func(w http.ResponseWriter, r *http.Request) {
		var body struct{ Email, Password string }
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Email != testSubjectEmail || body.Password != "correct-horse" {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error_description": "Invalid login credentials"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token":  testAccessToken,
			"refresh_token": testRefreshToken,
			"user":          identity.Subject{ID: testSubjectID, Email: testSubjectEmail},
		})
	})
	mux.HandleFunc("POST /auth/v1/signup", func(w http.ResponseWriter, r *http.Request) {
		var body struct{ Email, Password string }
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Email == testSubjectEmail {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_ = json.NewEncoder(w).Encode(map[string]string{"msg": "User already registered"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "fresh-access-token",
			"refresh_token": "fresh-refresh-token",
		})
	})
	mux.HandleFunc("POST /auth/v1/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	return httptest.NewServer(mux)
}

func newTestClient(t *testing.T, baseURL string) *identity.Client {
	t.Helper()
	client, err := identity.NewClient(baseURL, testAPIKey)
	require.NoError(t, err)
	return client
}

func TestNewClientValidatesConfiguration(t *testing.T) {
	_, err := identity.NewClient("", testAPIKey)
	require.Error(t, err)

	_, err = identity.NewClient("not-a-url", testAPIKey)
	require.Error(t, err)

	_, err = identity.NewClient("https://project.example", "")
	require.Error(t, err)
}

func TestGetUserResolvesSubject(t *testing.T) {
	provider := newFakeProvider(t)
	defer provider.Close()
	client := newTestClient(t, provider.URL)

	subject, err := client.GetUser(context.Background(), testAccessToken)
	require.NoError(t, err)
	require.Equal(t, testSubjectID, subject.ID)
	require.Equal(t, testSubjectEmail, subject.Email)
}

func TestGetUserRejectionsAreUniform(t *testing.T) {
	provider := newFakeProvider(t)
	defer provider.Close()
	client := newTestClient(t, provider.URL)

	for _, token := range []string{"", "   ", "expired-token", "garbage"} {
		_, err := client.GetUser(context.Background(), token)
		require.ErrorIs(t, err, identity.ErrInvalidToken, "token %q", token)
	}
}

func TestGetUserProviderDownIsTransient(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer provider.Close()
	client := newTestClient(t, provider.URL)

	_, err := client.GetUser(context.Background(), testAccessToken)
	require.ErrorIs(t, err, identity.ErrProviderUnavailable)
}

func TestGetUserUnreachableProviderIsTransient(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:1")

	_, err := client.GetUser(context.Background(), testAccessToken)
	require.ErrorIs(t, err, identity.ErrProviderUnavailable)
}

func TestSignInWithPassword(t *testing.T) {
	provider := newFakeProvider(t)
	defer provider.Close()
	client := newTestClient(t, provider.URL)

	pair, err := client.SignInWithPassword(context.Background(), testSubjectEmail, "correct-horse")
	require.NoError(t, err)
	require.Equal(t, testAccessToken, pair.AccessToken)
	require.Equal(t, testRefreshToken, pair.RefreshToken)

	_, err = client.SignInWithPassword(context.Background(), testSubjectEmail, "wrong")
	require.ErrorIs(t, err, identity.ErrInvalidCredentials)

	_, err = client.SignInWithPassword(context.Background(), "", "")
	require.ErrorIs(t, err, identity.ErrInvalidCredentials)
}

func TestSignUp(t *testing.T) {
	provider := newFakeProvider(t)
	defer provider.Close()
	client := newTestClient(t, provider.URL)

	pair, err := client.SignUp(context.Background(), "new@shop.example", "correct-horse")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	_, err = client.SignUp(context.Background(), testSubjectEmail, "correct-horse")
	require.ErrorIs(t, err, identity.ErrEmailTaken)
}

func TestSignOutToleratesRejection(t *testing.T) {
	provider := newFakeProvider(t)
	defer provider.Close()
	client := newTestClient(t, provider.URL)

	require.NoError(t, client.SignOut(context.Background(), testAccessToken))
	require.NoError(t, client.SignOut(context.Background(), "already-revoked"))
}
