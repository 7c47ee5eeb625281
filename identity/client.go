package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const defaultRequestTimeout = 10 * time.Second

// Client talks to a GoTrue-style identity provider over its REST API.
// It is constructed once at startup and injected into every component
// that needs it; there is no package-level instance.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// ClientOption modifies a Client during construction.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client (primarily for testing).
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient validates the provider endpoint configuration and returns a
// ready client. Configuration is checked here, once, and held immutable.
func NewClient(baseURL, apiKey string, options ...ClientOption) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("[identity.NewClient] baseURL is required")
	}
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		return nil, errors.New("[identity.NewClient] baseURL must start with http:// or https://")
	}
	if apiKey == "" {
		return nil, errors.New("[identity.NewClient] apiKey is required")
	}

	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
	}

	for _, opt := range options {
		opt(c)
	}

	return c, nil
}

// GetUser introspects an access token and returns the subject it belongs
// to. Every definite rejection maps to ErrInvalidToken; only transport
// failures surface as ErrProviderUnavailable. Results are never cached.
func (c *Client) GetUser(ctx context.Context, accessToken string) (*Subject, error) {
	if strings.TrimSpace(accessToken) == "" {
		return nil, ErrInvalidToken
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, errors.Wrap(err, "[Client.GetUser] build request")
	}
	c.setAuthHeaders(req, accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(ErrProviderUnavailable, err.Error())
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var subject Subject
		if err := json.NewDecoder(resp.Body).Decode(&subject); err != nil {
			return nil, errors.Wrap(ErrProviderUnavailable, "decode user response")
		}
		if subject.ID == "" {
			return nil, ErrInvalidToken
		}
		return &subject, nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, ErrInvalidToken
	default:
		return nil, errors.Wrapf(ErrProviderUnavailable, "status %d", resp.StatusCode)
	}
}

// SignInWithPassword exchanges an email/password for a credential pair.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*CredentialPair, error) {
	return c.tokenRequest(ctx, "/auth/v1/token?grant_type=password", email, password, ErrInvalidCredentials)
}

// SignUp registers a new account with the provider. Providers configured
// without email confirmation return a credential pair immediately, which
// is what the registration flow expects.
func (c *Client) SignUp(ctx context.Context, email, password string) (*CredentialPair, error) {
	return c.tokenRequest(ctx, "/auth/v1/signup", email, password, ErrEmailTaken)
}

// SignOut revokes the refresh token family behind an access token. A
// rejection is not an error for the caller: the local cookies are cleared
// regardless.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/v1/logout", nil)
	if err != nil {
		return errors.Wrap(err, "[Client.SignOut] build request")
	}
	c.setAuthHeaders(req, accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(ErrProviderUnavailable, err.Error())
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 500 {
		return errors.Wrapf(ErrProviderUnavailable, "status %d", resp.StatusCode)
	}
	return nil
}

type tokenResponse struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	User         *Subject `json:"user,omitempty"`
}

type providerError struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Msg              string `json:"msg"`
}

func (c *Client) tokenRequest(ctx context.Context, path, email, password string, denialErr error) (*CredentialPair, error) {
	if email == "" || password == "" {
		return nil, denialErr
	}

	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, errors.Wrap(err, "[Client.tokenRequest] marshal body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "[Client.tokenRequest] build request")
	}
	req.Header.Set("Content-Type", "application/json")
	c.setAuthHeaders(req, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(ErrProviderUnavailable, err.Error())
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var tr tokenResponse
		if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
			return nil, errors.Wrap(ErrProviderUnavailable, "decode token response")
		}
		if tr.AccessToken == "" || tr.RefreshToken == "" {
			return nil, denialErr
		}
		return &CredentialPair{AccessToken: tr.AccessToken, RefreshToken: tr.RefreshToken}, nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		var pe providerError
		_ = json.NewDecoder(resp.Body).Decode(&pe)
		if msg := firstNonEmpty(pe.ErrorDescription, pe.Msg, pe.Error); msg != "" {
			return nil, fmt.Errorf("%w: %s", denialErr, msg)
		}
		return nil, denialErr
	default:
		return nil, errors.Wrapf(ErrProviderUnavailable, "status %d", resp.StatusCode)
	}
}

func (c *Client) setAuthHeaders(req *http.Request, accessToken string) {
	req.Header.Set("apikey", c.apiKey)
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	} else {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
