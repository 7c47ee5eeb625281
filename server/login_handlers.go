package server

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"
	"github.com/updeals/retailer-portal/identity"
)

// LoginPageData contains data for rendering the login page
type LoginPageData struct {
	AppName string
	Error   string
	Email   string // Preserve email on error
}

// LoginPageHandler displays the login page (GET /login)
func (s *Server) LoginPageHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("login.html")
	if err != nil {
		panic("Failed to parse login template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		data := LoginPageData{
			AppName: s.config.GetAppName(),
			Error:   r.URL.Query().Get("error"),
			Email:   r.URL.Query().Get("email"),
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := tmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render login template")
			http.Error(w, "Failed to render login page", http.StatusInternalServerError)
		}
	}
}

// LoginSubmissionHandler processes the login form submission
func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		email := r.FormValue("email")
		password := r.FormValue("password")

		if email == "" || password == "" {
			s.renderLoginError(w, r, "Email and password are required", email)
			return
		}

		pair, err := s.identity.SignInWithPassword(r.Context(), email, password)
		if err != nil {
			if errors.Is(err, identity.ErrProviderUnavailable) {
				log.Error().Err(err).Msg("sign-in failed: provider unavailable")
				s.metrics.IncrementIdentityProviderErrors()
				s.renderLoginError(w, r, "Service temporarily unavailable, please try again", email)
				return
			}
			s.renderLoginError(w, r, "Invalid email or password", email)
			return
		}

		sess, err := s.sessions.Create(r.Context(), w, pair.AccessToken, pair.RefreshToken)
		if err != nil {
			s.metrics.IncrementSessionCreateFailures()
			log.Error().Err(err).Msg("session creation after sign-in failed")
			s.renderLoginError(w, r, "Sign in failed, please try again", email)
			return
		}

		s.metrics.IncrementSessionCreations()
		redirectSuccess(w, r, s.postLoginPath(r.Context(), sess.SubjectID))
	}
}

// renderLoginError redirects back to the login page with an error message
func (s *Server) renderLoginError(w http.ResponseWriter, r *http.Request, errorMsg, email string) {
	redirectURL := RouteLogin + "?error=" + url.QueryEscape(errorMsg)
	if email != "" {
		redirectURL += "&email=" + url.QueryEscape(email)
	}

	redirectSuccess(w, r, redirectURL)
}
