package server

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"
	"github.com/updeals/retailer-portal/identity"
	"github.com/updeals/retailer-portal/retailers"
)

// RegisterPageData contains data for rendering the registration page
type RegisterPageData struct {
	AppName      string
	Error        string
	Email        string
	BusinessName string
	ContactName  string
}

// RegisterPageHandler displays the retailer registration page (GET /register)
func (s *Server) RegisterPageHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("register.html")
	if err != nil {
		panic("Failed to parse register template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		data := RegisterPageData{
			AppName:      s.config.GetAppName(),
			Error:        q.Get("error"),
			Email:        q.Get("email"),
			BusinessName: q.Get("business_name"),
			ContactName:  q.Get("contact_name"),
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := tmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render register template")
			http.Error(w, "Failed to render registration page", http.StatusInternalServerError)
		}
	}
}

// RegisterSubmissionHandler provisions a new retailer account: provider
// sign-up, then the privileged account-creation function, then a session.
// The new account always starts pending, so the visitor lands on the
// status page.
func (s *Server) RegisterSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		email := r.FormValue("email")
		password := r.FormValue("password")
		businessName := r.FormValue("business_name")
		contactName := r.FormValue("contact_name")

		if email == "" || password == "" || businessName == "" {
			s.renderRegisterError(w, r, "Email, password and business name are required", email, businessName, contactName)
			return
		}

		pair, err := s.identity.SignUp(r.Context(), email, password)
		if err != nil {
			switch {
			case errors.Is(err, identity.ErrEmailTaken):
				s.renderRegisterError(w, r, "An account with this email already exists", email, businessName, contactName)
			case errors.Is(err, identity.ErrProviderUnavailable):
				log.Error().Err(err).Msg("sign-up failed: provider unavailable")
				s.metrics.IncrementIdentityProviderErrors()
				s.renderRegisterError(w, r, "Service temporarily unavailable, please try again", email, businessName, contactName)
			default:
				s.renderRegisterError(w, r, "Registration failed, please try again", email, businessName, contactName)
			}
			return
		}

		sess, err := s.sessions.Create(r.Context(), w, pair.AccessToken, pair.RefreshToken)
		if err != nil {
			s.metrics.IncrementSessionCreateFailures()
			log.Error().Err(err).Msg("session creation after sign-up failed")
			s.renderRegisterError(w, r, "Registration failed, please try again", email, businessName, contactName)
			return
		}
		s.metrics.IncrementSessionCreations()

		params := retailers.CreateAccountParams{
			SubjectID:    sess.SubjectID,
			Email:        email,
			BusinessName: businessName,
			ContactName:  contactName,
		}
		if _, err := s.repos.Retailers.CreateAccount(r.Context(), params); err != nil {
			// The provider account exists but the retailer row does not.
			// The dashboard guard denies this state, so send the visitor to
			// the status page where support can pick it up.
			log.Error().Err(err).Str("subject_id", sess.SubjectID).Msg("retailer account creation failed")
		}

		redirectSuccess(w, r, RoutePending)
	}
}

func (s *Server) renderRegisterError(w http.ResponseWriter, r *http.Request, errorMsg, email, businessName, contactName string) {
	redirectURL := RouteRegister + "?error=" + url.QueryEscape(errorMsg)
	if email != "" {
		redirectURL += "&email=" + url.QueryEscape(email)
	}
	if businessName != "" {
		redirectURL += "&business_name=" + url.QueryEscape(businessName)
	}
	if contactName != "" {
		redirectURL += "&contact_name=" + url.QueryEscape(contactName)
	}

	redirectSuccess(w, r, redirectURL)
}
