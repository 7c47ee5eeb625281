package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/updeals/retailer-portal/internal/utils"
	"github.com/updeals/retailer-portal/retailers"
	"github.com/updeals/retailer-portal/session"
)

// IndexHandler renders the landing page. Visitors with a live session are
// sent straight to where they belong instead: approved retailers to the
// dashboard, everyone else to the status page.
func (s *Server) IndexHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("index.html")
	if err != nil {
		panic("Failed to parse index template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.sessions.Read(r.Context(), r)
		if err == nil && sess != nil {
			http.Redirect(w, r, s.postLoginPath(r.Context(), sess.SubjectID), http.StatusSeeOther)
			return
		}

		data := map[string]interface{}{
			"AppName": s.config.GetAppName(),
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		_ = tmpl.Execute(w, data)
	}
}

// PendingPageHandler renders the account-status page for retailers who are
// signed in but not (or no longer) approved. Middleware guarantees a
// session; the retailer status is looked up only to pick the message.
func (s *Server) PendingPageHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("pending.html")
	if err != nil {
		panic("Failed to parse pending template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		sess := SessionFromContext(r.Context())
		if sess == nil {
			http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
			return
		}

		data := PendingPageData{
			AppName:      s.config.GetAppName(),
			Email:        sess.Email,
			SupportEmail: s.config.GetSupportEmail(),
			Status:       string(retailers.StatusPending),
		}

		profile, err := s.repos.Profiles.GetByID(r.Context(), sess.SubjectID)
		if err == nil && profile != nil && profile.RetailerID != nil {
			status, err := s.repos.Retailers.GetStatus(r.Context(), *profile.RetailerID)
			if err == nil {
				data.Status = string(status)
			}
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		_ = tmpl.Execute(w, data)
	}
}

// PendingPageData contains data for rendering the account-status page
type PendingPageData struct {
	AppName      string
	Email        string
	SupportEmail string
	Status       string
}

// LogoutHandler revokes the provider session (best effort) and clears the
// cookie pair, then sends the visitor back to the landing page.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if token := session.AccessToken(r); token != "" {
			if err := s.identity.SignOut(r.Context(), token); err != nil {
				log.Warn().Err(err).Msg("provider sign-out failed")
			}
		}

		s.sessions.Destroy(w)
		redirectSuccess(w, r, RouteHome)
	}
}

// postLoginPath decides where a freshly authenticated subject lands.
// Linked retailers go to the dashboard only when approved; everyone else
// is routed through the dashboard guard, which re-checks entitlement and
// redirects as needed.
func (s *Server) postLoginPath(ctx context.Context, subjectID string) string {
	profile, err := s.repos.Profiles.GetByID(ctx, subjectID)
	if err != nil || profile == nil {
		return RouteDashboard
	}

	if retailerID := utils.Value(profile.RetailerID); profile.IsRetailer() && retailerID != "" {
		status, err := s.repos.Retailers.GetStatus(ctx, retailerID)
		if err != nil {
			if errors.Is(err, retailers.ErrNotFound) {
				return RoutePending
			}
			return RouteDashboard
		}
		if status.Approved() {
			return RouteDashboard
		}
		return RoutePending
	}

	return RouteDashboard
}
