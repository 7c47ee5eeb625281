package server

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/updeals/retailer-portal/guard"
	"github.com/updeals/retailer-portal/session"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeySession stores the authenticated session
	ContextKeySession ContextKey = "session"
	// ContextKeyAccess stores the approved-retailer access result
	ContextKeyAccess ContextKey = "access"
)

// SessionFromContext returns the session injected by RequireSessionAuth.
func SessionFromContext(ctx context.Context) *session.Session {
	sess, _ := ctx.Value(ContextKeySession).(*session.Session)
	return sess
}

// AccessFromContext returns the access injected by RequireApprovedRetailer.
func AccessFromContext(ctx context.Context) *guard.Access {
	access, _ := ctx.Value(ContextKeyAccess).(*guard.Access)
	return access
}

// RequireSessionAuth is middleware for server-rendered routes that only
// need a valid session (e.g. the pending page). Unauthenticated requests
// are redirected to the sign-in page.
func (s *Server) RequireSessionAuth() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			sess, failure := s.gate.RequireAuthenticated(r.Context(), r)
			if failure != nil {
				s.denyPage(w, r, failure)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeySession, sess)
			next(w, r.WithContext(ctx))
		}
	}
}

// RequireApprovedRetailer guards the dashboard. The full chain (session,
// profile role, retailer linkage, approval status) is re-resolved on every
// request so an admin rejection takes effect immediately.
func (s *Server) RequireApprovedRetailer() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			access, failure := s.gate.RequireApprovedRetailer(r.Context(), r)
			if failure != nil {
				s.denyPage(w, r, failure)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyAccess, access)
			next(w, r.WithContext(ctx))
		}
	}
}

// denyPage applies the redirect policy for page routes:
//   - not logged in (or no profile yet) -> sign-in page
//   - logged in but not entitled -> pending/status page
//   - infrastructure fault -> 500
//
// Entitlement failures redirect silently; they are routine states, not
// errors to display.
func (s *Server) denyPage(w http.ResponseWriter, r *http.Request, failure *guard.Failure) {
	if failure.Kind == guard.Transient {
		log.Error().Err(failure.Err).Str("path", r.URL.Path).Msg("authorization check failed")
		s.metrics.IncrementIdentityProviderErrors()
		http.Error(w, "Service temporarily unavailable", http.StatusInternalServerError)
		return
	}

	s.metrics.IncrementGuardDenials(string(failure.Kind))

	switch failure.Kind {
	case guard.Unauthorized, guard.ProfileMissing:
		http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
	default:
		http.Redirect(w, r, RoutePending, http.StatusSeeOther)
	}
}
