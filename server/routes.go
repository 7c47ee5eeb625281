package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) initRoutes() {
	// Public pages
	s.RegisterRouteFunc("GET "+RouteHome, ChainMiddleware(s.IndexHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteLogin, ChainMiddleware(s.LoginPageHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteRegister, ChainMiddleware(s.RegisterPageHandler(), s.HTMLMiddleware()...))

	// Form submissions
	s.RegisterRouteFunc("POST "+RouteAuthLogin, ChainMiddleware(s.LoginSubmissionHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteAuthRegister, ChainMiddleware(s.RegisterSubmissionHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleware()...))

	// Pending/status page requires a session but not approval
	s.RegisterRouteFunc("GET "+RoutePending, ChainMiddleware(s.PendingPageHandler(), s.HTMLMiddleware(s.RequireSessionAuth())...))

	// Session API
	s.RegisterRouteFunc("POST "+RouteAPISession, ChainMiddleware(s.SessionCreateHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("DELETE "+RouteAPISession, ChainMiddleware(s.SessionDeleteHandler(), s.APIMiddleware()...))

	// Dashboard routes re-check approval on every request
	s.RegisterRouteFunc("GET "+RouteDashboard, ChainMiddleware(s.DashboardHandler(), s.HTMLMiddleware(s.RequireApprovedRetailer())...))
	s.RegisterRouteFunc("GET "+RouteDealNew, ChainMiddleware(s.DealNewPageHandler(), s.HTMLMiddleware(s.RequireApprovedRetailer())...))
	s.RegisterRouteFunc("POST "+RouteDeals, ChainMiddleware(s.DealCreateHandler(), s.HTMLMiddleware(s.RequireApprovedRetailer())...))

	// Operational
	s.RegisterRouteHandler("GET "+RouteMetrics, promhttp.Handler())
	s.RegisterRouteHandler("GET "+RouteStatic, http.StripPrefix(RouteStatic, s.fileServer))
}
