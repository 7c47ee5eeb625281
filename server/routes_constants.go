package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Public pages
	RouteHome     = "/"
	RouteLogin    = "/login"
	RouteRegister = "/register"
	RoutePending  = "/pending"

	// Auth form submissions
	RouteAuthLogin    = "/auth/login"
	RouteAuthRegister = "/auth/register"
	RouteAuthLogout   = "/auth/logout"

	// Session API (consumed by client-side sign-in)
	RouteAPISession = "/api/auth/session"

	// Retailer dashboard (approved retailers only)
	RouteDashboard = "/dashboard"
	RouteDealNew   = "/dashboard/deals/new"
	RouteDeals     = "/dashboard/deals"

	// Operational
	RouteMetrics = "/metrics"

	// Static assets
	RouteStatic = "/static/"
)
