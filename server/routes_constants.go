package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Auth Routes - Login & Logout
	RouteLogin         = "/login"
	RouteLoginSelect   = "/login/select-organization"
	RouteAuthLogin     = "/auth/login"
	RouteAuthLoginBack = "/auth/login/back"
	RouteAuthSelectOrg = "/auth/select-organization"
	RouteAuthLogout    = "/auth/logout"

	// Portal pages
	RouteHome          = "/home"
	RouteContact       = "/contact"
	RouteUnauthorized  = "/403"
	RouteDashboardMail = "/dashboard_email"

	// Preference Routes
	RouteUITheme        = "/ui/theme"
	RouteUILanguage     = "/ui/language"
	RouteUIOrganization = "/ui/organization"

	// API Routes
	RouteAPINav = "/api/nav"

	// Static Asset Routes (patterns)
	RouteStaticCSS = "/css/{file}"
)
