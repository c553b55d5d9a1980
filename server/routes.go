package server

func (s *Server) initRoutes() {
	// Public login surface. The inverse guard sends already-authenticated
	// sessions straight to the landing route; the forward guard never
	// wraps these, so the pair cannot loop.
	s.RegisterRouteHandler("GET /{$}", ChainMiddleware(s.LoginPageHandler(), s.HTMLMiddleWare(s.EnsureSession(), s.RedirectIfAuthenticated())...))
	s.RegisterRouteHandler("GET "+RouteLogin, ChainMiddleware(s.LoginPageHandler(), s.HTMLMiddleWare(s.EnsureSession(), s.RedirectIfAuthenticated())...))
	s.RegisterRouteHandler("GET "+RouteLoginSelect, ChainMiddleware(s.SelectOrganizationPageHandler(), s.HTMLMiddleWare(s.EnsureSession(), s.RedirectIfAuthenticated())...))

	// LOGIN FLOW
	s.RegisterRouteHandler("POST "+RouteAuthLogin, ChainMiddleware(s.LoginSubmissionHandler(), s.HTMLMiddleWare(s.EnsureSession())...))
	s.RegisterRouteHandler("POST "+RouteAuthSelectOrg, ChainMiddleware(s.SelectOrganizationSubmissionHandler(), s.HTMLMiddleWare(s.EnsureSession())...))
	s.RegisterRouteHandler("POST "+RouteAuthLoginBack, ChainMiddleware(s.LoginBackHandler(), s.HTMLMiddleWare(s.EnsureSession())...))
	s.RegisterRouteHandler("GET "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleWare(s.EnsureSession())...))

	// Authenticated pages
	s.RegisterRouteHandler("GET "+RouteHome, ChainMiddleware(s.HomeHandler(), s.HTMLMiddleWare(s.EnsureSession(), s.RequireAuth())...))
	s.RegisterRouteHandler("GET "+RouteContact, ChainMiddleware(s.ContactHandler(), s.HTMLMiddleWare(s.EnsureSession(), s.RequireAuth())...))

	// Capability-gated pages (capability name is the route path)
	s.RegisterRouteHandler("GET "+RouteDashboardMail, ChainMiddleware(s.MailDailyHandler(), s.HTMLMiddleWare(s.EnsureSession(), s.RequireAuth(), s.RequireCapability(RouteDashboardMail))...))

	// Public pages
	s.RegisterRouteHandler("GET "+RouteUnauthorized, ChainMiddleware(s.UnauthorizedHandler(), s.HTMLMiddleWare(s.EnsureSession())...))

	// Preference updates (persisted on the session)
	s.RegisterRouteHandler("POST "+RouteUITheme, ChainMiddleware(s.ThemeUpdateHandler(), s.HTMLMiddleWare(s.EnsureSession())...))
	s.RegisterRouteHandler("POST "+RouteUILanguage, ChainMiddleware(s.LanguageUpdateHandler(), s.HTMLMiddleWare(s.EnsureSession())...))
	s.RegisterRouteHandler("POST "+RouteUIOrganization, ChainMiddleware(s.OrganizationUpdateHandler(), s.HTMLMiddleWare(s.EnsureSession())...))

	// JSON API
	s.RegisterRouteHandler("GET "+RouteAPINav, ChainMiddleware(s.NavHandler(), append(s.APIMiddleware(), s.EnsureSession())...))

	// Static assets
	s.RegisterRouteHandler("GET "+RouteStaticCSS, ChainMiddleware(s.StaticFileHandler(), s.HTMLMiddleWare(s.CacheMiddleware)...))

	// Catch-all not found
	s.RegisterRouteHandler("/", ChainMiddleware(s.NotFoundHandler(), s.HTMLMiddleWare(s.EnsureSession())...))
}
