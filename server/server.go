package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/agrovision/portal/access"
	"github.com/agrovision/portal/branding"
	"github.com/agrovision/portal/dashboard"
	"github.com/agrovision/portal/internal/config"
	"github.com/agrovision/portal/server/pendinglogin"
	"github.com/agrovision/portal/server/ui"
	"github.com/agrovision/portal/session"
)

// Deps holds the service dependencies the server routes against.
type Deps struct {
	Sessions  *session.Manager  // session store (two-step login, tokens, preferences)
	Catalogs  *access.Registry  // per-session access-object catalogs
	Pending   pendinglogin.Repo // transient step-1 login results
	Branding  branding.Repo     // organization theming presets
	ImageMaps dashboard.Set     // daily-report image maps per organization
}

type Server struct {
	env    string // Environment (e.g., "DEV", "PROD")
	mux    *http.ServeMux
	routes []string
	config config.Config
	deps   Deps
}

func New(cfg config.Config, deps Deps) (*Server, error) {
	if deps.Sessions == nil {
		return nil, fmt.Errorf("[Server New] session manager is required")
	}
	if deps.Catalogs == nil {
		return nil, fmt.Errorf("[Server New] catalog registry is required")
	}
	if deps.Pending == nil {
		return nil, fmt.Errorf("[Server New] pending login repo is required")
	}
	if deps.Branding == nil {
		return nil, fmt.Errorf("[Server New] branding repo is required")
	}

	s := &Server{
		mux:    http.NewServeMux(),
		config: cfg,
		deps:   deps,
	}
	s.env = cfg.GetEnv()

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := ui.MethodColors[method]; ok {
		displayMethod = color + paddedMethod + ui.ResetColor
	} else {
		displayMethod = ui.Gray + paddedMethod + ui.ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
