package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/updeals/retailer-portal/deals"
	"github.com/updeals/retailer-portal/guard"
	"github.com/updeals/retailer-portal/identity"
	"github.com/updeals/retailer-portal/internal/config"
	"github.com/updeals/retailer-portal/internal/metrics"
	"github.com/updeals/retailer-portal/profiles"
	"github.com/updeals/retailer-portal/retailers"
	"github.com/updeals/retailer-portal/session"
)

// Repos holds the data-store dependencies for the Server.
type Repos struct {
	Profiles  profiles.Repo
	Retailers retailers.Repo
	Deals     deals.Repo
}

type Server struct {
	env        string
	mux        *http.ServeMux
	routes     []string
	fileServer http.Handler
	config     config.Config
	identity   *identity.Client
	sessions   *session.Store
	gate       *guard.Gate
	repos      Repos
	metrics    *metrics.Metrics
}

func New(cfg config.Config, identityClient *identity.Client, sessionStore *session.Store, repos Repos, m *metrics.Metrics) (*Server, error) {
	if identityClient == nil {
		return nil, errors.New("[Server New] identity client is required")
	}
	if sessionStore == nil {
		return nil, errors.New("[Server New] session store is required")
	}
	if repos.Profiles == nil || repos.Retailers == nil || repos.Deals == nil {
		return nil, errors.New("[Server New] all repos are required")
	}
	if m == nil {
		return nil, errors.New("[Server New] metrics are required")
	}

	gate, err := guard.NewGate(sessionStore, repos.Profiles, repos.Retailers)
	if err != nil {
		return nil, errors.Wrap(err, "[Server New] failed to create authorization gate")
	}

	s := &Server{
		mux:      http.NewServeMux(),
		config:   cfg,
		identity: identityClient,
		sessions: sessionStore,
		gate:     gate,
		repos:    repos,
		metrics:  m,
	}
	s.env = cfg.GetEnv()
	s.fileServer = FileServerHandler()

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
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
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
