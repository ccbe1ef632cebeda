package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/kay-express/admin-console/auth"
	"github.com/kay-express/admin-console/internal/config"
	"github.com/kay-express/admin-console/services"
	"github.com/kay-express/admin-console/session"
	"github.com/kay-express/admin-console/upstream"
)

type Server struct {
	env    string // Environment (e.g., "DEV", "production")
	mux    *http.ServeMux
	routes []string
	config config.Config

	store session.Store
	api   *upstream.Client
	authn *auth.Authenticator

	clients  *services.ClientService
	buses    *services.BusService
	catalog  *services.RouteService
	trips    *services.TripService
	bookings *services.BookingService
	luggage  *services.LuggageService
	agents   *services.AgentService
}

func New(cfg config.Config) (*Server, error) {
	store, err := newSessionStore(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "[Server New] failed to create session store")
	}
	return NewWithStore(cfg, store)
}

// NewWithStore wires the server around an explicit session store. Tests
// inject an in-memory store here.
func NewWithStore(cfg config.Config, store session.Store) (*Server, error) {
	s := &Server{
		mux:    http.NewServeMux(),
		config: cfg,
		store:  store,
	}
	s.env = cfg.GetEnv()

	// The API client reads the bearer credential from the per-request
	// session snapshot and escalates 401s into the per-request sign-out
	// scope. Both hooks are context-bound so the client itself stays free
	// of any HTTP-server types.
	s.api = upstream.New(cfg.GetAPIBaseURL(),
		upstream.WithTokenSource(func(ctx context.Context) string {
			if sess := SessionFromContext(ctx); sess != nil {
				return sess.AccessToken
			}
			return ""
		}),
		upstream.WithAuthFailureHook(func(ctx context.Context) {
			if scope := scopeFromContext(ctx); scope != nil {
				scope.signOut()
			}
		}),
	)

	s.authn = auth.New(s.api, auth.WithSignOutHook(func(ctx context.Context) {
		if scope := scopeFromContext(ctx); scope != nil {
			scope.signOut()
		}
	}))

	s.clients = services.NewClientService(s.api)
	s.buses = services.NewBusService(s.api)
	s.catalog = services.NewRouteService(s.api)
	s.trips = services.NewTripService(s.api)
	s.bookings = services.NewBookingService(s.api)
	s.luggage = services.NewLuggageService(s.api)
	s.agents = services.NewAgentService(s.api)

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func newSessionStore(cfg config.Config) (session.Store, error) {
	ttl, err := time.ParseDuration(cfg.GetSessionTTL())
	if err != nil {
		return nil, errors.Wrap(err, "invalid SESSION_TTL")
	}

	opts := session.CookieOptions{Secure: cfg.GetEnv() != "DEV"}

	switch cfg.GetSessionBackend() {
	case config.SessionBackendMemory:
		return session.NewRepoStore(session.NewInMemoryRepo(), ttl, opts), nil
	case config.SessionBackendRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.GetRedisAddr()})
		return session.NewRepoStore(session.NewRedisRepo(client), ttl, opts), nil
	case config.SessionBackendCookie:
		secret := cfg.GetSessionSecret()
		if secret == "" {
			if cfg.GetEnv() != "DEV" {
				return nil, errors.New("SESSION_SECRET is required outside DEV")
			}
			log.Warn().Msg("SESSION_SECRET not set, using development key")
			secret = "kay-express-dev-only-secret"
		}
		return session.NewSealedStore(secret, ttl, opts), nil
	default:
		return nil, errors.Errorf("unknown session backend %q", cfg.GetSessionBackend())
	}
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
			log.Debug().Str("method", parts[0]).Str("path", parts[1]).Msg("route")
		} else {
			log.Debug().Str("path", parts[0]).Msg("route")
		}
	}
}
