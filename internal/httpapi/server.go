// Package httpapi is the bearer-token-authenticated HTTP/JSON request
// surface: route table, auth middleware, and the friend-graph and
// deck-management endpoints.
package httpapi

import (
	"net/http"
	"strings"

	"github.com/cardforge/server/internal/auth"
	"github.com/cardforge/server/internal/data"
	"github.com/cardforge/server/internal/logging"
)

// Server bundles every dependency the HTTP surface needs. It is
// constructed once at startup and holds no package-level state.
type Server struct {
	data           *data.Service
	auth           *auth.Authenticator
	logs           logging.Loggers
	limiters       *ipLimiters
	cardImageBase  string
	commandControl bool

	mux *http.ServeMux
}

// NewServer wires up the route table. commandControlEnabled mirrors the
// fleet-wide kill switch other surfaces expose: when false, every /api/
// route is taken offline (503) while the process keeps running, for
// maintenance windows that don't warrant a restart.
func NewServer(svc *data.Service, authenticator *auth.Authenticator, logs logging.Loggers, cardImageBaseURL string, commandControlEnabled bool) *Server {
	s := &Server{
		data:           svc,
		auth:           authenticator,
		logs:           logs,
		limiters:       newIPLimiters(),
		cardImageBase:  cardImageBaseURL,
		commandControl: commandControlEnabled,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/register", s.handleRegister)
	mux.HandleFunc("POST /api/login", s.handleLogin)
	mux.HandleFunc("POST /api/open_pack", s.requireAuth(s.handleOpenPack))
	mux.HandleFunc("GET /api/collection/{userId}", s.requireAuth(s.handleGetCollection))
	mux.HandleFunc("PUT /api/decks", s.requireAuth(s.handleSaveDeck))
	mux.HandleFunc("GET /api/users/search", s.requireAuth(s.handleSearchUsers))
	mux.HandleFunc("GET /api/friends", s.requireAuth(s.handleListFriends))
	mux.HandleFunc("POST /api/friends/request", s.requireAuth(s.handleFriendRequest))
	mux.HandleFunc("POST /api/friends/response", s.requireAuth(s.handleFriendResponse))
	mux.HandleFunc("DELETE /api/friends/{friendId}", s.requireAuth(s.handleRemoveFriend))

	s.mux = mux
}

// Handler returns the fully wrapped handler (CORS, rate limiting on
// register and login, access log) ready to hand to an http.Server.
func (s *Server) Handler() http.Handler {
	return s.accessLog(s.cors(s.rateLimit(s.commandControlGate(s.mux))))
}

// commandControlGate takes every /api/ route offline when command control
// is disabled, rather than serving requests into a half-shut-down process.
func (s *Server) commandControlGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.commandControl && strings.HasPrefix(r.URL.Path, "/api/") {
			http.Error(w, "API temporarily disabled", http.StatusServiceUnavailable)
			return
		}
		next.ServeHTTP(w, r)
	})
}
