package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/valentincuzin/usergate/internal/users/service"
	"github.com/valentincuzin/usergate/internal/users/store"
	"github.com/valentincuzin/usergate/pkg/httpx"
	"github.com/valentincuzin/usergate/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers and wires the
// endpoint table.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	startTime time.Time
	logger    *slog.Logger

	store          store.Store
	SessionService *service.SessionService
	UserService    *service.UserService
}

func NewRouter(st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:       http.NewServeMux(),
		startTime: time.Now(),
		store:     st,
		logger:    logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerSessions()
	r.registerUsers()
	r.registerSystem()
}

// ServeHTTP implements http.Handler and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerSessions() {
	login := &LoginHandler{Sessions: r.SessionService}
	logout := &LogoutHandler{Sessions: r.SessionService}
	authenticate := &AuthenticateHandler{Sessions: r.SessionService}

	// Credential endpoint: strict limit against brute force.
	r.Mux.Handle("POST /login",
		httpx.Chain(login, httpx.RateLimitByIP(httpx.StrictLimit)),
	)

	r.Mux.Handle("POST /logout",
		httpx.Chain(logout, httpx.RateLimitByIP(httpx.StrictLimit)),
	)

	// The downstream collaborator calls this on every request it
	// serves, so the limit is deliberately loose.
	r.Mux.Handle("GET /authenticate",
		httpx.Chain(authenticate, httpx.RateLimitByIP(httpx.LenientLimit)),
	)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{Users: r.UserService}

	r.Mux.Handle("PUT /users/{login}",
		httpx.Chain(http.HandlerFunc(h.HandleCreate), httpx.RateLimitByIP(httpx.StrictLimit)),
	)
	r.Mux.Handle("DELETE /users/{login}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete), httpx.RateLimitByIP(httpx.StrictLimit)),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /healthz", HealthzHandler(r.startTime, r.store))
}
