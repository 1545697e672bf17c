package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"devchatClient/internal/guard"
	"devchatClient/internal/metrics"
	"devchatClient/internal/middleware"
)

// NewRouter wires every page of the web client. Guarded routes go through
// the session and guard middlewares; /health and /metrics do not touch the
// session.
func NewRouter(h *Handlers) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(h.NotFound)

	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	pages := r.NewRoute().Subrouter()
	pages.Use(mux.MiddlewareFunc(middleware.SessionMiddleware(h.Store, h.Cfg)))

	limit := middleware.RateLimitMiddleware(h.Cfg.AuthRateLimit)
	pages.HandleFunc("/", h.Home).Methods(http.MethodGet)
	pages.HandleFunc("/login", h.LoginPage).Methods(http.MethodGet)
	pages.Handle("/login", limit(http.HandlerFunc(h.Login))).Methods(http.MethodPost)
	pages.HandleFunc("/register", h.RegisterPage).Methods(http.MethodGet)
	pages.Handle("/register", limit(http.HandlerFunc(h.Register))).Methods(http.MethodPost)
	pages.HandleFunc("/logout", h.Logout).Methods(http.MethodPost)

	loading := http.HandlerFunc(h.Loading)
	protected := middleware.GuardMiddleware(guard.Protected, loading)
	userOnly := middleware.GuardMiddleware(guard.User, loading)
	adminOnly := middleware.GuardMiddleware(guard.Admin, loading)

	route := func(path string, guardFn middleware.Middleware, fn http.HandlerFunc, method string) {
		pages.Handle(path, guardFn(fn)).Methods(method)
	}

	route("/dashboard", protected, h.Dashboard, http.MethodGet)
	route("/threads", protected, h.Threads, http.MethodGet)
	route("/thread/{id:[0-9]+}", protected, h.ThreadDetail, http.MethodGet)
	route("/thread/{id:[0-9]+}/edit", protected, h.UpdateThread, http.MethodPost)
	route("/thread/{id:[0-9]+}/delete", protected, h.DeleteThread, http.MethodPost)
	route("/thread/{id:[0-9]+}/messages", protected, h.Reply, http.MethodPost)
	route("/messages/{id:[0-9]+}/edit", protected, h.UpdateMessage, http.MethodPost)
	route("/messages/{id:[0-9]+}/delete", protected, h.DeleteMessage, http.MethodPost)
	route("/messages/{id:[0-9]+}/vote", protected, h.Vote, http.MethodPost)
	route("/messages/{id:[0-9]+}/votes", protected, h.VoteCounts, http.MethodGet)

	route("/create-thread", userOnly, h.CreateThreadPage, http.MethodGet)
	route("/create-thread", userOnly, h.CreateThread, http.MethodPost)

	route("/admin", adminOnly, h.AdminDashboard, http.MethodGet)
	route("/admin/verify/{id:[0-9]+}", adminOnly, h.VerifyUser, http.MethodPost)

	return middleware.Chain(r, middleware.LoggingMiddleware)
}
