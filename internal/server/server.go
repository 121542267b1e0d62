package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/hongminglow/adboard-be/internal/auth"
	"github.com/hongminglow/adboard-be/internal/config"
	"github.com/hongminglow/adboard-be/internal/http/handlers"
	"github.com/hongminglow/adboard-be/internal/http/respond"
	"github.com/hongminglow/adboard-be/internal/middleware"
	"github.com/hongminglow/adboard-be/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, store storage.Store, hasher auth.Hasher, logger *slog.Logger) *Server {
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           NewRouter(cfg.CORSOrigins, store, hasher, logger),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	return &Server{inner: httpServer}
}

// NewRouter builds the full route tree over store.
func NewRouter(corsOrigins []string, store storage.Store, hasher auth.Hasher, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging(logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(corsOrigins))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respond.JSON(w, http.StatusNotFound, respond.ErrorBody{Status: "error", Message: "route not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respond.JSON(w, http.StatusMethodNotAllowed, respond.ErrorBody{Status: "error", Message: "method not allowed"})
	})

	handlers.NewHealthHandler(time.Now(), store).Register(r)
	handlers.NewAccountHandler(store, hasher, logger).Register(r)
	handlers.NewListingHandler(store, auth.NewAuthenticator(store, hasher), logger).Register(r)
	return r
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
