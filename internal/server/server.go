package server

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/octagoniq/octagoniq-api/internal/config"
	"github.com/octagoniq/octagoniq-api/internal/middleware"
)

// ShutdownTimeout bounds how long in-flight requests get to finish.
const ShutdownTimeout = 15 * time.Second

// Routes is implemented by every handler that mounts endpoints.
type Routes interface {
	Register(mux *http.ServeMux)
}

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, logger zerolog.Logger, routes ...Routes) *Server {
	mux := http.NewServeMux()
	for _, r := range routes {
		r.Register(mux)
	}

	handler := middleware.CORS(cfg.CORSOrigins, middleware.RequestLogger(logger)(mux))

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// Addr is the listen address.
func (s *Server) Addr() string {
	return s.inner.Addr
}

// Handler exposes the full middleware chain.
func (s *Server) Handler() http.Handler {
	return s.inner.Handler
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
