// Package web provides the HTTP surface of the contact import engine.
package web

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/propfolio/streetfarm/internal/config"
	"github.com/propfolio/streetfarm/internal/importer"
	"github.com/propfolio/streetfarm/internal/web/middleware"
)

// ImportService runs the import pipeline for one uploaded file. Implemented
// by *service.Service.
type ImportService interface {
	Import(ctx context.Context, suburb, fileName string, file io.Reader) (*importer.Outcome, error)
	Preview(ctx context.Context, suburb, fileName string, file io.Reader) (*importer.Outcome, error)
}

// Pinger reports backend health. Implemented by *store.Store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server is the HTTP server for the import API.
type Server struct {
	service ImportService
	health  Pinger
	cfg     *config.Config
	router  *chi.Mux
	server  *http.Server
}

// NewServer creates a Server with routing and middleware configured.
func NewServer(service ImportService, health Pinger, cfg *config.Config) *Server {
	s := &Server{
		service: service,
		health:  health,
		cfg:     cfg,
		router:  chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(chimw.RequestID)
	s.router.Use(middleware.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(middleware.Logger)
	s.router.Use(chimw.Recoverer)
	s.router.Use(chimw.Timeout(s.cfg.Server.RequestTimeout))
}

func (s *Server) setupRoutes() {
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Post("/import/{suburb}", s.handleImport)
		r.Post("/preview/{suburb}", s.handlePreview)
	})
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}
