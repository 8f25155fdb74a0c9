// Package server exposes the dark-mode engine over HTTP.
package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"nightcss/darkcss"
)

const defaultMaxBodyBytes = 8 << 20

// Previewer renders markup to a PNG screenshot.
type Previewer interface {
	Screenshot(ctx context.Context, html string, width int) ([]byte, error)
}

// Config describes server wiring and runtime behaviour.
type Config struct {
	Engine       *darkcss.Engine
	Previewer    Previewer
	PreviewWidth int
	MaxBodyBytes int64
	Timeout      time.Duration
	Logger       *log.Logger
}

// Server exposes the HTTP handlers.
type Server struct {
	cfg     Config
	router  chi.Router
	handler http.Handler
	engine  *darkcss.Engine
	logger  *log.Logger
}

// New wires a new server with the provided configuration.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Engine == nil {
		cfg.Engine = darkcss.NewEngine(darkcss.Options{Logger: cfg.Logger})
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaultMaxBodyBytes
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	s := &Server{
		cfg:    cfg,
		engine: cfg.Engine,
		logger: cfg.Logger,
	}
	s.router = s.registerRoutes()
	s.handler = withLogging(s.logger, s.router)
	return s
}

// Handler exposes the HTTP handler with middleware applied.
func (s *Server) Handler() http.Handler { return s }

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) registerRoutes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(s.cfg.Timeout))

	r.Get("/ping", s.handlePing)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/darkmode", s.handleDarkMode)
		r.Post("/inspect", s.handleInspect)
		r.Post("/preview", s.handlePreview)
	})
	return r
}
