package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/markdave123-py/TypeSpark/internal/api/handlers"
	appMiddleware "github.com/markdave123-py/TypeSpark/internal/api/middlewares"
	"github.com/markdave123-py/TypeSpark/internal/config"
	"github.com/markdave123-py/TypeSpark/internal/pkg/logger"
)

// Server wraps the HTTP server instance and its handlers.
type Server struct {
	httpServer *http.Server
	log        *logger.Logger
}

// Handlers groups everything the router dispatches to.
type Handlers struct {
	Documents   *handlers.DocumentHandler
	Sessions    *handlers.SessionHandler
	Diagnostics *handlers.DiagnosticsHandler
}

// NewServer builds and wires all routes.
func NewServer(cfg *config.Config, h Handlers, log *logger.Logger) *Server {
	log = logger.OrNop(log)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(appMiddleware.RequestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(api chi.Router) {
		api.Post("/upload", h.Documents.UploadDocument)

		api.Route("/session/{id}", func(s chi.Router) {
			s.Get("/", h.Sessions.GetSession)
			s.Get("/next", h.Sessions.NextItem)
			s.Post("/submit", h.Sessions.Submit)
		})

		api.Route("/diagnostics", func(d chi.Router) {
			d.Get("/system", h.Diagnostics.System)
			d.Get("/pdf", h.Diagnostics.PDF)
			d.Get("/storage", h.Diagnostics.Storage)
		})
	})

	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &Server{httpServer: httpSrv, log: log}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

// Start runs the HTTP server until it is shut down.
func (s *Server) Start() error {
	s.log.Info("HTTP server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}
