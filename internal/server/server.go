// Package server exposes the study service over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mecrobet/marga/internal/logger"
	"github.com/mecrobet/marga/internal/service"
)

// maxUploadBytes caps a multipart request body.
const maxUploadBytes = 32 << 20

// Options configures a Server.
type Options struct {
	CORSOrigins []string
	// GenerationTimeout bounds one generating request end to end. Zero
	// means no bound beyond the client's own per-attempt timeouts.
	GenerationTimeout time.Duration
}

// Server routes HTTP requests to a StudyService.
type Server struct {
	svc  service.StudyService
	log  *logger.Logger
	opts Options
}

func New(svc service.StudyService, log *logger.Logger, opts Options) *Server {
	if log == nil {
		log = logger.NewNop()
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}
	return &Server{svc: svc, log: log, opts: opts}
}

// Router builds the chi router with middleware and every route.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", s.createSession)
		r.Get("/", s.listSessions)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.getSession)
			r.Post("/roadmap", s.generateRoadmap)
			r.Post("/steps/{order}/complete", s.completeStep)
			r.Post("/assignment", s.generateAssignment)
			r.Post("/grade", s.grade)
			r.Get("/export/roadmap", s.exportRoadmap)
			r.Get("/export/feedback", s.exportFeedback)
			r.Get("/export/assignment", s.exportAssignment)
		})
	})

	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		// Generation with retries can take minutes.
		WriteTimeout: 0,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
