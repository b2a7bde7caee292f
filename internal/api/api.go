// Package api serves conflict, utilization and availability data over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/javiermolinar/fleetdesk/internal/booking"
	"github.com/javiermolinar/fleetdesk/internal/config"
	"github.com/javiermolinar/fleetdesk/internal/metrics"
)

// Server exposes the dashboard computations as a JSON API.
type Server struct {
	repo    booking.Repository
	config  *config.Config
	logger  *zap.SugaredLogger
	metrics *metrics.Metrics
	now     func() time.Time
}

// New creates a Server. A nil logger discards logs.
func New(repo booking.Repository, cfg *config.Config, logger *zap.SugaredLogger, m *metrics.Metrics) *Server {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if m == nil {
		m = metrics.New("fleetdesk")
	}
	return &Server{
		repo:    repo,
		config:  cfg,
		logger:  logger,
		metrics: m,
		now:     time.Now,
	}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.config.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Use(middleware.Timeout(30 * time.Second))

	r.Handle("/metrics", s.metrics.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", s.healthCheckHandler)

		r.Route("/conflicts", func(r chi.Router) {
			r.Get("/", s.listConflictsHandler)
			r.Post("/check", s.checkConflictsHandler)
		})

		r.Get("/utilization", s.utilizationHandler)
		r.Get("/gaps", s.gapsHandler)
		r.Get("/status", s.statusHandler)
		r.Get("/free", s.freeWindowsHandler)
		r.Get("/suggest/{bookingID}", s.suggestHandler)
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.config.Server.Addr,
		Handler:      s.Handler(),
		WriteTimeout: 30 * time.Second,
		ReadTimeout:  10 * time.Second,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error, 1)
	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Infow("shutting down", "addr", srv.Addr)
		shutdown <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Infow("server has started", "addr", srv.Addr, "storage", s.config.Storage.Driver)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	if err := <-shutdown; err != nil {
		return err
	}

	s.logger.Infow("server has stopped", "addr", srv.Addr)
	return nil
}
