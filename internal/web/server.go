// Package web serves the upload interface: a form that accepts ledger
// spreadsheets, runs the normalization pipeline in an isolated session
// directory and offers the generated artifacts for download. Session
// outputs are swept after a TTL.
package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/caixalabs/caixa2alterdata/internal/domain/service"
	"github.com/caixalabs/caixa2alterdata/pkg/config"
)

// Server is the upload web server.
type Server struct {
	cfg     config.Server
	runner  *service.Runner
	sweeper *Sweeper
	router  chi.Router
	logger  *slog.Logger
}

// NewServer builds the server, creating the upload and output roots.
func NewServer(cfg config.Server, mapping *config.Mapping, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	for _, dir := range []string{cfg.UploadDir, cfg.OutputDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	s := &Server{
		cfg:     cfg,
		runner:  service.New(mapping, logger),
		sweeper: NewSweeper([]string{cfg.UploadDir, cfg.OutputDir}, cfg.SessionTTL, logger),
		logger:  logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Get("/", s.handleIndex)
	r.Post("/", s.handleConvert)
	r.Get("/download/{session}/{filename}", s.handleDownload)
	if cfg.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}
	s.router = r
	return s, nil
}

// ListenAndServe starts the session sweeper and blocks serving HTTP.
func (s *Server) ListenAndServe() error {
	if err := s.sweeper.Start(); err != nil {
		return fmt.Errorf("starting session sweeper: %w", err)
	}
	defer s.sweeper.Stop()

	s.logger.Info("upload server listening",
		slog.String("addr", s.cfg.Addr),
		slog.Duration("session_ttl", s.cfg.SessionTTL),
	)

	srv := &http.Server{
		Addr:           s.cfg.Addr,
		Handler:        s.router,
		ReadTimeout:    30 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}
	return srv.ListenAndServe()
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}
