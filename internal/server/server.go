// Package server exposes the leaderboard over HTTP and serves the game
// frontend.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cjunker/bb-bounce/internal/config"
	"github.com/cjunker/bb-bounce/internal/leaderboard"
	"github.com/cjunker/bb-bounce/internal/storage"
)

// Server wraps the HTTP listener, the score store and the leaderboard
// service.
type Server struct {
	cfg     config.Config
	store   *storage.Store
	service *leaderboard.Service
	logger  *log.Logger
	http    *http.Server

	submitLimiter *ipLimiter
	fetchLimiter  *ipLimiter

	startedAt time.Time
}

// New creates a server from configuration, opening the score store.
func New(cfg config.Config) (*Server, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "bounce",
	})

	store, err := storage.Open(cfg.Store.Path)
	if err != nil {
		return nil, err
	}

	service := leaderboard.NewService(store, leaderboard.Options{
		Secret:       cfg.Submission.Secret,
		Window:       cfg.Submission.Window(),
		StoreTimeout: cfg.Store.Timeout(),
		Logger:       logger,
	})

	srv := &Server{
		cfg:           cfg,
		store:         store,
		service:       service,
		logger:        logger,
		submitLimiter: newIPLimiter(cfg.RateLimit.SubmitPerMinute),
		fetchLimiter:  newIPLimiter(cfg.RateLimit.FetchPerMinute),
		startedAt:     time.Now(),
	}

	srv.http = &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return srv, nil
}

// routes builds the request mux with the middleware chain applied.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /api/scores", s.throttle(s.fetchLimiter, http.HandlerFunc(s.handleScores)))
	mux.Handle("POST /api/submit", s.throttle(s.submitLimiter, http.HandlerFunc(s.handleSubmit)))
	mux.HandleFunc("GET /api/stats", s.handleStats)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("/", s.handleStatic)

	return s.logging(s.recovery(s.secureHeaders(s.cors(mux))))
}

// ListenAndServe starts the HTTP server and blocks until SIGINT or SIGTERM.
func (s *Server) ListenAndServe() error {
	s.logger.Info("starting server",
		"addr", s.cfg.Server.Addr,
		"static", s.cfg.Server.StaticDir,
		"window", s.cfg.Submission.Window(),
	)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown drains in-flight requests and closes the store.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.http.Shutdown(ctx)
	if closeErr := s.store.Close(); err == nil {
		err = closeErr
	}
	return err
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.cfg.Server.Addr
}
