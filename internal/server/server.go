// Package server provides the HTTP REST API for the resume parser.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jonathan/resume-parser/internal/db"
	"github.com/jonathan/resume-parser/internal/types"
)

// CandidateStore is the persistence dependency. Satisfied by *db.DB.
type CandidateStore interface {
	InsertCandidate(ctx context.Context, rec *types.CandidateRecord, filename string) (uuid.UUID, error)
	ListCandidates(ctx context.Context) ([]db.Candidate, error)
	Ping(ctx context.Context) error
}

// ResumeParser is the extraction pipeline dependency. Satisfied by
// *pipeline.Pipeline.
type ResumeParser interface {
	Parse(ctx context.Context, data []byte, filename string) *types.CandidateRecord
}

// Config holds server configuration
type Config struct {
	Port           int
	AllowedOrigins []string
}

// Server represents the HTTP server
type Server struct {
	httpServer     *http.Server
	store          CandidateStore
	parser         ResumeParser
	allowedOrigins map[string]bool
	logger         zerolog.Logger
}

// New creates a new server instance
func New(cfg Config, store CandidateStore, parser ResumeParser, logger zerolog.Logger) *Server {
	s := &Server{
		store:          store,
		parser:         parser,
		allowedOrigins: make(map[string]bool, len(cfg.AllowedOrigins)),
		logger:         logger,
	}
	for _, origin := range cfg.AllowedOrigins {
		s.allowedOrigins[origin] = true
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /upload_resume", s.handleUploadResume)
	mux.HandleFunc("GET /candidates", s.handleListCandidates)
	mux.HandleFunc("GET /health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // model retries can take a while
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start begins listening for requests and blocks until shutdown
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		s.logger.Info().Str("addr", s.httpServer.Addr).Msg("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Fatal().Err(err).Msg("server error")
		}
	}()

	<-stop
	s.logger.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Info().Msg("server stopped")
	return nil
}

// withCORS adds CORS headers for configured origins
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && s.allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}

		if r.Method == http.MethodOptions {
			// A preflight from a disallowed origin is rejected outright
			// rather than answered without CORS headers
			if origin != "" && !s.allowedOrigins[origin] {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("request handled")
	})
}
