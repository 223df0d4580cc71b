// Package server implements the score API: player registration, the shared
// daily challenge, score submission, and leaderboards, backed by SQLite.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/oddgravity/internal/daily"
	"github.com/vovakirdan/oddgravity/internal/storage"
)

// Submission limits.
const (
	maxScore       = 1_000_000
	maxModeNameLen = 32
	maxPlayerIDLen = 64
)

// Config holds configuration for the API server.
type Config struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// DBPath is the path to the database file.
	DBPath string
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address: ":8080",
		DBPath:  "~/.oddgravity/scores.db",
	}
}

// Server is the HTTP API server.
type Server struct {
	config Config
	store  *storage.Store
	logger *log.Logger
	http   *http.Server
}

// New creates an API server and opens its database.
func New(cfg Config) (*Server, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "oddgravity-api",
	})

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("server: cannot open database: %w", err)
	}

	s := &Server{
		config: cfg,
		store:  store,
		logger: logger,
	}
	s.http = &http.Server{
		Addr:         cfg.Address,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return s, nil
}

// Handler builds the route table wrapped in request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("POST /api/register", s.handleRegister)
	mux.HandleFunc("GET /api/daily", s.handleDaily)
	mux.HandleFunc("POST /api/score", s.handleScore)
	mux.HandleFunc("GET /api/leaderboard", s.handleLeaderboard)
	return s.loggingMiddleware(mux)
}

// loggingMiddleware logs one line per request.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(lw, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", lw.status,
			"duration", time.Since(start),
		)
	})
}

// statusWriter captures the response status for logging.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRegister(w http.ResponseWriter, _ *http.Request) {
	id := uuid.NewString()
	if err := s.store.RegisterPlayer(id); err != nil {
		s.logger.Error("register failed", "error", err)
		writeError(w, http.StatusInternalServerError, "registration failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"playerId": id})
}

func (s *Server) handleDaily(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, daily.FromDate(time.Now()))
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PlayerID string `json:"playerId"`
		Score    int    `json:"score"`
		ModeName string `json:"modeName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if body.PlayerID == "" || len(body.PlayerID) > maxPlayerIDLen {
		writeError(w, http.StatusBadRequest, "invalid playerId")
		return
	}
	if body.Score < 0 || body.Score > maxScore {
		writeError(w, http.StatusBadRequest, "score out of range")
		return
	}
	mode := sanitizeModeName(body.ModeName)

	// Registration is idempotent, so late or re-registering clients work
	if err := s.store.RegisterPlayer(body.PlayerID); err != nil {
		s.logger.Error("player upsert failed", "error", err)
		writeError(w, http.StatusInternalServerError, "submission failed")
		return
	}
	if err := s.store.SubmitScore(body.PlayerID, body.Score, mode); err != nil {
		s.logger.Error("score insert failed", "error", err)
		writeError(w, http.StatusInternalServerError, "submission failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	switch period {
	case "", "all":
		period = "all"
	case "daily", "weekly":
	default:
		writeError(w, http.StatusBadRequest, "period must be daily, weekly, or all")
		return
	}

	mode := sanitizeModeName(r.URL.Query().Get("mode"))

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}
	if limit > 100 {
		limit = 100
	}

	entries, err := s.store.Leaderboard(period, mode, limit)
	if err != nil {
		s.logger.Error("leaderboard query failed", "error", err)
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}
	if entries == nil {
		entries = []storage.LeaderboardEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"period":  period,
		"entries": entries,
	})
}

// sanitizeModeName trims, caps, and strips a client-supplied mode name down
// to letters, digits, spaces, dashes, and underscores.
func sanitizeModeName(name string) string {
	name = strings.TrimSpace(name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == ' ', r == '-', r == '_':
			b.WriteRune(r)
		}
		if b.Len() >= maxModeNameLen {
			break
		}
	}
	return b.String()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // Nothing to do about a failed response write
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// ListenAndServe starts the API server and blocks until shutdown.
func (s *Server) ListenAndServe() error {
	s.logger.Info("starting API server", "address", s.config.Address)

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

// Shutdown gracefully stops the server and closes the database.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.http.Shutdown(ctx)
	if closeErr := s.store.Close(); err == nil {
		err = closeErr
	}
	return err
}
