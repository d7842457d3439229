package status

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/hlog"
	"github.com/sandevgo/saya/internal/core"
	"github.com/sandevgo/saya/pkg/log"
)

const (
	readHeaderTimeout = 5 * time.Second
	writeTimeout      = 30 * time.Second
)

type Server struct {
	addr    string
	repo    core.StatsRepository
	started time.Time
	now     func() time.Time

	mu     sync.Mutex
	server *http.Server
}

func NewServer(addr string, repo core.StatsRepository) *Server {
	now := time.Now
	return &Server{
		addr:    addr,
		repo:    repo,
		started: now(),
		now:     now,
	}
}

// Handler returns the routes wrapped with request logging from ctx's logger.
func (s *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /stats", s.handleStats)
	mux.HandleFunc("GET /backup", s.handleBackup)

	var h http.Handler = mux
	h = hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("http request")
	})(h)
	h = hlog.RemoteAddrHandler("remote")(h)
	h = hlog.NewHandler(*log.FromCtx(ctx))(h)
	return h
}

func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(ctx),
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	s.mu.Lock()
	s.server = server
	s.mu.Unlock()

	log.FromCtx(ctx).Info().Str("addr", s.addr).Msg("starting status server")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	server := s.server
	s.mu.Unlock()
	if server == nil {
		return nil
	}
	return server.Shutdown(ctx)
}

type rootResponse struct {
	Service     string `json:"service"`
	Status      string `json:"status"`
	Version     string `json:"version"`
	Description string `json:"description"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type statsResponse struct {
	core.Stats
	ServiceUptime string `json:"service_uptime"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, rootResponse{
		Service:     core.SayaServiceName,
		Status:      "running",
		Version:     core.SayaVersion,
		Description: core.SayaDescription,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Timestamp: s.now(),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	memories, err := s.repo.CountMemories(ctx)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	users, err := s.repo.CountUsers(ctx)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, statsResponse{
		Stats:         core.Stats{TotalMemories: memories, TotalUsers: users},
		ServiceUptime: s.now().Sub(s.started).Round(time.Second).String(),
	})
}

func (s *Server) handleBackup(w http.ResponseWriter, r *http.Request) {
	backup, err := s.repo.DumpAll(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, backup)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	hlog.FromRequest(r).Error().Err(err).Str("path", r.URL.Path).Msg("status request failed")
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
