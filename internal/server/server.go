// Package server exposes the public HTTP API: weekly matchup projections,
// player usage breakdowns, the anytime-touchdown board, and the manual
// refresh trigger.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-edge/internal/config"
	"github.com/yourusername/gridiron-edge/internal/service"
)

// ScheduleInfo exposes the refresh scheduler to status payloads.
type ScheduleInfo interface {
	IsRunning() bool
	GetNextRun() time.Time
}

// Server is the public API server.
type Server struct {
	cfg        config.ServerConfig
	analysis   *service.AnalysisService
	refresh    *service.RefreshService
	sched      ScheduleInfo
	hub        *Hub
	playerOdds bool
	log        *log.Entry
	server     *http.Server
}

// New creates an API server. The scheduler and websocket hub are optional
// and attached with the setters before Start.
func New(cfg config.ServerConfig, analysis *service.AnalysisService, refresh *service.RefreshService, logger *log.Entry) *Server {
	if logger == nil {
		logger = log.NewEntry(log.StandardLogger())
	}
	return &Server{
		cfg:        cfg,
		analysis:   analysis,
		refresh:    refresh,
		playerOdds: true,
		log:        logger,
	}
}

// SetScheduler attaches the refresh scheduler for next-run reporting
func (s *Server) SetScheduler(sched ScheduleInfo) {
	s.sched = sched
}

// SetHub attaches the websocket hub and enables the /ws endpoint
func (s *Server) SetHub(hub *Hub) {
	s.hub = hub
}

// SetPlayerOddsEnabled toggles the /player-odds endpoint. It is on by
// default.
func (s *Server) SetPlayerOddsEnabled(enabled bool) {
	s.playerOdds = enabled
}

// Handler builds the route table
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/team-analysis", s.handleTeamAnalysis)
	mux.HandleFunc("/player-usage", s.handlePlayerUsage)
	mux.HandleFunc("/player-usage/", s.handlePlayerUsage)
	if s.playerOdds {
		mux.HandleFunc("/player-odds", s.handlePlayerOdds)
	}
	mux.HandleFunc("/refresh", s.handleRefresh)
	mux.HandleFunc("/health", s.handleHealth)
	if s.hub != nil {
		mux.HandleFunc("/ws", s.hub.HandleWS)
	}
	return mux
}

// Start runs the server until Shutdown is called
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  time.Duration(s.cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(s.cfg.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  time.Duration(s.cfg.IdleTimeoutSeconds) * time.Second,
	}

	s.log.WithField("port", s.cfg.Port).Info("API server starting")

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and disconnects websocket clients
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}

	s.log.Info("API server shutting down")

	if s.hub != nil {
		s.hub.Close()
	}
	return s.server.Shutdown(ctx)
}
