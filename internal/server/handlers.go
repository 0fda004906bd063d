package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/yourusername/gridiron-edge/internal/datasource"
	"github.com/yourusername/gridiron-edge/internal/models"
	"github.com/yourusername/gridiron-edge/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

type indexResponse struct {
	Service   string            `json:"service"`
	Endpoints map[string]string `json:"endpoints"`
	Status    service.Status    `json:"status"`
}

type usageResponse struct {
	Teams []models.TeamUsage `json:"teams"`
	Count int                `json:"count"`
}

type refreshResponse struct {
	Status           string  `json:"status"`
	SnapshotID       string  `json:"snapshot_id"`
	Season           int     `json:"season"`
	Plays            int     `json:"plays"`
	MaxCompletedWeek int     `json:"max_completed_week"`
	DurationSeconds  float64 `json:"duration_seconds"`
}

type healthResponse struct {
	State string `json:"status"`
	service.Status
	SchedulerRunning bool   `json:"scheduler_running"`
	NextRefresh      string `json:"next_refresh,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.WithError(err).Error("Failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

// writeServiceError maps service errors onto HTTP statuses.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	var dsErr datasource.DataSourceError
	switch {
	case errors.Is(err, models.ErrDataUnavailable):
		s.writeError(w, http.StatusServiceUnavailable, "no season data loaded; trigger a refresh")
	case errors.Is(err, models.ErrUnknownTeam):
		s.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrRefreshInProgress):
		s.writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, models.ErrRefreshFailed), errors.As(err, &dsErr):
		s.writeError(w, http.StatusBadGateway, err.Error())
	default:
		s.log.WithError(err).Error("Request failed")
		s.writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		s.writeError(w, http.StatusMethodNotAllowed, fmt.Sprintf("method %s not allowed", r.Method))
		return false
	}
	return true
}

// weekParam parses an optional ?week=N override.
func weekParam(r *http.Request) (*int, error) {
	raw := r.URL.Query().Get("week")
	if raw == "" {
		return nil, nil
	}
	week, err := strconv.Atoi(raw)
	if err != nil || week < 1 || week > 22 {
		return nil, fmt.Errorf("invalid week %q", raw)
	}
	return &week, nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.writeError(w, http.StatusNotFound, "not found")
		return
	}
	if !s.requireMethod(w, r, http.MethodGet) {
		return
	}

	endpoints := map[string]string{
		"GET /team-analysis": "Weekly matchup projections (optional ?week=N)",
		"GET /player-usage":  "Red-zone and touchdown usage shares (optional ?team=XX or /player-usage/XX)",
		"POST /refresh":      "Reload play-by-play data",
		"GET /health":        "Service status",
	}
	if s.playerOdds {
		endpoints["GET /player-odds"] = "Anytime-touchdown board (optional ?week=N)"
	}
	if s.hub != nil {
		endpoints["GET /ws"] = "Websocket feed of refresh events"
	}

	s.writeJSON(w, http.StatusOK, indexResponse{
		Service:   "Gridiron Edge",
		Endpoints: endpoints,
		Status:    s.analysis.Status(),
	})
}

func (s *Server) handleTeamAnalysis(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodGet) {
		return
	}

	week, err := weekParam(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	analysis, err := s.analysis.TeamAnalysis(r.Context(), week)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, analysis)
}

func (s *Server) handlePlayerUsage(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodGet) {
		return
	}

	// Team comes from the path (/player-usage/KC) or ?team=KC.
	team := strings.Trim(strings.TrimPrefix(r.URL.Path, "/player-usage"), "/")
	if team == "" {
		team = r.URL.Query().Get("team")
	}

	if team != "" {
		usage, err := s.analysis.PlayerUsage(team)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		s.writeJSON(w, http.StatusOK, usage)
		return
	}

	teams, err := s.analysis.AllPlayerUsage()
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, usageResponse{Teams: teams, Count: len(teams)})
}

func (s *Server) handlePlayerOdds(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodGet) {
		return
	}

	week, err := weekParam(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	board, err := s.analysis.PlayerOdds(r.Context(), week)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, board)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}

	start := time.Now()
	snap, err := s.refresh.Refresh(r.Context(), "manual")
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, refreshResponse{
		Status:           "ok",
		SnapshotID:       snap.ID.String(),
		Season:           snap.Season,
		Plays:            len(snap.Plays),
		MaxCompletedWeek: snap.MaxCompletedWeek,
		DurationSeconds:  time.Since(start).Seconds(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodGet) {
		return
	}

	resp := healthResponse{
		State:  "healthy",
		Status: s.analysis.Status(),
	}
	if s.sched != nil {
		resp.SchedulerRunning = s.sched.IsRunning()
		if next := s.sched.GetNextRun(); !next.IsZero() {
			resp.NextRefresh = next.UTC().Format(time.RFC3339)
		}
	}

	s.writeJSON(w, http.StatusOK, resp)
}
