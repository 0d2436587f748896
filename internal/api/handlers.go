package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/missionhq/missionhq/internal/app/gamification"
	"github.com/missionhq/missionhq/internal/domain"
)

// ─── Health ─────────────────────────────────────────────────────────────────

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.checker == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}

	status := http.StatusOK
	overall := "ok"
	if !s.checker.IsHealthy() {
		status = http.StatusServiceUnavailable
		overall = "degraded"
	}
	writeJSON(w, status, map[string]interface{}{
		"status": overall,
		"checks": s.checker.Statuses(),
	})
}

// ─── Profile Reads ──────────────────────────────────────────────────────────

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Profile())
}

func (s *Server) handleMultiplier(w http.ResponseWriter, r *http.Request) {
	p := s.engine.Profile()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"multiplier": s.engine.Multiplier(),
		"streak":     p.Streak,
		"combo":      p.ComboCount,
		"earlyBird":  s.engine.EarlyBird(),
	})
}

func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	p := s.engine.Profile()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"achievements": p.Achievements,
	})
}

func (s *Server) handleThemes(w http.ResponseWriter, r *http.Request) {
	p := s.engine.Profile()

	type themeEntry struct {
		domain.Theme
		Unlocked bool `json:"unlocked"`
	}
	catalog := domain.ThemeCatalog()
	out := make([]themeEntry, len(catalog))
	for i, theme := range catalog {
		out[i] = themeEntry{Theme: theme, Unlocked: p.HasTheme(theme.ID)}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"themes": out,
		"level":  p.Level,
	})
}

// ─── XP and Actions ─────────────────────────────────────────────────────────

type addXPRequest struct {
	Amount int    `json:"amount"`
	Source string `json:"source"`
	Task   string `json:"task,omitempty"`
}

func (s *Server) handleAddXP(w http.ResponseWriter, r *http.Request) {
	var req addXPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "amount must be positive")
		return
	}

	if req.Task != "" {
		s.engine.SetLastCompletedTask(req.Task)
	}
	writeJSON(w, http.StatusOK, s.engine.AddXP(req.Amount, req.Source))
}

type recordActionRequest struct {
	Kind string `json:"kind"`
}

func (s *Server) handleRecordAction(w http.ResponseWriter, r *http.Request) {
	var req recordActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.engine.RecordDailyAction(domain.ActionKind(req.Kind)); err != nil {
		if errors.Is(err, domain.ErrUnknownActionKind) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.engine.Profile())
}

func (s *Server) handleCheckin(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.MarkCheckedIn())
}

// ─── Recaps ─────────────────────────────────────────────────────────────────

func (s *Server) handleDismissRecap(w http.ResponseWriter, r *http.Request) {
	s.engine.DismissWeeklyRecap()
	writeJSON(w, http.StatusOK, s.engine.Profile())
}

func (s *Server) handleDismissWrapped(w http.ResponseWriter, r *http.Request) {
	s.engine.DismissMonthlyWrapped()
	writeJSON(w, http.StatusOK, s.engine.Profile())
}

// ─── Goals ──────────────────────────────────────────────────────────────────

func (s *Server) handleUpdateGoals(w http.ResponseWriter, r *http.Request) {
	var patch gamification.GoalsPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.engine.UpdatePersonalGoals(patch); err != nil {
		if errors.Is(err, domain.ErrInvalidGoal) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.engine.Profile())
}

// ─── Achievements ───────────────────────────────────────────────────────────

func (s *Server) handleUnlockAchievement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.engine.UnlockAchievement(id); err != nil {
		if errors.Is(err, domain.ErrUnknownAchievement) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.engine.Profile())
}

// ─── Notifications ──────────────────────────────────────────────────────────

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	pending, err := s.notifications.Pending(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if pending == nil {
		pending = []domain.Notification{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"notifications": pending,
	})
}

func (s *Server) handleNotificationShown(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid notification id")
		return
	}

	if err := s.notifications.MarkShown(id); err != nil {
		if errors.Is(err, domain.ErrNotificationNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
