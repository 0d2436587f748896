// Package api provides the HTTP server for Mission HQ. It exposes the
// gamification profile and its operations as a local REST API.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/missionhq/missionhq/internal/app/gamification"
	"github.com/missionhq/missionhq/internal/app/notify"
	"github.com/missionhq/missionhq/internal/health"
)

// Version is the daemon version reported by /api/version.
const Version = "0.1.0"

// Server is the Mission HQ HTTP API server.
type Server struct {
	engine         *gamification.Engine
	notifications  *notify.Log
	checker        *health.Checker
	metricsEnabled bool
	corsEnabled    bool
}

// NewServer creates a new API server around the gamification engine.
func NewServer(engine *gamification.Engine, notifications *notify.Log) *Server {
	return &Server{engine: engine, notifications: notifications}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// EnableCORS enables permissive CORS headers for local dashboard development.
func (s *Server) EnableCORS() { s.corsEnabled = true }

// SetHealthChecker sets the checker backing /health.
func (s *Server) SetHealthChecker(c *health.Checker) { s.checker = c }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	if s.corsEnabled {
		r.Use(corsMiddleware)
	}

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{
				"status": "Mission HQ is running",
			})
		})
		r.Get("/version", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{
				"version": Version,
			})
		})

		r.Get("/profile", s.handleProfile)
		r.Get("/multiplier", s.handleMultiplier)
		r.Get("/achievements", s.handleAchievements)
		r.Get("/themes", s.handleThemes)
		r.Get("/notifications", s.handleNotifications)

		r.Post("/xp", s.handleAddXP)
		r.Post("/actions", s.handleRecordAction)
		r.Post("/checkin", s.handleCheckin)
		r.Post("/recap/dismiss", s.handleDismissRecap)
		r.Post("/wrapped/dismiss", s.handleDismissWrapped)
		r.Post("/achievements/{id}/unlock", s.handleUnlockAchievement)
		r.Post("/notifications/{id}/shown", s.handleNotificationShown)

		r.Put("/goals", s.handleUpdateGoals)
	})

	// Prometheus metrics endpoint
	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// corsMiddleware adds CORS headers for local dashboard development.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
