package daemon

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/missionhq/missionhq/internal/api"
	"github.com/missionhq/missionhq/internal/app/gamification"
	"github.com/missionhq/missionhq/internal/app/notify"
	"github.com/missionhq/missionhq/internal/domain"
	"github.com/missionhq/missionhq/internal/health"
	_ "github.com/missionhq/missionhq/internal/infra/metrics" // Register Prometheus metrics
	"github.com/missionhq/missionhq/internal/infra/sqlite"
)

// Daemon is the core Mission HQ runtime. It wires together all services.
type Daemon struct {
	Config        Config
	DB            *sqlite.DB
	Engine        *gamification.Engine
	Notifications *notify.Log
	Health        *health.Checker
	Server        *api.Server
	cancel        context.CancelFunc
}

// New creates and initializes a Daemon with all services wired.
func New() (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewWithConfig(cfg)
}

// NewWithConfig creates a Daemon with the given configuration.
func NewWithConfig(cfg Config) (*Daemon, error) {
	home := missionHome()

	db, err := sqlite.Open(home)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// First run: no profile stored yet. Remember so configured goal
	// defaults can be applied after the engine mints one.
	stored, err := db.LoadProfile()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("load profile: %w", err)
	}
	firstRun := stored == nil

	logger := log.New(os.Stderr, "", log.LstdFlags)

	notifications := notify.NewWithPolicy(db, notificationPolicy(cfg), logger)
	engine := gamification.NewEngine(db, domain.SystemClock{}, notifications)

	if firstRun {
		if err := applyGoalDefaults(engine, cfg.Goals); err != nil {
			log.Printf("[daemon] configured goal defaults rejected: %v", err)
		}
	}

	checker := health.NewChecker(db, home)

	srv := api.NewServer(engine, notifications)
	srv.SetHealthChecker(checker)
	if cfg.Telemetry.Prometheus {
		srv.EnableMetrics()
	}
	if cfg.API.CORS {
		srv.EnableCORS()
	}

	return &Daemon{
		Config:        cfg,
		DB:            db,
		Engine:        engine,
		Notifications: notifications,
		Health:        checker,
		Server:        srv,
	}, nil
}

// notificationPolicy builds the log policy from config, falling back to the
// domain defaults for unset fields.
func notificationPolicy(cfg Config) domain.NotificationPolicy {
	policy := domain.DefaultNotificationPolicy()
	if cfg.Notifications.MaxPerDay > 0 {
		policy.MaxPerDay = cfg.Notifications.MaxPerDay
	}
	if cfg.Notifications.QuietStart != "" {
		policy.QuietStart = cfg.Notifications.QuietStart
	}
	if cfg.Notifications.QuietEnd != "" {
		policy.QuietEnd = cfg.Notifications.QuietEnd
	}
	return policy
}

// applyGoalDefaults seeds a fresh profile with the configured goal targets.
func applyGoalDefaults(engine *gamification.Engine, goals GoalsConfig) error {
	patch := gamification.GoalsPatch{}
	if goals.Tasks > 0 {
		patch.Tasks = &goals.Tasks
	}
	if goals.FocusSessions > 0 {
		patch.FocusSessions = &goals.FocusSessions
	}
	if goals.SocialEngagements > 0 {
		patch.SocialEngagements = &goals.SocialEngagements
	}
	return engine.UpdatePersonalGoals(patch)
}

// Serve starts the HTTP server and blocks until shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	// Health checker (always runs)
	go d.Health.Run(ctx)

	// Midnight never needs a timer: every operation runs the rollover
	// checks first. This ticker only keeps the persisted state and the
	// streak gauge fresh on an otherwise idle day.
	go d.rolloverLoop(ctx)

	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	// Graceful shutdown on signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = httpServer.Shutdown(shutdownCtx)
		_ = d.DB.Close()
	}()

	fmt.Printf("Mission HQ serving on http://%s\n", addr)
	if d.Config.Telemetry.Prometheus {
		fmt.Printf("  Metrics: http://%s/metrics\n", addr)
	}

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// rolloverLoop nudges the engine periodically so daily, weekly, and monthly
// boundaries are processed even without traffic.
func (d *Daemon) rolloverLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.Engine.CheckDailyReset()
			d.Engine.CheckWeeklyReset()
			d.Engine.CheckMonthlyReset()
		}
	}
}

// Close shuts down all daemon resources.
func (d *Daemon) Close() {
	if d.cancel != nil {
		d.cancel()
	}
	if d.DB != nil {
		_ = d.DB.Close()
	}
}
