// Package daemon manages the Mission HQ daemon lifecycle and configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all daemon configuration.
type Config struct {
	API           APIConfig           `toml:"api"`
	Goals         GoalsConfig         `toml:"goals"`
	Notifications NotificationsConfig `toml:"notifications"`
	Telemetry     TelemetryConfig     `toml:"telemetry"`
	Logging       LoggingConfig       `toml:"logging"`
}

// APIConfig controls the HTTP API server.
type APIConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
	CORS bool   `toml:"cors"`
}

// GoalsConfig sets the default personal goals for a fresh profile.
type GoalsConfig struct {
	Tasks             int `toml:"tasks"`
	FocusSessions     int `toml:"focus_sessions"`
	SocialEngagements int `toml:"social_engagements"`
}

// NotificationsConfig controls the notification log policy.
type NotificationsConfig struct {
	MaxPerDay  int    `toml:"max_per_day"`
	QuietStart string `toml:"quiet_start"`
	QuietEnd   string `toml:"quiet_end"`
}

// TelemetryConfig controls observability endpoints.
type TelemetryConfig struct {
	Prometheus bool `toml:"prometheus"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	homeDir := missionHome()
	return Config{
		API: APIConfig{
			Host: "127.0.0.1",
			Port: 7420,
			CORS: true,
		},
		Goals: GoalsConfig{
			Tasks:             5,
			FocusSessions:     3,
			SocialEngagements: 3,
		},
		Notifications: NotificationsConfig{
			MaxPerDay:  50,
			QuietStart: "22:00",
			QuietEnd:   "08:00",
		},
		Telemetry: TelemetryConfig{
			Prometheus: true,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(homeDir, "missionhq.log"),
		},
	}
}

// LoadConfig reads config from ~/.missionhq/config.toml, falling back to
// defaults when no file exists.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(missionHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // No config file yet, use defaults
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes the config to ~/.missionhq/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(missionHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// missionHome returns the Mission HQ data directory.
func missionHome() string {
	if env := os.Getenv("MISSIONHQ_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".missionhq")
}

// MissionHome is exported for use by other packages.
func MissionHome() string {
	return missionHome()
}
