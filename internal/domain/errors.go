package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure, no infrastructure dependency.

var (
	// ErrUnknownAchievement is returned for an unlock request whose ID is
	// not in the catalog.
	ErrUnknownAchievement = errors.New("achievement not found in catalog")

	// ErrUnknownActionKind is returned for a daily-action kind outside
	// task/focus/shoutout/social.
	ErrUnknownActionKind = errors.New("unknown daily action kind")

	// ErrInvalidGoal is returned when a personal-goal update contains a
	// non-positive target.
	ErrInvalidGoal = errors.New("personal goal must be positive")

	// ErrNotificationNotFound is returned when a notification ID does not
	// exist in the log.
	ErrNotificationNotFound = errors.New("notification not found")
)
