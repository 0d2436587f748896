// Package notify persists engine events as a policy-gated notification log.
package notify

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/missionhq/missionhq/internal/domain"
	"github.com/missionhq/missionhq/internal/infra/metrics"
	"github.com/missionhq/missionhq/internal/infra/sqlite"
)

// Log records engine events as notifications, subject to policy:
//   - at most MaxPerDay notifications per calendar day (hard cap)
//   - nothing during quiet hours (default 22:00 to 08:00)
//
// Suppressed events are dropped silently; the engine state they describe is
// already committed, only the surfacing is skipped. Log implements
// domain.Notifier so it plugs straight into the engine.
type Log struct {
	db     *sqlite.DB
	policy domain.NotificationPolicy
	clock  domain.Clock
	logger *log.Logger
}

// New creates a notification log with the default policy.
func New(db *sqlite.DB, logger *log.Logger) *Log {
	return NewWithPolicy(db, domain.DefaultNotificationPolicy(), logger)
}

// NewWithPolicy creates a notification log with a custom policy.
func NewWithPolicy(db *sqlite.DB, policy domain.NotificationPolicy, logger *log.Logger) *Log {
	return &Log{
		db:     db,
		policy: policy,
		clock:  domain.SystemClock{},
		logger: logger,
	}
}

// WithClock overrides the clock. Intended for tests.
func (l *Log) WithClock(clock domain.Clock) *Log {
	l.clock = clock
	return l
}

// Notify implements domain.Notifier. Persistence failures are logged and
// swallowed: a notification is never worth failing the operation behind it.
func (l *Log) Notify(message string, severity domain.Severity) {
	if _, err := l.Create(domain.Notification{
		Message:  message,
		Severity: severity,
	}); err != nil && l.logger != nil {
		l.logger.Printf("[notify] drop %q: %v", message, err)
	}
}

// Create records a notification if policy allows it. Returns the row ID, or
// 0 when the policy suppressed it.
func (l *Log) Create(n domain.Notification) (int64, error) {
	now := l.clock.Now()

	count, err := l.db.NotificationCountSince(dayStart(now))
	if err != nil {
		return 0, fmt.Errorf("count today: %w", err)
	}
	if count >= l.policy.MaxPerDay {
		return 0, nil // daily cap reached
	}
	if l.isQuietHour(now) {
		return 0, nil // quiet hours
	}

	n.CreatedAt = now
	n.Shown = false

	id, err := l.db.InsertNotification(n)
	if err != nil {
		return 0, fmt.Errorf("insert notification: %w", err)
	}
	metrics.NotificationsLogged.WithLabelValues(string(n.Severity)).Inc()
	return id, nil
}

// Pending returns unshown notifications, oldest first.
func (l *Log) Pending(limit int) ([]domain.Notification, error) {
	return l.db.ListPendingNotifications(limit)
}

// MarkShown marks a notification as surfaced to the user.
func (l *Log) MarkShown(id int64) error {
	return l.db.MarkNotificationShown(id)
}

// TodayCount returns how many notifications were recorded today.
func (l *Log) TodayCount() (int, error) {
	return l.db.NotificationCountSince(dayStart(l.clock.Now()))
}

// Policy returns the active notification policy.
func (l *Log) Policy() domain.NotificationPolicy {
	return l.policy
}

// isQuietHour reports whether t falls inside the policy's quiet window. The
// window may wrap midnight (22:00 to 08:00).
func (l *Log) isQuietHour(t time.Time) bool {
	startHour, startMin := parseHHMM(l.policy.QuietStart)
	endHour, endMin := parseHHMM(l.policy.QuietEnd)

	minutes := t.Hour()*60 + t.Minute()
	start := startHour*60 + startMin
	end := endHour*60 + endMin

	if start > end {
		return minutes >= start || minutes < end
	}
	return minutes >= start && minutes < end
}

// parseHHMM parses "HH:MM" into hour and minute. Malformed input reads as
// 00:00, which disables the window.
func parseHHMM(s string) (int, int) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	return h, m
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
