package domain

import "time"

// ─── Engine Events ──────────────────────────────────────────────────────────

// Severity classifies an engine event for display purposes.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
)

// Event is a human-readable message emitted by a state transition: level-up,
// theme unlock, freeze earned/used, streak reset, achievement unlocked,
// multiplier bonus. Transitions return events; dispatching them is the
// caller's concern.
type Event struct {
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Notifier is the one-way sink the engine pushes events to. Implementations
// decide how (or whether) to display them.
type Notifier interface {
	Notify(message string, severity Severity)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(message string, severity Severity)

// Notify calls f.
func (f NotifierFunc) Notify(message string, severity Severity) { f(message, severity) }

// NopNotifier discards all events.
type NopNotifier struct{}

// Notify discards the event.
func (NopNotifier) Notify(string, Severity) {}

// ─── Clock ──────────────────────────────────────────────────────────────────

// Clock abstracts wall-clock reads so multiplier, streak, and rollover logic
// stays deterministic under test.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real system time.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// ─── Notification Log ───────────────────────────────────────────────────────

// Notification is a persisted engine event, kept so UI consumers can show a
// feed of recent gamification activity.
type Notification struct {
	ID        int64     `json:"id"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	CreatedAt time.Time `json:"created_at"`
	Shown     bool      `json:"shown"`
}

// NotificationPolicy governs how many events the log accepts per day and
// which hours stay quiet.
type NotificationPolicy struct {
	MaxPerDay  int    `json:"max_per_day"`
	QuietStart string `json:"quiet_start"` // "22:00"
	QuietEnd   string `json:"quiet_end"`   // "08:00"
}

// DefaultNotificationPolicy suits an always-visible dashboard: generous cap,
// overnight quiet hours.
func DefaultNotificationPolicy() NotificationPolicy {
	return NotificationPolicy{
		MaxPerDay:  50,
		QuietStart: "22:00",
		QuietEnd:   "08:00",
	}
}
