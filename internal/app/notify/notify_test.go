package notify

import (
	"testing"
	"time"

	"github.com/missionhq/missionhq/internal/domain"
	"github.com/missionhq/missionhq/internal/infra/sqlite"
)

type fixedClock struct{ t time.Time }

func (c *fixedClock) Now() time.Time { return c.t }

// noon is comfortably outside the default quiet window.
var noon = time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)

func newTestLog(t *testing.T, policy domain.NotificationPolicy) (*Log, *fixedClock) {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	clk := &fixedClock{t: noon}
	return NewWithPolicy(db, policy, nil).WithClock(clk), clk
}

func TestCreate_Records(t *testing.T) {
	l, _ := newTestLog(t, domain.DefaultNotificationPolicy())

	id, err := l.Create(domain.Notification{
		Message:  "Level up! You reached Level 2",
		Severity: domain.SeveritySuccess,
	})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if id == 0 {
		t.Fatal("Create() suppressed a mid-day notification under default policy")
	}

	pending, err := l.Pending(10)
	if err != nil {
		t.Fatalf("Pending() error: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("pending count = %d, want 1", len(pending))
	}
	if pending[0].Severity != domain.SeveritySuccess {
		t.Errorf("severity = %q, want success", pending[0].Severity)
	}
	if pending[0].Shown {
		t.Error("new notification should start unshown")
	}
}

func TestCreate_QuietHours(t *testing.T) {
	l, clk := newTestLog(t, domain.DefaultNotificationPolicy())

	quiet := []time.Time{
		time.Date(2026, 2, 11, 23, 30, 0, 0, time.UTC), // late night
		time.Date(2026, 2, 11, 3, 0, 0, 0, time.UTC),   // past midnight
		time.Date(2026, 2, 11, 22, 0, 0, 0, time.UTC),  // window start inclusive
	}
	for _, at := range quiet {
		clk.t = at
		id, err := l.Create(domain.Notification{Message: "shh", Severity: domain.SeverityInfo})
		if err != nil {
			t.Fatalf("Create() at %v error: %v", at, err)
		}
		if id != 0 {
			t.Errorf("Create() at %v = id %d, want suppressed", at, id)
		}
	}

	// Window end is exclusive: 08:00 is allowed again.
	clk.t = time.Date(2026, 2, 11, 8, 0, 0, 0, time.UTC)
	id, err := l.Create(domain.Notification{Message: "morning", Severity: domain.SeverityInfo})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if id == 0 {
		t.Error("08:00 should be outside quiet hours")
	}
}

func TestCreate_DailyCap(t *testing.T) {
	policy := domain.DefaultNotificationPolicy()
	policy.MaxPerDay = 2
	l, clk := newTestLog(t, policy)

	for i := 0; i < 2; i++ {
		id, err := l.Create(domain.Notification{Message: "m", Severity: domain.SeverityInfo})
		if err != nil {
			t.Fatalf("Create() %d error: %v", i, err)
		}
		if id == 0 {
			t.Fatalf("Create() %d suppressed under cap", i)
		}
	}

	id, err := l.Create(domain.Notification{Message: "over", Severity: domain.SeverityInfo})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if id != 0 {
		t.Error("third notification should hit the daily cap")
	}

	count, err := l.TodayCount()
	if err != nil {
		t.Fatalf("TodayCount() error: %v", err)
	}
	if count != 2 {
		t.Errorf("TodayCount() = %d, want 2", count)
	}

	// The cap resets with the calendar day.
	clk.t = noon.AddDate(0, 0, 1)
	id, err = l.Create(domain.Notification{Message: "new day", Severity: domain.SeverityInfo})
	if err != nil {
		t.Fatalf("Create() next day error: %v", err)
	}
	if id == 0 {
		t.Error("next-day notification should pass the reset cap")
	}
}

func TestMarkShown(t *testing.T) {
	l, _ := newTestLog(t, domain.DefaultNotificationPolicy())

	id, err := l.Create(domain.Notification{Message: "m", Severity: domain.SeverityInfo})
	if err != nil || id == 0 {
		t.Fatalf("Create() = %d, %v", id, err)
	}

	if err := l.MarkShown(id); err != nil {
		t.Fatalf("MarkShown() error: %v", err)
	}
	pending, err := l.Pending(10)
	if err != nil {
		t.Fatalf("Pending() error: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("pending count = %d, want 0", len(pending))
	}
}

func TestNotify_ImplementsNotifier(t *testing.T) {
	l, _ := newTestLog(t, domain.DefaultNotificationPolicy())

	// Compile-time check plus a behavioral one.
	var sink domain.Notifier = l
	sink.Notify("Achievement unlocked: Early Bird", domain.SeveritySuccess)

	pending, err := l.Pending(10)
	if err != nil {
		t.Fatalf("Pending() error: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("pending count = %d, want 1", len(pending))
	}
	if pending[0].Message != "Achievement unlocked: Early Bird" {
		t.Errorf("message = %q", pending[0].Message)
	}
}

func TestIsQuietHour_SameDayWindow(t *testing.T) {
	policy := domain.NotificationPolicy{MaxPerDay: 50, QuietStart: "12:00", QuietEnd: "14:00"}
	l, clk := newTestLog(t, policy)

	clk.t = time.Date(2026, 2, 11, 13, 0, 0, 0, time.UTC)
	if id, _ := l.Create(domain.Notification{Message: "m", Severity: domain.SeverityInfo}); id != 0 {
		t.Error("13:00 inside a same-day window should be quiet")
	}

	clk.t = time.Date(2026, 2, 11, 15, 0, 0, 0, time.UTC)
	if id, _ := l.Create(domain.Notification{Message: "m", Severity: domain.SeverityInfo}); id == 0 {
		t.Error("15:00 outside the window should pass")
	}
}
