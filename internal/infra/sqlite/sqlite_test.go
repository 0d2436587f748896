package sqlite

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/missionhq/missionhq/internal/domain"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	dir := t.TempDir()
	db, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// ─── Database Lifecycle ─────────────────────────────────────────────────────

func TestOpen_CreatesDatabase(t *testing.T) {
	dir := t.TempDir()
	db, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer db.Close()

	// Check file exists
	if _, err := os.Stat(filepath.Join(dir, "state.db")); os.IsNotExist(err) {
		t.Error("state.db should exist")
	}
}

func TestOpen_Ping(t *testing.T) {
	db := newTestDB(t)
	if err := db.Ping(); err != nil {
		t.Fatalf("Ping() error: %v", err)
	}
}

func TestOpen_Reopen(t *testing.T) {
	dir := t.TempDir()

	db, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if err := db.SetAppState("marker", "v1"); err != nil {
		t.Fatalf("SetAppState() error: %v", err)
	}
	db.Close()

	// Migrations are idempotent; data survives.
	db2, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	defer db2.Close()

	got, err := db2.GetAppState("marker")
	if err != nil {
		t.Fatalf("GetAppState() error: %v", err)
	}
	if got != "v1" {
		t.Errorf("marker = %q, want v1", got)
	}
}

// ─── App State ──────────────────────────────────────────────────────────────

func TestAppState_RoundTrip(t *testing.T) {
	db := newTestDB(t)

	if err := db.SetAppState("install_id", "abc-123"); err != nil {
		t.Fatalf("SetAppState() error: %v", err)
	}
	got, err := db.GetAppState("install_id")
	if err != nil {
		t.Fatalf("GetAppState() error: %v", err)
	}
	if got != "abc-123" {
		t.Errorf("value = %q, want abc-123", got)
	}

	// Upsert replaces.
	if err := db.SetAppState("install_id", "def-456"); err != nil {
		t.Fatalf("SetAppState() update error: %v", err)
	}
	got, _ = db.GetAppState("install_id")
	if got != "def-456" {
		t.Errorf("value after update = %q, want def-456", got)
	}
}

func TestAppState_MissingKey(t *testing.T) {
	db := newTestDB(t)
	got, err := db.GetAppState("never_set")
	if err != nil {
		t.Fatalf("GetAppState() error: %v", err)
	}
	if got != "" {
		t.Errorf("missing key = %q, want empty string", got)
	}
}

// ─── Profile Blob ───────────────────────────────────────────────────────────

func TestProfile_NoneStored(t *testing.T) {
	db := newTestDB(t)
	raw, err := db.LoadProfile()
	if err != nil {
		t.Fatalf("LoadProfile() error: %v", err)
	}
	if raw != nil {
		t.Errorf("LoadProfile() = %q, want nil before first save", raw)
	}
}

func TestProfile_RoundTrip(t *testing.T) {
	db := newTestDB(t)

	blob := []byte(`{"level":3,"xp":42}`)
	if err := db.SaveProfile(blob); err != nil {
		t.Fatalf("SaveProfile() error: %v", err)
	}

	raw, err := db.LoadProfile()
	if err != nil {
		t.Fatalf("LoadProfile() error: %v", err)
	}
	if string(raw) != string(blob) {
		t.Errorf("LoadProfile() = %s, want %s", raw, blob)
	}

	// Save overwrites.
	blob2 := []byte(`{"level":4,"xp":7}`)
	if err := db.SaveProfile(blob2); err != nil {
		t.Fatalf("SaveProfile() overwrite error: %v", err)
	}
	raw, _ = db.LoadProfile()
	if string(raw) != string(blob2) {
		t.Errorf("LoadProfile() after overwrite = %s, want %s", raw, blob2)
	}
}

// ─── Notification Log ───────────────────────────────────────────────────────

func TestNotifications_InsertAndList(t *testing.T) {
	db := newTestDB(t)
	base := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)

	for i, msg := range []string{"first", "second", "third"} {
		_, err := db.InsertNotification(domain.Notification{
			Message:   msg,
			Severity:  domain.SeverityInfo,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("InsertNotification(%q) error: %v", msg, err)
		}
	}

	pending, err := db.ListPendingNotifications(10)
	if err != nil {
		t.Fatalf("ListPendingNotifications() error: %v", err)
	}
	if len(pending) != 3 {
		t.Fatalf("pending count = %d, want 3", len(pending))
	}
	if pending[0].Message != "first" {
		t.Errorf("pending[0] = %q, want oldest first", pending[0].Message)
	}

	recent, err := db.ListNotifications(2)
	if err != nil {
		t.Fatalf("ListNotifications() error: %v", err)
	}
	if len(recent) != 2 || recent[0].Message != "third" {
		t.Errorf("recent = %v, want newest first limited to 2", recent)
	}
}

func TestNotifications_CountSince(t *testing.T) {
	db := newTestDB(t)
	base := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)

	times := []time.Time{
		base.Add(-48 * time.Hour), // two days ago
		base.Add(-2 * time.Hour),  // today
		base,                      // today
	}
	for _, ts := range times {
		if _, err := db.InsertNotification(domain.Notification{
			Message: "m", Severity: domain.SeverityInfo, CreatedAt: ts,
		}); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	dayStart := time.Date(2026, 2, 11, 0, 0, 0, 0, time.UTC)
	count, err := db.NotificationCountSince(dayStart)
	if err != nil {
		t.Fatalf("NotificationCountSince() error: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestNotifications_MarkShown(t *testing.T) {
	db := newTestDB(t)

	id, err := db.InsertNotification(domain.Notification{
		Message: "level up", Severity: domain.SeveritySuccess, CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := db.MarkNotificationShown(id); err != nil {
		t.Fatalf("MarkNotificationShown() error: %v", err)
	}

	pending, err := db.ListPendingNotifications(10)
	if err != nil {
		t.Fatalf("ListPendingNotifications() error: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("pending count = %d, want 0 after mark shown", len(pending))
	}
}

func TestNotifications_MarkShownUnknownID(t *testing.T) {
	db := newTestDB(t)
	err := db.MarkNotificationShown(9999)
	if !errors.Is(err, domain.ErrNotificationNotFound) {
		t.Errorf("err = %v, want ErrNotificationNotFound", err)
	}
}
