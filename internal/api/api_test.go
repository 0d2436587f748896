package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/missionhq/missionhq/internal/app/gamification"
	"github.com/missionhq/missionhq/internal/app/notify"
	"github.com/missionhq/missionhq/internal/domain"
	"github.com/missionhq/missionhq/internal/infra/sqlite"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	log := notify.New(db, nil)
	engine := gamification.NewEngine(db, domain.SystemClock{}, log)
	return NewServer(engine, log)
}

func do(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

// ─── Basic Endpoints ────────────────────────────────────────────────────────

func TestAPI_Health(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, "GET", "/health", "")
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var body map[string]string
	json.NewDecoder(w.Body).Decode(&body)
	if body["status"] != "ok" {
		t.Errorf("status = %q, want ok", body["status"])
	}
}

func TestAPI_Version(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, "GET", "/api/version", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var body map[string]string
	json.NewDecoder(w.Body).Decode(&body)
	if body["version"] != Version {
		t.Errorf("version = %q, want %q", body["version"], Version)
	}
}

// ─── Profile ────────────────────────────────────────────────────────────────

func TestAPI_Profile(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, "GET", "/api/profile", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var p domain.Profile
	if err := json.NewDecoder(w.Body).Decode(&p); err != nil {
		t.Fatalf("decode profile: %v", err)
	}
	if p.Level != 1 {
		t.Errorf("level = %d, want 1 for a fresh profile", p.Level)
	}
	if p.ID == "" {
		t.Error("fresh profile should carry an ID")
	}
	if len(p.Achievements) == 0 {
		t.Error("profile should carry the achievement catalog")
	}
}

func TestAPI_Multiplier(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, "GET", "/api/multiplier", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var body struct {
		Multiplier float64 `json:"multiplier"`
	}
	json.NewDecoder(w.Body).Decode(&body)
	if body.Multiplier < 1.0 {
		t.Errorf("multiplier = %v, want >= 1.0", body.Multiplier)
	}
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func TestAPI_Multiplier_EarlyBirdFollowsEngineClock(t *testing.T) {
	tests := []struct {
		name      string
		at        time.Time
		earlyBird bool
		mult      float64
	}{
		{"before nine", time.Date(2026, 2, 11, 7, 30, 0, 0, time.UTC), true, 1.5},
		{"midday", time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC), false, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, err := sqlite.Open(t.TempDir())
			if err != nil {
				t.Fatalf("open db: %v", err)
			}
			t.Cleanup(func() { db.Close() })

			log := notify.New(db, nil)
			engine := gamification.NewEngine(db, fixedClock{tt.at}, log)
			srv := NewServer(engine, log)

			w := do(t, srv, "GET", "/api/multiplier", "")
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
			}

			var body struct {
				Multiplier float64 `json:"multiplier"`
				EarlyBird  bool    `json:"earlyBird"`
			}
			json.NewDecoder(w.Body).Decode(&body)
			if body.EarlyBird != tt.earlyBird {
				t.Errorf("earlyBird = %v, want %v", body.EarlyBird, tt.earlyBird)
			}
			if body.Multiplier != tt.mult {
				t.Errorf("multiplier = %v, want %v", body.Multiplier, tt.mult)
			}
		})
	}
}

// ─── XP ─────────────────────────────────────────────────────────────────────

func TestAPI_AddXP(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, "POST", "/api/xp", `{"amount": 50, "source": "Task completed"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body)
	}

	var p domain.Profile
	json.NewDecoder(w.Body).Decode(&p)
	if p.XP == 0 && p.Level == 1 {
		t.Error("award left no trace on the profile")
	}
	if p.Streak != 1 {
		t.Errorf("streak = %d, want 1 after first award", p.Streak)
	}
}

func TestAPI_AddXP_Validation(t *testing.T) {
	srv := newTestServer(t)

	cases := []struct {
		name string
		body string
	}{
		{"missing amount", `{"source": "x"}`},
		{"zero amount", `{"amount": 0}`},
		{"negative amount", `{"amount": -5}`},
		{"malformed json", `{"amount": `},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(t, srv, "POST", "/api/xp", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestAPI_AddXP_SetsLastCompletedTask(t *testing.T) {
	srv := newTestServer(t)

	do(t, srv, "POST", "/api/xp", `{"amount": 10, "source": "Task completed", "task": "Write launch notes"}`)

	w := do(t, srv, "GET", "/api/profile", "")
	var p domain.Profile
	json.NewDecoder(w.Body).Decode(&p)
	if p.LastCompletedTask != "Write launch notes" {
		t.Errorf("lastCompletedTask = %q", p.LastCompletedTask)
	}
}

// ─── Actions ────────────────────────────────────────────────────────────────

func TestAPI_RecordAction(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, "POST", "/api/actions", `{"kind": "task"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body)
	}

	var p domain.Profile
	json.NewDecoder(w.Body).Decode(&p)
	if p.DailyTasksCompleted != 1 {
		t.Errorf("dailyTasksCompleted = %d, want 1", p.DailyTasksCompleted)
	}
}

func TestAPI_RecordAction_UnknownKind(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, "POST", "/api/actions", `{"kind": "nap"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

// ─── Check-in ───────────────────────────────────────────────────────────────

func TestAPI_Checkin(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, "POST", "/api/checkin", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var p domain.Profile
	json.NewDecoder(w.Body).Decode(&p)
	if p.LastCheckinDate == "" {
		t.Error("check-in did not stamp lastCheckinDate")
	}
	firstXP := p.XP

	// Same-day repeat is a no-op.
	w = do(t, srv, "POST", "/api/checkin", "")
	json.NewDecoder(w.Body).Decode(&p)
	if p.XP != firstXP {
		t.Errorf("repeat check-in changed xp: %d -> %d", firstXP, p.XP)
	}
}

// ─── Goals ──────────────────────────────────────────────────────────────────

func TestAPI_UpdateGoals(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, "PUT", "/api/goals", `{"tasks": 10}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body)
	}

	var p domain.Profile
	json.NewDecoder(w.Body).Decode(&p)
	if p.PersonalGoals.Tasks != 10 {
		t.Errorf("tasks goal = %d, want 10", p.PersonalGoals.Tasks)
	}

	w = do(t, srv, "PUT", "/api/goals", `{"focusSessions": 0}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d for non-positive goal", w.Code, http.StatusBadRequest)
	}
}

// ─── Achievements ───────────────────────────────────────────────────────────

func TestAPI_Achievements(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, "GET", "/api/achievements", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var body struct {
		Achievements []domain.Achievement `json:"achievements"`
	}
	json.NewDecoder(w.Body).Decode(&body)
	if len(body.Achievements) == 0 {
		t.Fatal("no achievements returned")
	}
	for _, a := range body.Achievements {
		if a.Earned {
			t.Errorf("achievement %s earned on a fresh profile", a.ID)
		}
	}
}

func TestAPI_UnlockAchievement(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, "POST", "/api/achievements/early_bird/unlock", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body)
	}

	var p domain.Profile
	json.NewDecoder(w.Body).Decode(&p)
	a := p.AchievementByID("early_bird")
	if a == nil || !a.Earned {
		t.Error("early_bird not earned after unlock")
	}

	w = do(t, srv, "POST", "/api/achievements/bogus/unlock", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d for unknown id", w.Code, http.StatusNotFound)
	}
}

// ─── Themes ─────────────────────────────────────────────────────────────────

func TestAPI_Themes(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, "GET", "/api/themes", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var body struct {
		Themes []struct {
			ID       string `json:"id"`
			Unlocked bool   `json:"unlocked"`
		} `json:"themes"`
	}
	json.NewDecoder(w.Body).Decode(&body)
	if len(body.Themes) == 0 {
		t.Fatal("no themes returned")
	}

	unlocked := map[string]bool{}
	for _, th := range body.Themes {
		unlocked[th.ID] = th.Unlocked
	}
	if !unlocked["light"] || !unlocked["dark"] {
		t.Error("light and dark should be unlocked at level 1")
	}
	if unlocked["neon"] {
		t.Error("neon should stay locked at level 1")
	}
}

// ─── Notifications ──────────────────────────────────────────────────────────

func TestAPI_Notifications(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, "GET", "/api/notifications", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var body struct {
		Notifications []domain.Notification `json:"notifications"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Notifications == nil {
		t.Error("notifications should decode as an empty list, not null")
	}

	w = do(t, srv, "GET", "/api/notifications?limit=bogus", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d for bad limit", w.Code, http.StatusBadRequest)
	}
}

func TestAPI_NotificationShown_Unknown(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, "POST", "/api/notifications/9999/shown", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}

	w = do(t, srv, "POST", "/api/notifications/abc/shown", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d for non-numeric id", w.Code, http.StatusBadRequest)
	}
}

// ─── Recap Dismissal ────────────────────────────────────────────────────────

func TestAPI_DismissRecap(t *testing.T) {
	srv := newTestServer(t)

	// Nothing pending; dismissal is still a 200 no-op.
	w := do(t, srv, "POST", "/api/recap/dismiss", "")
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	w = do(t, srv, "POST", "/api/wrapped/dismiss", "")
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}
