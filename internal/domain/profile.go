// Package domain holds the Mission HQ gamification types.
// The engine drives engagement through XP, levels, streaks, achievements,
// and theme unlocks. Design rule: real value, not dark patterns.
package domain

import "time"

// DateLayout is the calendar-date form used throughout the profile.
// Streak and rollover bookkeeping works on calendar days, not timestamps.
const DateLayout = "2006-01-02"

// MonthLayout keys monthly rollovers.
const MonthLayout = "2006-01"

// Profile is the single per-user gamification record. It is loaded once at
// startup, mutated only through engine operations, and written back as one
// JSON blob after each mutation.
type Profile struct {
	ID            string `json:"id"`
	Level         int    `json:"level"`
	XP            int    `json:"xp"`
	XPToNextLevel int    `json:"xpToNextLevel"`
	WeeklyXP      int    `json:"weeklyXP"`

	Streak        int    `json:"streak"`
	StreakFreezes int    `json:"streakFreezes"`
	ComboCount    int    `json:"comboCount"`

	// Calendar date ("2006-01-02") of the most recent streak-qualifying
	// action. Empty string means no activity yet.
	LastActivityDate string     `json:"lastActivityDate,omitempty"`
	LastXPActionAt   *time.Time `json:"lastXPActionAt,omitempty"`

	DailyTasksCompleted    int `json:"dailyTasksCompleted"`
	DailyFocusSessions     int `json:"dailyFocusSessions"`
	DailyShoutoutsGiven    int `json:"dailyShoutoutsGiven"`
	DailySocialEngagements int `json:"dailySocialEngagements"`

	LastDailyReset   string `json:"lastDailyReset,omitempty"`
	LastWeeklyReset  string `json:"lastWeeklyReset,omitempty"`
	LastCheckinDate  string `json:"lastCheckinDate,omitempty"`
	LastMonthlyReset string `json:"lastMonthlyReset,omitempty"` // "2006-01"

	PersonalGoals PersonalGoals `json:"personalGoals"`

	Achievements   []Achievement `json:"achievements"`
	UnlockedThemes []string      `json:"unlockedThemes"`

	WeeklyRecap  *WeeklyRecap  `json:"weeklyRecap,omitempty"`
	MonthlyStats *MonthlyStats `json:"monthlyStats,omitempty"`

	LastCompletedTask string `json:"lastCompletedTask,omitempty"`
}

// PersonalGoals are the user-configurable daily targets.
type PersonalGoals struct {
	Tasks             int `json:"tasks"`
	FocusSessions     int `json:"focusSessions"`
	SocialEngagements int `json:"socialEngagements"`
}

// Achievement is one entry of the fixed catalog carried inside the profile.
// Earned is monotonic: once true it never reverts.
type Achievement struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	Earned      bool       `json:"earned"`
	EarnedAt    *time.Time `json:"earnedAt,omitempty"`
	Target      int        `json:"target,omitempty"`
	Current     int        `json:"current,omitempty"`
}

// WeeklyRecap is the snapshot taken at weekly rollover. The daily-counter
// fields are an approximation of the week's totals since per-day history is
// not retained.
type WeeklyRecap struct {
	WeekStart      string `json:"weekStart"`
	XPEarned       int    `json:"xpEarned"`
	TasksCompleted int    `json:"tasksCompleted"`
	FocusSessions  int    `json:"focusSessions"`
	ShoutoutsGiven int    `json:"shoutoutsGiven"`
	StreakDays     int    `json:"streakDays"`
}

// MonthlyStats is the "monthly wrapped" snapshot synthesized at monthly
// rollover from instantaneous counters. Like the weekly recap it is an
// approximation, not a historical aggregation.
type MonthlyStats struct {
	Month             string `json:"month"` // "2006-01", the month summarized
	TasksCompleted    int    `json:"tasksCompleted"`
	TasksTrend        int    `json:"tasksTrend"` // percent vs prior month
	FocusMinutes      int    `json:"focusMinutes"`
	FocusTrend        int    `json:"focusTrend"`
	ShoutoutsGiven    int    `json:"shoutoutsGiven"`
	ShoutoutsReceived int    `json:"shoutoutsReceived"`
	MostProductiveDay string `json:"mostProductiveDay"`
	TopStreak         int    `json:"topStreak"`
	TotalXP           int    `json:"totalXP"`
}

// ActionKind names the daily counters a consumer can record against.
type ActionKind string

const (
	ActionTask     ActionKind = "task"
	ActionFocus    ActionKind = "focus"
	ActionShoutout ActionKind = "shoutout"
	ActionSocial   ActionKind = "social"
)

// Theme is an unlockable UI theme gated purely by level.
type Theme struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	RequiredLevel int    `json:"requiredLevel"`
}

// ThemeCatalog returns the fixed theme catalog, lowest level first.
func ThemeCatalog() []Theme {
	return []Theme{
		{ID: "light", Name: "Light", RequiredLevel: 1},
		{ID: "dark", Name: "Dark", RequiredLevel: 1},
		{ID: "unusual", Name: "Unusual", RequiredLevel: 5},
		{ID: "neon", Name: "Neon Grid", RequiredLevel: 10},
		{ID: "mono", Name: "Monochrome", RequiredLevel: 15},
		{ID: "aurora", Name: "Aurora", RequiredLevel: 20},
	}
}

// AchievementCatalog returns the fixed achievement catalog in display order.
// Entries without an engine predicate (Early Bird, Focus Master, Team Player,
// Task Slayer, Wellness Warrior) unlock only via a direct unlock call.
func AchievementCatalog() []Achievement {
	return []Achievement{
		{ID: "early_bird", Title: "Early Bird", Description: "Complete 10 tasks before 9 AM", Icon: "🌅"},
		{ID: "focus_master", Title: "Focus Master", Description: "Complete 25 Pomodoro sessions", Icon: "🎯"},
		{ID: "team_player", Title: "Team Player", Description: "Give 50 shoutouts to teammates", Icon: "🤝"},
		{ID: "week_warrior", Title: "Week Warrior", Description: "Maintain a 7-day streak", Icon: "🔥", Target: 7},
		{ID: "fortnight_force", Title: "Fortnight Force", Description: "Maintain a 14-day streak", Icon: "📅", Target: 14},
		{ID: "streak_legend", Title: "Streak Legend", Description: "Maintain a 30-day productivity streak", Icon: "⭐", Target: 30},
		{ID: "goal_trifecta", Title: "Goal Trifecta", Description: "Hit all three daily personal goals in one day", Icon: "🏆"},
		{ID: "task_slayer", Title: "Task Slayer", Description: "Complete 100 high-priority tasks", Icon: "⚔️"},
		{ID: "wellness_warrior", Title: "Wellness Warrior", Description: "Complete all wellness challenges for a month", Icon: "💪"},
	}
}

// DefaultProfile returns the first-run profile. LastMonthlyReset stays empty
// to mark "no prior month"; the first monthly rollover only sets the marker.
func DefaultProfile() Profile {
	return Profile{
		Level:         1,
		XP:            0,
		XPToNextLevel: 100,
		PersonalGoals: PersonalGoals{
			Tasks:             5,
			FocusSessions:     3,
			SocialEngagements: 3,
		},
		Achievements:   AchievementCatalog(),
		UnlockedThemes: []string{"light", "dark"},
	}
}

// DateKey formats a timestamp as its calendar date.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// MonthKey formats a timestamp as its "YYYY-MM" month key.
func MonthKey(t time.Time) string {
	return t.Format(MonthLayout)
}

// DaysBetween returns the whole calendar days from one date key to another.
// Malformed input counts as zero days (treated as same-day by callers).
func DaysBetween(from, to string) int {
	a, err := time.Parse(DateLayout, from)
	if err != nil {
		return 0
	}
	b, err := time.Parse(DateLayout, to)
	if err != nil {
		return 0
	}
	return int(b.Sub(a).Hours() / 24)
}

// WeekStart returns the Monday of the week containing t, at midnight.
func WeekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return day.AddDate(0, 0, -offset)
}

// HasTheme reports whether the profile already unlocked a theme.
func (p *Profile) HasTheme(id string) bool {
	for _, t := range p.UnlockedThemes {
		if t == id {
			return true
		}
	}
	return false
}

// AchievementByID returns a pointer into the profile's catalog, or nil.
func (p *Profile) AchievementByID(id string) *Achievement {
	for i := range p.Achievements {
		if p.Achievements[i].ID == id {
			return &p.Achievements[i]
		}
	}
	return nil
}

// Clone returns a deep copy safe to hand to consumers.
func (p *Profile) Clone() Profile {
	c := *p
	c.Achievements = make([]Achievement, len(p.Achievements))
	copy(c.Achievements, p.Achievements)
	c.UnlockedThemes = append([]string(nil), p.UnlockedThemes...)
	if p.LastXPActionAt != nil {
		t := *p.LastXPActionAt
		c.LastXPActionAt = &t
	}
	if p.WeeklyRecap != nil {
		r := *p.WeeklyRecap
		c.WeeklyRecap = &r
	}
	if p.MonthlyStats != nil {
		m := *p.MonthlyStats
		c.MonthlyStats = &m
	}
	return c
}
