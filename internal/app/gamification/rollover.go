package gamification

import (
	"time"

	"github.com/missionhq/missionhq/internal/domain"
)

// Synthesis constants for the approximate monthly report. Per-day history is
// not retained, so monthly figures are scaled estimates from the counters on
// hand at rollover time.
const (
	monthlyWorkingDays  = 22
	focusSessionMinutes = 25
)

// rolloverLocked runs the three period checks. Monthly runs before weekly so
// the monthly snapshot sees the outgoing week's XP; daily runs last so both
// snapshots see the outgoing day's counters. Idempotent per period. Returns
// true if anything changed.
func (e *Engine) rolloverLocked(now time.Time) bool {
	monthly := e.checkMonthlyLocked(now)
	weekly := e.checkWeeklyLocked(now)
	daily := e.checkDailyLocked(now)
	return daily || weekly || monthly
}

// CheckDailyReset zeroes the daily counters and combo when the calendar day
// has changed. Safe to call any number of times.
func (e *Engine) CheckDailyReset() domain.Profile {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.checkDailyLocked(e.clock.Now()) {
		e.saveLocked()
	}
	return e.profile.Clone()
}

// CheckWeeklyReset snapshots the weekly recap and zeroes weekly XP when the
// ISO week has rolled over.
func (e *Engine) CheckWeeklyReset() domain.Profile {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.checkWeeklyLocked(e.clock.Now()) {
		e.saveLocked()
	}
	return e.profile.Clone()
}

// CheckMonthlyReset synthesizes the monthly report when the month key has
// changed. The very first call only plants the marker since there is no
// prior month to summarize.
func (e *Engine) CheckMonthlyReset() domain.Profile {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.checkMonthlyLocked(e.clock.Now()) {
		e.saveLocked()
	}
	return e.profile.Clone()
}

// DismissWeeklyRecap acknowledges and clears the pending recap.
func (e *Engine) DismissWeeklyRecap() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.profile.WeeklyRecap != nil {
		e.profile.WeeklyRecap = nil
		e.saveLocked()
	}
}

// DismissMonthlyWrapped acknowledges and clears the pending monthly report.
func (e *Engine) DismissMonthlyWrapped() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.profile.MonthlyStats != nil {
		e.profile.MonthlyStats = nil
		e.saveLocked()
	}
}

func (e *Engine) checkDailyLocked(now time.Time) bool {
	p := &e.profile
	today := domain.DateKey(now)
	if p.LastDailyReset == today {
		return false
	}

	p.DailyTasksCompleted = 0
	p.DailyFocusSessions = 0
	p.DailyShoutoutsGiven = 0
	p.DailySocialEngagements = 0
	p.ComboCount = 0
	p.LastDailyReset = today
	return true
}

func (e *Engine) checkWeeklyLocked(now time.Time) bool {
	p := &e.profile
	weekStart := domain.DateKey(domain.WeekStart(now))
	if p.LastWeeklyReset == weekStart {
		return false
	}

	// First run plants the marker without a recap: there is no week to
	// review yet. Afterwards the recap replaces any unacknowledged one
	// (last write wins).
	if p.LastWeeklyReset != "" {
		p.WeeklyRecap = &domain.WeeklyRecap{
			WeekStart:      p.LastWeeklyReset,
			XPEarned:       p.WeeklyXP,
			TasksCompleted: p.DailyTasksCompleted,
			FocusSessions:  p.DailyFocusSessions,
			ShoutoutsGiven: p.DailyShoutoutsGiven,
			StreakDays:     p.Streak,
		}
	}

	p.WeeklyXP = 0
	p.LastWeeklyReset = weekStart
	return true
}

func (e *Engine) checkMonthlyLocked(now time.Time) bool {
	p := &e.profile
	key := domain.MonthKey(now)
	if p.LastMonthlyReset == key {
		return false
	}

	if p.LastMonthlyReset == "" {
		p.LastMonthlyReset = key
		return true
	}

	p.MonthlyStats = synthesizeMonthly(p)
	p.LastMonthlyReset = key
	return true
}

// synthesizeMonthly builds the "monthly wrapped" snapshot by scaling the
// instantaneous counters to a working month. This is an approximation, not
// a historical aggregation; trends stay at zero because no prior-month data
// is retained to compare against.
func synthesizeMonthly(p *domain.Profile) *domain.MonthlyStats {
	return &domain.MonthlyStats{
		Month:             p.LastMonthlyReset,
		TasksCompleted:    p.DailyTasksCompleted * monthlyWorkingDays,
		FocusMinutes:      p.DailyFocusSessions * focusSessionMinutes * monthlyWorkingDays,
		ShoutoutsGiven:    p.DailyShoutoutsGiven * monthlyWorkingDays,
		ShoutoutsReceived: p.DailySocialEngagements * monthlyWorkingDays / 2,
		MostProductiveDay: mostProductiveDay(p),
		TopStreak:         p.Streak,
		TotalXP:           p.WeeklyXP * 4,
	}
}

func mostProductiveDay(p *domain.Profile) string {
	if p.LastActivityDate != "" {
		if t, err := time.Parse(domain.DateLayout, p.LastActivityDate); err == nil {
			return t.Weekday().String()
		}
	}
	return time.Tuesday.String()
}
