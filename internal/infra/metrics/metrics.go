// Package metrics provides Prometheus metrics for Mission HQ.
// Counters and gauges for XP flow, level-ups, streaks, achievements,
// daily actions, notifications, and profile persistence.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── XP & Levels ────────────────────────────────────────────────────────────

// XPAwarded tracks actual (post-multiplier) XP credited, by source.
var XPAwarded = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "missionhq",
	Name:      "xp_awarded_total",
	Help:      "Total XP credited after multipliers.",
}, []string{"source"})

// LevelUps tracks level gains.
var LevelUps = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "missionhq",
	Name:      "level_ups_total",
	Help:      "Total levels gained.",
})

// ─── Streaks ────────────────────────────────────────────────────────────────

// StreakDays reports the current streak length.
var StreakDays = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "missionhq",
	Name:      "streak_days",
	Help:      "Current consecutive-day activity streak.",
})

// FreezesConsumed tracks streak freezes spent absorbing missed days.
var FreezesConsumed = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "missionhq",
	Name:      "streak_freezes_consumed_total",
	Help:      "Total streak freezes consumed.",
})

// ─── Achievements & Actions ─────────────────────────────────────────────────

// AchievementsUnlocked tracks achievement unlocks.
var AchievementsUnlocked = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "missionhq",
	Name:      "achievements_unlocked_total",
	Help:      "Total achievements unlocked.",
})

// DailyActions tracks recorded daily actions by kind.
var DailyActions = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "missionhq",
	Name:      "daily_actions_total",
	Help:      "Total daily actions recorded.",
}, []string{"kind"})

// ─── Notifications & Persistence ────────────────────────────────────────────

// NotificationsLogged tracks accepted notifications by severity.
var NotificationsLogged = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "missionhq",
	Name:      "notifications_logged_total",
	Help:      "Total notifications accepted into the log.",
}, []string{"severity"})

// ProfileSaves tracks profile blob writes by outcome.
var ProfileSaves = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "missionhq",
	Name:      "profile_saves_total",
	Help:      "Total profile persistence attempts.",
}, []string{"status"})
