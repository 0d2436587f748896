// Package gamification implements the Mission HQ gamification engine:
// XP accrual with multipliers, streak and freeze bookkeeping, daily/weekly/
// monthly rollovers, achievement unlocking, and theme unlock gating.
// Design rule: real value, not dark patterns.
package gamification

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/missionhq/missionhq/internal/domain"
	"github.com/missionhq/missionhq/internal/infra/metrics"
)

const (
	// comboWindow is the sliding window within which consecutive XP-earning
	// actions extend the combo.
	comboWindow = 5 * time.Minute

	// earlyBirdHour: actions before this local hour earn the ×1.5 bonus.
	earlyBirdHour = 9

	// freezeMilestoneXP: one streak freeze per 500 weekly XP crossed.
	freezeMilestoneXP = 500

	// levelGrowthFactor: xpToNextLevel grows ×1.2 (floored) per level.
	levelGrowthFactor = 1.2

	// checkInXP is the base award for the once-daily check-in.
	checkInXP = 20
)

// ProfileStore is the persistence adapter: the profile travels as one opaque
// JSON blob. LoadProfile returns nil for a first run.
type ProfileStore interface {
	LoadProfile() ([]byte, error)
	SaveProfile(raw []byte) error
}

// Engine owns the single Profile record. All mutations go through its
// methods; the mutex serializes them exactly as the dashboard's single UI
// thread would. Construct once per process with injected clock and notifier.
type Engine struct {
	mu       sync.Mutex
	profile  domain.Profile
	store    ProfileStore
	clock    domain.Clock
	notifier domain.Notifier
}

// NewEngine loads the profile (falling back to defaults on missing or
// corrupt state), runs the rollover checks once, and persists the result.
func NewEngine(store ProfileStore, clock domain.Clock, notifier domain.Notifier) *Engine {
	raw, err := store.LoadProfile()
	if err != nil {
		log.Printf("[gamification] load profile: %v (starting from defaults)", err)
		raw = nil
	}

	p := domain.MergeProfile(raw)
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	e := &Engine{
		profile:  p,
		store:    store,
		clock:    clock,
		notifier: notifier,
	}

	e.rolloverLocked(clock.Now())
	e.saveLocked()
	metrics.StreakDays.Set(float64(e.profile.Streak))
	return e
}

// Profile returns a snapshot of the current profile, after bringing the
// time-scoped counters up to date. Stale daily counters are never exposed.
func (e *Engine) Profile() domain.Profile {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.rolloverLocked(e.clock.Now()) {
		e.saveLocked()
	}
	return e.profile.Clone()
}

// Multiplier is the read-only projection of ComputeMultiplier over live
// profile state and the current hour.
func (e *Engine) Multiplier() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return ComputeMultiplier(e.profile.Streak, e.profile.ComboCount,
		e.clock.Now().Hour() < earlyBirdHour)
}

// EarlyBird reports whether the current hour qualifies for the early-bird
// bonus, per the engine's clock.
func (e *Engine) EarlyBird() bool {
	return e.clock.Now().Hour() < earlyBirdHour
}

// AddXP credits a base amount through the full pipeline: streak update,
// combo, multiplier, level-ups, theme unlocks, freeze milestones, and,
// once the mutation is persisted, achievement evaluation. Non-positive
// amounts are clamped to zero (the rollover checks still run).
func (e *Engine) AddXP(amount int, source string) domain.Profile {
	e.mu.Lock()

	now := e.clock.Now()
	e.rolloverLocked(now)

	var events []domain.Event
	if amount > 0 {
		events = e.awardLocked(amount, source, now)
	}
	e.saveLocked()

	// Achievement predicates read post-commit state.
	achEvents := e.checkAchievementsLocked(now)
	if len(achEvents) > 0 {
		e.saveLocked()
	}

	snapshot := e.profile.Clone()
	e.mu.Unlock()

	e.dispatch(events)
	e.dispatch(achEvents)
	return snapshot
}

// awardLocked runs the award pipeline. Caller holds the lock and persists.
func (e *Engine) awardLocked(amount int, source string, now time.Time) []domain.Event {
	p := &e.profile
	events := e.updateStreakLocked(now)

	// Combo: consecutive awards inside the window chain; otherwise restart.
	if p.LastXPActionAt != nil && now.Sub(*p.LastXPActionAt) < comboWindow {
		p.ComboCount++
	} else {
		p.ComboCount = 1
	}

	mult := ComputeMultiplier(p.Streak, p.ComboCount, now.Hour() < earlyBirdHour)
	actual := int(math.Round(float64(amount) * mult))

	weeklyBefore := p.WeeklyXP
	p.XP += actual
	p.WeeklyXP += actual

	levelUps := 0
	for p.XP >= p.XPToNextLevel {
		p.XP -= p.XPToNextLevel
		p.Level++
		p.XPToNextLevel = int(math.Floor(float64(p.XPToNextLevel) * levelGrowthFactor))
		levelUps++
	}

	if levelUps > 0 {
		events = append(events, domain.Event{
			Message:  fmt.Sprintf("Level up! You reached Level %d", p.Level),
			Severity: domain.SeveritySuccess,
		})
		metrics.LevelUps.Add(float64(levelUps))

		for _, theme := range domain.ThemeCatalog() {
			if theme.RequiredLevel <= p.Level && !p.HasTheme(theme.ID) {
				p.UnlockedThemes = append(p.UnlockedThemes, theme.ID)
				events = append(events, domain.Event{
					Message:  fmt.Sprintf("Theme unlocked: %s", theme.Name),
					Severity: domain.SeveritySuccess,
				})
			}
		}
	}

	// One freeze per 500-weekly-XP milestone crossed by this award.
	for earned := p.WeeklyXP/freezeMilestoneXP - weeklyBefore/freezeMilestoneXP; earned > 0; earned-- {
		p.StreakFreezes++
		events = append(events, domain.Event{
			Message:  fmt.Sprintf("Streak freeze earned! You now have %d", p.StreakFreezes),
			Severity: domain.SeveritySuccess,
		})
	}

	if mult > 1.0 && source != "" {
		events = append(events, domain.Event{
			Message:  fmt.Sprintf("%s: ×%.2f XP bonus applied", source, mult),
			Severity: domain.SeverityInfo,
		})
	}

	t := now
	p.LastXPActionAt = &t

	src := source
	if src == "" {
		src = "unspecified"
	}
	metrics.XPAwarded.WithLabelValues(src).Add(float64(actual))
	metrics.StreakDays.Set(float64(p.Streak))
	return events
}

// updateStreakLocked applies the streak continuity rules. Same-day calls and
// backward clock skew are no-ops; a gap of one day extends the streak; a
// longer gap consumes a freeze if one is available, else resets.
func (e *Engine) updateStreakLocked(now time.Time) []domain.Event {
	p := &e.profile
	today := domain.DateKey(now)

	if p.LastActivityDate == today {
		return nil
	}
	if p.LastActivityDate == "" {
		p.Streak = 1
		p.LastActivityDate = today
		return nil
	}

	gap := domain.DaysBetween(p.LastActivityDate, today)
	switch {
	case gap <= 0:
		// Clock skew: silently preserve current state.
		return nil

	case gap == 1:
		p.Streak++
		p.LastActivityDate = today
		return nil

	default:
		if p.StreakFreezes > 0 {
			p.StreakFreezes--
			p.Streak++
			p.LastActivityDate = today
			metrics.FreezesConsumed.Inc()
			return []domain.Event{{
				Message:  fmt.Sprintf("Streak freeze used, your %d-day streak lives on", p.Streak),
				Severity: domain.SeverityInfo,
			}}
		}

		var events []domain.Event
		if p.Streak >= 3 {
			events = append(events, domain.Event{
				Message:  fmt.Sprintf("Streak reset after %d days away, back to day one", gap),
				Severity: domain.SeverityWarning,
			})
		}
		p.Streak = 1
		p.LastActivityDate = today
		return events
	}
}

// RecordDailyAction increments one daily counter. It does not award XP or
// touch the streak; callers pair it with AddXP when they want both.
func (e *Engine) RecordDailyAction(kind domain.ActionKind) error {
	e.mu.Lock()

	e.rolloverLocked(e.clock.Now())

	p := &e.profile
	switch kind {
	case domain.ActionTask:
		p.DailyTasksCompleted++
	case domain.ActionFocus:
		p.DailyFocusSessions++
	case domain.ActionShoutout:
		p.DailyShoutoutsGiven++
	case domain.ActionSocial:
		p.DailySocialEngagements++
	default:
		e.mu.Unlock()
		return fmt.Errorf("record action %q: %w", kind, domain.ErrUnknownActionKind)
	}

	metrics.DailyActions.WithLabelValues(string(kind)).Inc()
	e.saveLocked()
	e.mu.Unlock()
	return nil
}

// MarkCheckedIn records the once-daily check-in, awarding its XP through the
// normal pipeline. Repeat calls on the same day are no-ops.
func (e *Engine) MarkCheckedIn() domain.Profile {
	e.mu.Lock()

	now := e.clock.Now()
	e.rolloverLocked(now)

	var events []domain.Event
	today := domain.DateKey(now)
	if e.profile.LastCheckinDate != today {
		e.profile.LastCheckinDate = today
		events = e.awardLocked(checkInXP, "Daily check-in", now)
	}
	e.saveLocked()

	achEvents := e.checkAchievementsLocked(now)
	if len(achEvents) > 0 {
		e.saveLocked()
	}

	snapshot := e.profile.Clone()
	e.mu.Unlock()

	e.dispatch(events)
	e.dispatch(achEvents)
	return snapshot
}

// UnlockAchievement unlocks a catalog entry directly, bypassing predicate
// evaluation. Already-earned entries stay untouched (monotonic).
func (e *Engine) UnlockAchievement(id string) error {
	e.mu.Lock()

	a := e.profile.AchievementByID(id)
	if a == nil {
		e.mu.Unlock()
		return fmt.Errorf("unlock %q: %w", id, domain.ErrUnknownAchievement)
	}

	var events []domain.Event
	if !a.Earned {
		a.Earned = true
		t := e.clock.Now()
		a.EarnedAt = &t
		metrics.AchievementsUnlocked.Inc()
		events = append(events, domain.Event{
			Message:  fmt.Sprintf("Achievement unlocked: %s %s", a.Icon, a.Title),
			Severity: domain.SeveritySuccess,
		})
		e.saveLocked()
	}

	e.mu.Unlock()
	e.dispatch(events)
	return nil
}

// UpdatePersonalGoals applies a partial goals update. Every provided target
// must be positive.
func (e *Engine) UpdatePersonalGoals(patch GoalsPatch) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, v := range []*int{patch.Tasks, patch.FocusSessions, patch.SocialEngagements} {
		if v != nil && *v <= 0 {
			return domain.ErrInvalidGoal
		}
	}

	goals := &e.profile.PersonalGoals
	if patch.Tasks != nil {
		goals.Tasks = *patch.Tasks
	}
	if patch.FocusSessions != nil {
		goals.FocusSessions = *patch.FocusSessions
	}
	if patch.SocialEngagements != nil {
		goals.SocialEngagements = *patch.SocialEngagements
	}

	e.saveLocked()
	return nil
}

// GoalsPatch is a partial personal-goals update; nil fields are unchanged.
type GoalsPatch struct {
	Tasks             *int `json:"tasks"`
	FocusSessions     *int `json:"focusSessions"`
	SocialEngagements *int `json:"socialEngagements"`
}

// SetLastCompletedTask records (or with "" clears) the transient
// last-completed-task marker consumers use for recognition prompts.
func (e *Engine) SetLastCompletedTask(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profile.LastCompletedTask = name
	e.saveLocked()
}

// checkAchievementsLocked evaluates every unearned predicate against current
// state and refreshes progress counters. Earned state never reverts.
func (e *Engine) checkAchievementsLocked(now time.Time) []domain.Event {
	p := &e.profile
	var events []domain.Event

	for i := range p.Achievements {
		a := &p.Achievements[i]

		if read, ok := achievementProgress[a.ID]; ok && a.Target > 0 {
			cur := read(p)
			if cur > a.Target {
				cur = a.Target
			}
			if cur > a.Current {
				a.Current = cur
			}
		}

		if a.Earned {
			continue
		}
		pred, ok := achievementPredicates[a.ID]
		if !ok || !pred(p) {
			continue
		}

		a.Earned = true
		t := now
		a.EarnedAt = &t
		metrics.AchievementsUnlocked.Inc()
		events = append(events, domain.Event{
			Message:  fmt.Sprintf("Achievement unlocked: %s %s", a.Icon, a.Title),
			Severity: domain.SeveritySuccess,
		})
	}
	return events
}

// saveLocked persists the profile blob. Persistence is best-effort: on
// failure the session continues in memory.
func (e *Engine) saveLocked() {
	raw, err := json.Marshal(e.profile)
	if err != nil {
		metrics.ProfileSaves.WithLabelValues("error").Inc()
		log.Printf("[gamification] marshal profile: %v", err)
		return
	}
	if err := e.store.SaveProfile(raw); err != nil {
		metrics.ProfileSaves.WithLabelValues("error").Inc()
		log.Printf("[gamification] save profile: %v (continuing in memory)", err)
		return
	}
	metrics.ProfileSaves.WithLabelValues("ok").Inc()
}

// dispatch pushes events to the notification sink. Never called while
// holding the lock.
func (e *Engine) dispatch(events []domain.Event) {
	for _, ev := range events {
		e.notifier.Notify(ev.Message, ev.Severity)
	}
}
