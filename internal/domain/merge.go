package domain

import "encoding/json"

// MergeProfile builds a usable profile from a stored JSON blob, tolerating
// missing or partial fields from older schema versions. Absent fields keep
// their defaults; the achievement list is merged per-ID against the current
// catalog so new entries appear for existing users; unlocked themes are a
// union. A nil, empty, or unparseable blob yields the default profile;
// loading never fails.
func MergeProfile(raw []byte) Profile {
	p := DefaultProfile()
	if len(raw) == 0 {
		return p
	}

	var stored Profile
	if err := json.Unmarshal(raw, &stored); err != nil {
		return p
	}

	// Scalar fields: re-unmarshal over the defaults so absent keys keep
	// their default values.
	_ = json.Unmarshal(raw, &p)

	// Achievements: catalog order and text are authoritative; earned state
	// and progress come from the stored blob.
	p.Achievements = AchievementCatalog()
	for i := range p.Achievements {
		cur := &p.Achievements[i]
		for _, old := range stored.Achievements {
			if old.ID != cur.ID {
				continue
			}
			cur.Earned = old.Earned
			cur.EarnedAt = old.EarnedAt
			if old.Current > 0 {
				cur.Current = old.Current
			}
			break
		}
	}

	// Themes: union of defaults and stored set, monotonic by construction.
	themes := DefaultProfile().UnlockedThemes
	for _, id := range stored.UnlockedThemes {
		dup := false
		for _, have := range themes {
			if have == id {
				dup = true
				break
			}
		}
		if !dup {
			themes = append(themes, id)
		}
	}
	p.UnlockedThemes = themes

	sanitize(&p)
	return p
}

// sanitize clamps a loaded profile back inside its invariants. Corrupt
// numbers degrade to safe values rather than failing the load.
func sanitize(p *Profile) {
	def := DefaultProfile()

	if p.Level < 1 {
		p.Level = 1
	}
	if p.XPToNextLevel <= 0 {
		p.XPToNextLevel = def.XPToNextLevel
	}
	if p.XP < 0 {
		p.XP = 0
	}
	if p.XP >= p.XPToNextLevel {
		p.XP = p.XPToNextLevel - 1
	}
	if p.WeeklyXP < 0 {
		p.WeeklyXP = 0
	}
	if p.Streak < 0 {
		p.Streak = 0
	}
	if p.StreakFreezes < 0 {
		p.StreakFreezes = 0
	}
	if p.ComboCount < 0 {
		p.ComboCount = 0
	}
	if p.DailyTasksCompleted < 0 {
		p.DailyTasksCompleted = 0
	}
	if p.DailyFocusSessions < 0 {
		p.DailyFocusSessions = 0
	}
	if p.DailyShoutoutsGiven < 0 {
		p.DailyShoutoutsGiven = 0
	}
	if p.DailySocialEngagements < 0 {
		p.DailySocialEngagements = 0
	}

	if p.PersonalGoals.Tasks <= 0 {
		p.PersonalGoals.Tasks = def.PersonalGoals.Tasks
	}
	if p.PersonalGoals.FocusSessions <= 0 {
		p.PersonalGoals.FocusSessions = def.PersonalGoals.FocusSessions
	}
	if p.PersonalGoals.SocialEngagements <= 0 {
		p.PersonalGoals.SocialEngagements = def.PersonalGoals.SocialEngagements
	}

	// Any theme gated at or below the current level must be unlocked, even
	// when the stored blob predates that theme.
	for _, theme := range ThemeCatalog() {
		if theme.RequiredLevel <= p.Level && !p.HasTheme(theme.ID) {
			p.UnlockedThemes = append(p.UnlockedThemes, theme.ID)
		}
	}
}
