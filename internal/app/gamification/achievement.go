package gamification

import (
	"github.com/missionhq/missionhq/internal/domain"
)

// Unlock predicates keyed by achievement ID. Catalog entries without a
// predicate unlock only through Engine.UnlockAchievement.
var achievementPredicates = map[string]func(*domain.Profile) bool{
	"week_warrior": func(p *domain.Profile) bool {
		return p.Streak >= 7
	},
	"fortnight_force": func(p *domain.Profile) bool {
		return p.Streak >= 14
	},
	"streak_legend": func(p *domain.Profile) bool {
		return p.Streak >= 30
	},
	"goal_trifecta": func(p *domain.Profile) bool {
		return p.DailyTasksCompleted >= p.PersonalGoals.Tasks &&
			p.DailyFocusSessions >= p.PersonalGoals.FocusSessions &&
			p.DailySocialEngagements >= p.PersonalGoals.SocialEngagements
	},
}

// Progress readers for achievements that carry a Target. Displayed progress
// is monotonic: it records the best value seen, not the live one.
var achievementProgress = map[string]func(*domain.Profile) int{
	"week_warrior":    func(p *domain.Profile) int { return p.Streak },
	"fortnight_force": func(p *domain.Profile) int { return p.Streak },
	"streak_legend":   func(p *domain.Profile) int { return p.Streak },
}
