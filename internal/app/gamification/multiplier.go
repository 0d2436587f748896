package gamification

// Streak multiplier tiers. The highest applicable tier wins; tiers do not
// stack within a category.
const (
	streakTierLegend   = 30 // ×2.0
	streakTierVeteran  = 14 // ×1.75
	streakTierWeek     = 7  // ×1.5
	comboTierHot       = 5  // ×1.5
	comboTierWarm      = 3  // ×1.25
)

// ComputeMultiplier returns the XP multiplier for the given streak length,
// combo count, and early-bird flag. Applicable tiers multiply together.
// Pure function: identical inputs always yield identical output.
func ComputeMultiplier(streak, combo int, earlyBird bool) float64 {
	m := 1.0

	switch {
	case streak >= streakTierLegend:
		m *= 2.0
	case streak >= streakTierVeteran:
		m *= 1.75
	case streak >= streakTierWeek:
		m *= 1.5
	}

	switch {
	case combo >= comboTierHot:
		m *= 1.5
	case combo >= comboTierWarm:
		m *= 1.25
	}

	if earlyBird {
		m *= 1.5
	}

	return m
}
