package engine

import "time"

// BlendAlpha is the exponential-moving-average weight given to the newest
// rating when folding it into a persisted trait score. Traits should evolve
// smoothly rather than jump to the latest single lesson.
const BlendAlpha = 0.3

// RollingStat is a user's long-running proficiency in one trait. Score is
// always within [0,100].
type RollingStat struct {
	Score       float64   `json:"score"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// BlendScore folds one new rating into a prior persisted score.
func BlendScore(prior, rating float64) float64 {
	return ClampScore(prior*(1-BlendAlpha) + rating*BlendAlpha)
}

// UpdateRollingStats merges one attempt's (possibly moderation-adjusted)
// ratings into the user's persisted per-trait stats. Traits absent from the
// input are left untouched, never zeroed. A trait with no prior stat is
// seeded with the clamped rating itself so a first lesson is not dragged
// toward a phantom zero. LastUpdated advances only on traits that changed.
func UpdateRollingStats(prior map[Trait]RollingStat, ratings PartialRatings, now time.Time) map[Trait]RollingStat {
	updated := make(map[Trait]RollingStat, len(prior)+len(ratings))
	for trait, stat := range prior {
		updated[trait] = stat
	}
	for trait, rating := range ratings {
		rating = ClampScore(rating)
		stat, ok := updated[trait]
		if !ok {
			updated[trait] = RollingStat{Score: rating, LastUpdated: now}
			continue
		}
		stat.Score = BlendScore(stat.Score, rating)
		stat.LastUpdated = now
		updated[trait] = stat
	}
	return updated
}

// RatingsFromAssessment picks the ratings the caller should persist: the
// moderation-adjusted set when the attempt violated, the grader's proposal
// otherwise.
func RatingsFromAssessment(a Assessment, proposed PartialRatings) PartialRatings {
	if !a.Violated || a.AdjustedRatings == nil {
		return proposed
	}
	full := make(PartialRatings, len(Traits))
	for _, trait := range Traits {
		full[trait] = a.AdjustedRatings.Get(trait)
	}
	return full
}

// XPFromAssessment picks the XP delta to persist for one attempt.
func XPFromAssessment(a Assessment, proposed int) int {
	if a.Violated && a.AdjustedXP != nil {
		return *a.AdjustedXP
	}
	return proposed
}
