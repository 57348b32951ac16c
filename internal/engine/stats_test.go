package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampRatingsDefaultsAndBounds(t *testing.T) {
	r := ClampRatings(PartialRatings{
		TraitEmpathy:   130,
		TraitListening: -20,
		TraitTrust:     55.5,
	})

	assert.Equal(t, 100.0, r.Empathy)
	assert.Equal(t, 0.0, r.Listening)
	assert.Equal(t, 55.5, r.Trust)
	assert.Equal(t, 0.0, r.FollowUp)
	assert.Equal(t, 0.0, r.Closing)
	assert.Equal(t, 0.0, r.Relationship)
}

func TestClampRatingsIdempotent(t *testing.T) {
	partial := PartialRatings{TraitEmpathy: 250, TraitClosing: -1, TraitFollowUp: 42}
	once := ClampRatings(partial)

	asPartial := make(PartialRatings)
	for _, trait := range Traits {
		asPartial[trait] = once.Get(trait)
	}
	assert.Equal(t, once, ClampRatings(asPartial))
}

func TestPartialFromMapDropsUnknownKeys(t *testing.T) {
	partial := PartialFromMap(map[string]float64{
		"empathy":   70,
		"closing":   61,
		"charisma":  99,
		"followUp":  58,
		"FOLLOW_UP": 1,
	})

	require.Len(t, partial, 3)
	assert.Equal(t, 70.0, partial[TraitEmpathy])
	assert.Equal(t, 61.0, partial[TraitClosing])
	assert.Equal(t, 58.0, partial[TraitFollowUp])
}

func TestBlendScoreSmoothsTowardRating(t *testing.T) {
	blended := BlendScore(50, 100)
	assert.InDelta(t, 65, blended, 1e-9)
	assert.Greater(t, blended, 50.0)
	assert.Less(t, blended, 100.0)

	assert.Equal(t, 0.0, BlendScore(0, -50))
	assert.Equal(t, 100.0, BlendScore(100, 100))
}

func TestUpdateRollingStatsBlendsAndStamps(t *testing.T) {
	then := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	now := then.Add(48 * time.Hour)
	prior := map[Trait]RollingStat{
		TraitEmpathy: {Score: 60, LastUpdated: then},
		TraitClosing: {Score: 40, LastUpdated: then},
	}

	updated := UpdateRollingStats(prior, PartialRatings{TraitEmpathy: 90}, now)

	assert.InDelta(t, 69, updated[TraitEmpathy].Score, 1e-9)
	assert.Equal(t, now, updated[TraitEmpathy].LastUpdated)

	// Traits absent from the new ratings are untouched, never zeroed.
	assert.Equal(t, prior[TraitClosing], updated[TraitClosing])

	// Input map is not mutated.
	assert.Equal(t, 60.0, prior[TraitEmpathy].Score)
}

func TestUpdateRollingStatsSeedsFirstRating(t *testing.T) {
	now := time.Now()
	updated := UpdateRollingStats(nil, PartialRatings{TraitTrust: 82, TraitListening: 140}, now)

	assert.Equal(t, 82.0, updated[TraitTrust].Score)
	assert.Equal(t, 100.0, updated[TraitListening].Score, "seed ratings are clamped into range")
}

func TestUpdateRollingStatsStaysInRange(t *testing.T) {
	prior := map[Trait]RollingStat{TraitEmpathy: {Score: 95}}
	updated := UpdateRollingStats(prior, PartialRatings{TraitEmpathy: 500}, time.Now())
	assert.LessOrEqual(t, updated[TraitEmpathy].Score, 100.0)

	prior = map[Trait]RollingStat{TraitEmpathy: {Score: 3}}
	updated = UpdateRollingStats(prior, PartialRatings{TraitEmpathy: -500}, time.Now())
	assert.GreaterOrEqual(t, updated[TraitEmpathy].Score, 0.0)
}

func TestRatingsAndXPFromAssessment(t *testing.T) {
	proposed := PartialRatings{TraitEmpathy: 80}

	clean := Assess([]string{"great talking with you today"}, proposed, 45)
	assert.Equal(t, proposed, RatingsFromAssessment(clean, proposed))
	assert.Equal(t, 45, XPFromAssessment(clean, 45))

	violated := Assess([]string{"fuck this lesson is garbage"}, proposed, 45)
	require.True(t, violated.Violated)
	persisted := RatingsFromAssessment(violated, proposed)
	require.Len(t, persisted, len(Traits))
	assert.Less(t, persisted[TraitEmpathy], 80.0)
	assert.Negative(t, XPFromAssessment(violated, 45))
}
