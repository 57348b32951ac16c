package handlers

import (
	"testing"

	"autodrive/internal/engine"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraitValueKeepsUnratedTraitsNull(t *testing.T) {
	ratings := engine.PartialRatings{
		engine.TraitEmpathy: 130,
		engine.TraitClosing: -5,
	}

	assert.Nil(t, traitValue(ratings, engine.TraitTrust), "unrated traits must not be stored as zero scores")
	assert.Nil(t, traitValue(nil, engine.TraitEmpathy))

	empathy := traitValue(ratings, engine.TraitEmpathy)
	require.NotNil(t, empathy)
	assert.Equal(t, 100.0, *empathy)

	closing := traitValue(ratings, engine.TraitClosing)
	require.NotNil(t, closing)
	assert.Equal(t, 0.0, *closing)
}

func TestTraitValueViolationFillsEveryTrait(t *testing.T) {
	// A violated attempt marks down all six traits, so the persisted log row
	// carries a value in every column.
	a := engine.Assess([]string{"fuck this lesson is garbage"}, engine.PartialRatings{engine.TraitEmpathy: 80}, 50)
	require.True(t, a.Violated)

	final := engine.RatingsFromAssessment(a, engine.PartialRatings{engine.TraitEmpathy: 80})
	for _, trait := range engine.Traits {
		assert.NotNil(t, traitValue(final, trait), "trait %s", trait)
	}
}
