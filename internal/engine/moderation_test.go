package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssessEmptyTranscript(t *testing.T) {
	for _, messages := range [][]string{nil, {}, {""}, {"   ", "\n"}} {
		a := Assess(messages, PartialRatings{TraitEmpathy: 80}, 50)
		assert.False(t, a.Violated)
		assert.Equal(t, SeverityNormal, a.Severity)
		assert.Zero(t, a.Score)
		assert.Empty(t, a.Flags)
		assert.Nil(t, a.AdjustedXP)
		assert.Nil(t, a.AdjustedRatings)
	}
}

func TestAssessCleanTranscript(t *testing.T) {
	a := Assess([]string{
		"Hi, thanks for coming in today.",
		"What matters most to you in your next vehicle?",
		"I can absolutely work with that budget.",
	}, PartialRatings{TraitEmpathy: 72}, 40)

	assert.False(t, a.Violated)
	assert.Equal(t, SeverityNormal, a.Severity)
	assert.Zero(t, a.Score)
	assert.Empty(t, a.Flags)
}

func TestAssessThreatIsZeroTolerance(t *testing.T) {
	a := Assess([]string{"I will kill you"}, nil, 50)

	require.True(t, a.Violated, "a single threat must trip moderation even below the score threshold")
	assert.Equal(t, SeverityViolation, a.Severity)
	assert.Contains(t, a.Flags, FlagThreat)
	require.NotNil(t, a.AdjustedXP)
	assert.Negative(t, *a.AdjustedXP)
}

func TestAssessRepetitionBonus(t *testing.T) {
	single := Assess([]string{"you are an idiot"}, nil, 50)
	repeated := Assess([]string{
		"you are an idiot",
		"you are an idiot",
		"you are an idiot",
		"you are an idiot",
	}, nil, 50)

	assert.False(t, single.Violated, "one insult alone stays under the threshold")
	assert.Greater(t, repeated.Score, single.Score)
	assert.True(t, repeated.Violated)
}

func TestAssessProfanityAndContempt(t *testing.T) {
	proposed := PartialRatings{
		TraitEmpathy:      80,
		TraitListening:    75,
		TraitTrust:        70,
		TraitFollowUp:     65,
		TraitClosing:      60,
		TraitRelationship: 55,
	}
	a := Assess([]string{"fuck this lesson is garbage"}, proposed, 50)

	require.True(t, a.Violated)
	assert.Contains(t, a.Flags, FlagProfanity)
	assert.Contains(t, a.Flags, FlagContempt)
	require.NotNil(t, a.AdjustedRatings)
	assert.Less(t, a.AdjustedRatings.Empathy, 80.0)
}

func TestAssessMarkdownOnlyReduces(t *testing.T) {
	proposed := PartialRatings{TraitEmpathy: 90, TraitClosing: 10}
	a := Assess([]string{"shut up you idiot, this is garbage, you are worthless"}, proposed, 80)

	require.True(t, a.Violated)
	require.NotNil(t, a.AdjustedRatings)
	clamped := ClampRatings(proposed)
	for _, trait := range Traits {
		adjusted := a.AdjustedRatings.Get(trait)
		assert.LessOrEqual(t, adjusted, clamped.Get(trait), "trait %s", trait)
		assert.GreaterOrEqual(t, adjusted, 0.0, "trait %s", trait)
	}
}

func TestAssessXPPenaltyRange(t *testing.T) {
	transcripts := [][]string{
		{"I will kill you"},
		{"fuck this lesson is garbage"},
		{"fuck you", "i will hurt you", "you are an idiot", "this is trash", "shut up"},
	}
	for _, messages := range transcripts {
		a := Assess(messages, nil, 50)
		require.True(t, a.Violated, "%v", messages)
		require.NotNil(t, a.AdjustedXP)
		assert.GreaterOrEqual(t, *a.AdjustedXP, -100)
		assert.LessOrEqual(t, *a.AdjustedXP, -10)
	}
}

func TestAssessScoreClamped(t *testing.T) {
	blob := make([]string, 0, 20)
	for i := 0; i < 20; i++ {
		blob = append(blob, "i will kill you and i know where you live")
	}
	a := Assess(blob, nil, 50)
	assert.True(t, a.Violated)
	assert.LessOrEqual(t, a.Score, 1.0)
}

func TestAssessDeterministic(t *testing.T) {
	messages := []string{"you are an idiot", "this lesson is pointless"}
	first := Assess(messages, PartialRatings{TraitTrust: 44}, 25)
	second := Assess(messages, PartialRatings{TraitTrust: 44}, 25)
	assert.Equal(t, first, second)
}

type stubClassifier struct{ hits []CategoryHit }

func (s stubClassifier) Classify(string) []CategoryHit { return s.hits }

func TestModeratorAcceptsCustomClassifier(t *testing.T) {
	m := NewModerator(stubClassifier{hits: []CategoryHit{
		{Tag: "custom_category", Hits: 3, Weight: 0.2},
	}})
	a := m.Assess([]string{"anything at all"}, nil, 10)

	assert.True(t, a.Violated)
	assert.Equal(t, []string{"custom_category"}, a.Flags)
	// 3 hits x 0.2 weight + 0.10 repetition bonus.
	assert.InDelta(t, 0.70, a.Score, 1e-9)
}
