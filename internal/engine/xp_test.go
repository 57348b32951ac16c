package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateLevelZero(t *testing.T) {
	lvl := CalculateLevel(0)
	assert.Equal(t, Level{Level: 1, LevelXP: 0, NextLevelXP: 100, Progress: 0}, lvl)
}

func TestCalculateLevelNegativeClampsToBaseline(t *testing.T) {
	assert.Equal(t, CalculateLevel(0), CalculateLevel(-500))
}

func TestCalculateLevelExactThreshold(t *testing.T) {
	// Crossing the level-1 threshold lands exactly at the start of level 2.
	lvl := CalculateLevel(100)
	assert.Equal(t, 2, lvl.Level)
	assert.Equal(t, int64(0), lvl.LevelXP)
	assert.Equal(t, levelThreshold(2), lvl.NextLevelXP)
	assert.Equal(t, 0, lvl.Progress)

	// Same at the level-2 boundary: 100 + floor(100*2^1.5) = 382.
	lvl = CalculateLevel(100 + levelThreshold(2))
	assert.Equal(t, 3, lvl.Level)
	assert.Equal(t, int64(0), lvl.LevelXP)
}

func TestCalculateLevelMidLevelProgress(t *testing.T) {
	lvl := CalculateLevel(50)
	assert.Equal(t, 1, lvl.Level)
	assert.Equal(t, int64(50), lvl.LevelXP)
	assert.Equal(t, int64(100), lvl.NextLevelXP)
	assert.Equal(t, 50, lvl.Progress)
}

func TestCalculateLevelMonotonic(t *testing.T) {
	prev := CalculateLevel(0)
	for xp := int64(0); xp <= 2_000_000; xp += 997 {
		lvl := CalculateLevel(xp)
		require.GreaterOrEqual(t, lvl.Level, prev.Level, "level regressed at xp=%d", xp)
		require.GreaterOrEqual(t, lvl.Level, 1)
		require.LessOrEqual(t, lvl.Level, MaxLevel)
		require.GreaterOrEqual(t, lvl.Progress, 0)
		require.LessOrEqual(t, lvl.Progress, 100)
		prev = lvl
	}
}

func TestCalculateLevelTerminal(t *testing.T) {
	// Cumulative XP needed to reach level 100.
	var cumulative int64
	for level := 1; level < MaxLevel; level++ {
		cumulative += levelThreshold(level)
	}

	lvl := CalculateLevel(cumulative)
	assert.Equal(t, MaxLevel, lvl.Level)
	assert.Equal(t, int64(0), lvl.LevelXP)
	assert.Equal(t, lvl.LevelXP, lvl.NextLevelXP)
	assert.Equal(t, 100, lvl.Progress)

	// XP past the cap accumulates but the level is pinned.
	beyond := CalculateLevel(cumulative + 12345)
	assert.Equal(t, MaxLevel, beyond.Level)
	assert.Equal(t, int64(12345), beyond.LevelXP)
	assert.Equal(t, beyond.LevelXP, beyond.NextLevelXP)
	assert.Equal(t, 100, beyond.Progress)
}
