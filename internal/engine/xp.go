package engine

import "math"

const (
	// BaseXP scales the per-level advancement threshold.
	BaseXP = 100
	// MaxLevel is a hard cap; level 100 is a fixed terminal state.
	MaxLevel = 100
)

// Level is the display tuple derived from a user's cumulative XP. It is
// never stored; xp is the single source of truth.
type Level struct {
	Level       int   `json:"level"`
	LevelXP     int64 `json:"levelXp"`
	NextLevelXP int64 `json:"nextLevelXp"`
	Progress    int   `json:"progress"`
}

// levelThreshold is the XP needed to advance past the given level,
// following a power-law curve.
func levelThreshold(level int) int64 {
	return int64(math.Floor(BaseXP * math.Pow(float64(level), 1.5)))
}

// CalculateLevel walks the cumulative threshold curve upward from level 1
// until xp falls short of the next threshold. Negative xp is bad stored
// data, not a reason to crash a caller; it clamps to the level-1 baseline.
func CalculateLevel(xp int64) Level {
	if xp < 0 {
		xp = 0
	}

	var cumulative int64
	for level := 1; level < MaxLevel; level++ {
		threshold := levelThreshold(level)
		if xp < cumulative+threshold {
			levelXP := xp - cumulative
			return Level{
				Level:       level,
				LevelXP:     levelXP,
				NextLevelXP: threshold,
				Progress:    int(math.Floor(float64(levelXP) / float64(threshold) * 100)),
			}
		}
		cumulative += threshold
	}

	// Terminal state: no further progress bar past level 100.
	remainder := xp - cumulative
	return Level{Level: MaxLevel, LevelXP: remainder, NextLevelXP: remainder, Progress: 100}
}
