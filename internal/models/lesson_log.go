package models

import (
	"time"

	"github.com/lib/pq"
)

// TraitStat is the persisted rolling proficiency score for one user/trait
// pair. Score stays within [0,100]; only the stat updater mutates it.
type TraitStat struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"uniqueIndex:idx_trait_stats_user_trait"`
	User        User   `gorm:"foreignKey:UserID"`
	Trait       string `gorm:"uniqueIndex:idx_trait_stats_user_trait"`
	Score       float64
	LastUpdated time.Time
}

// LessonLog is the immutable record of one completed lesson attempt: the
// (possibly moderation-adjusted) per-trait ratings, the XP actually awarded,
// and the moderation outcome. Trait columns are nullable; NULL means the
// grader never rated that trait, which is not the same as a 0 score.
type LessonLog struct {
	ID        uint   `gorm:"primaryKey"`
	AttemptID string `gorm:"uniqueIndex"`
	UserID    uint   `gorm:"index"`
	User      User   `gorm:"foreignKey:UserID"`
	LessonID  string

	Empathy      *float64
	Listening    *float64
	Trust        *float64
	FollowUp     *float64
	Closing      *float64
	Relationship *float64

	XPAwarded      int
	Violated       bool
	ViolationScore float64
	Severity       string
	Flags          pq.StringArray `gorm:"type:text[]"`

	CreatedAt time.Time
}
