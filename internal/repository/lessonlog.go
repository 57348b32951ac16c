// internal/repository/lessonlog.go
package repository

import (
	"context"
	"time"

	"autodrive/internal/database"
	"autodrive/internal/engine"
	"autodrive/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetTraitStats loads a user's persisted rolling stats keyed by trait.
func GetTraitStats(ctx context.Context, userID uint) (map[engine.Trait]engine.RollingStat, error) {
	var rows []models.TraitStat
	if err := database.DB.WithContext(ctx).Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, err
	}

	stats := make(map[engine.Trait]engine.RollingStat, len(rows))
	for _, row := range rows {
		stats[engine.Trait(row.Trait)] = engine.RollingStat{Score: row.Score, LastUpdated: row.LastUpdated}
	}
	return stats, nil
}

// SaveLessonCompletionTx persists the full effect of one completed lesson in
// a single transaction: the immutable lesson log, the upserted trait stats,
// and the XP increment. The user's total XP never drops below zero, even
// when a violation penalty is larger than what remains. Returns the user's
// new XP total.
func SaveLessonCompletionTx(ctx context.Context, log models.LessonLog, stats map[engine.Trait]engine.RollingStat) (int64, error) {
	var newXP int64
	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&log).Error; err != nil {
			return err
		}

		now := time.Now().UTC()
		for trait, stat := range stats {
			row := models.TraitStat{
				UserID:      log.UserID,
				Trait:       string(trait),
				Score:       stat.Score,
				LastUpdated: stat.LastUpdated,
			}
			if row.LastUpdated.IsZero() {
				row.LastUpdated = now
			}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "trait"}},
				DoUpdates: clause.AssignmentColumns([]string{"score", "last_updated"}),
			}).Create(&row).Error
			if err != nil {
				return err
			}
		}

		if err := tx.Model(&models.User{}).Where("id = ?", log.UserID).
			Update("xp", gorm.Expr("GREATEST(xp + ?, 0)", log.XPAwarded)).Error; err != nil {
			return err
		}

		return tx.Raw(`SELECT xp FROM users WHERE id = ?`, log.UserID).Scan(&newXP).Error
	})
	return newXP, err
}

// GetLessonHistory returns a user's most recent completions, newest first.
func GetLessonHistory(ctx context.Context, userID uint, limit int) ([]models.LessonLog, error) {
	if limit <= 0 {
		limit = 20
	}
	var logs []models.LessonLog
	err := database.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

// HasCompletedLessonToday reports whether the user finished any lesson since
// UTC midnight. Drives the practice reminder scheduler.
func HasCompletedLessonToday(userID uint) (bool, error) {
	var count int64
	midnight := time.Now().UTC().Truncate(24 * time.Hour)
	err := database.DB.Model(&models.LessonLog{}).
		Where("user_id = ? AND created_at >= ?", userID, midnight).
		Count(&count).Error
	return count > 0, err
}
