// internal/repository/dashboard.go
//
// Aggregation queries behind the manager dashboard. The heavier rollups are
// cached with a short TTL since managers refresh these views far more often
// than the data changes.
package repository

import (
	"context"
	"fmt"
	"time"

	"autodrive/internal/config"
	"autodrive/internal/database"

	gocache "github.com/patrickmn/go-cache"
)

var dashboardCache = gocache.New(5*time.Minute, 10*time.Minute)

func cacheTTL() time.Duration {
	if config.Conf != nil && config.Conf.Dashboard.CacheTTLSeconds > 0 {
		return time.Duration(config.Conf.Dashboard.CacheTTLSeconds) * time.Second
	}
	return 5 * time.Minute
}

// TeamTraitAverage is one trait's mean rolling score across a team.
type TeamTraitAverage struct {
	Trait    string  `json:"trait"`
	AvgScore float64 `json:"avgScore"`
	Reps     int     `json:"reps"`
}

// TeamOverview aggregates a team's current standing.
type TeamOverview struct {
	Team             string             `json:"team"`
	TraitAverages    []TeamTraitAverage `json:"traitAverages"`
	LessonsCompleted int64              `json:"lessonsCompleted"`
	Violations30d    int64              `json:"violations30d"`
	TotalXP          int64              `json:"totalXp"`
}

// XPTimelinePoint is one day's XP earned across a team or a single rep.
type XPTimelinePoint struct {
	Date time.Time `json:"date"`
	XP   int64     `json:"xp"`
}

// LeaderboardEntry ranks one rep by cumulative XP.
type LeaderboardEntry struct {
	UserID    uint   `json:"userId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Team      string `json:"team"`
	XP        int64  `json:"xp"`
}

// GetTeamOverview computes the trait averages and activity counters for one
// team, served from cache when fresh.
func GetTeamOverview(ctx context.Context, team string) (*TeamOverview, error) {
	cacheKey := "overview:" + team
	if cached, ok := dashboardCache.Get(cacheKey); ok {
		return cached.(*TeamOverview), nil
	}

	overview := &TeamOverview{Team: team}

	traitQuery := `
		SELECT ts.trait AS trait, AVG(ts.score) AS avg_score, COUNT(DISTINCT ts.user_id) AS reps
		FROM trait_stats ts
		JOIN users u ON ts.user_id = u.id
		WHERE u.team = ?
		GROUP BY ts.trait
		ORDER BY ts.trait;
	`
	if err := database.DB.WithContext(ctx).Raw(traitQuery, team).Scan(&overview.TraitAverages).Error; err != nil {
		return nil, fmt.Errorf("team trait averages: %w", err)
	}

	countQuery := `
		SELECT
			COUNT(*) AS lessons,
			COUNT(*) FILTER (WHERE ll.violated AND ll.created_at >= NOW() - INTERVAL '30 days') AS violations
		FROM lesson_logs ll
		JOIN users u ON ll.user_id = u.id
		WHERE u.team = ?;
	`
	var counts struct {
		Lessons    int64
		Violations int64
	}
	if err := database.DB.WithContext(ctx).Raw(countQuery, team).Scan(&counts).Error; err != nil {
		return nil, fmt.Errorf("team activity counts: %w", err)
	}
	overview.LessonsCompleted = counts.Lessons
	overview.Violations30d = counts.Violations

	if err := database.DB.WithContext(ctx).
		Raw(`SELECT COALESCE(SUM(xp), 0) FROM users WHERE team = ?`, team).
		Scan(&overview.TotalXP).Error; err != nil {
		return nil, fmt.Errorf("team xp total: %w", err)
	}

	dashboardCache.Set(cacheKey, overview, cacheTTL())
	return overview, nil
}

// GetTeamXPTimeline returns per-day XP earned by a team over the window.
func GetTeamXPTimeline(ctx context.Context, team string, days int) ([]XPTimelinePoint, error) {
	if days <= 0 || days > 365 {
		days = 30
	}

	var points []XPTimelinePoint
	query := `
		SELECT date_trunc('day', ll.created_at) AS date, SUM(ll.xp_awarded) AS xp
		FROM lesson_logs ll
		JOIN users u ON ll.user_id = u.id
		WHERE u.team = ? AND ll.created_at >= NOW() - (? * INTERVAL '1 day')
		GROUP BY 1
		ORDER BY 1;
	`
	err := database.DB.WithContext(ctx).Raw(query, team, days).Scan(&points).Error
	return points, err
}

// GetLeaderboard returns the top reps by XP, optionally scoped to a team.
func GetLeaderboard(ctx context.Context, team string, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	cacheKey := fmt.Sprintf("leaderboard:%s:%d", team, limit)
	if cached, ok := dashboardCache.Get(cacheKey); ok {
		return cached.([]LeaderboardEntry), nil
	}

	var entries []LeaderboardEntry
	q := database.DB.WithContext(ctx).
		Table("users").
		Select("id AS user_id, first_name, last_name, team, xp").
		Where("role = ?", "rep").
		Order("xp DESC").
		Limit(limit)
	if team != "" {
		q = q.Where("team = ?", team)
	}
	if err := q.Scan(&entries).Error; err != nil {
		return nil, err
	}

	dashboardCache.Set(cacheKey, entries, cacheTTL())
	return entries, nil
}

// FlushDashboardCache drops every cached rollup. Used by tests and after
// bulk imports.
func FlushDashboardCache() {
	dashboardCache.Flush()
}
