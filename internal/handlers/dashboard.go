package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"autodrive/internal/config"
	"autodrive/internal/models"
	"autodrive/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	log *zap.Logger
}

func NewDashboardHandler(log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{log: log}
}

// teamForRequest resolves which team a manager is asking about. Managers
// default to their own team but may query any team by name.
func teamForRequest(c *gin.Context) string {
	if team := c.Query("team"); team != "" {
		return team
	}
	user := c.MustGet("user").(*models.User)
	return user.Team
}

// TeamOverview returns the aggregated trait averages and activity counters
// for one team.
func (h *DashboardHandler) TeamOverview(c *gin.Context) {
	team := teamForRequest(c)
	if team == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No team specified"})
		return
	}

	overview, err := repository.GetTeamOverview(c.Request.Context(), team)
	if err != nil {
		h.log.Error("Failed to load team overview", zap.Error(err), zap.String("team", team))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load team overview"})
		return
	}
	c.JSON(http.StatusOK, overview)
}

// Timeline returns per-day XP earned by the team over the requested window.
func (h *DashboardHandler) Timeline(c *gin.Context) {
	team := teamForRequest(c)
	if team == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No team specified"})
		return
	}

	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	points, err := repository.GetTeamXPTimeline(c.Request.Context(), team, days)
	if err != nil {
		h.log.Error("Failed to load XP timeline", zap.Error(err), zap.String("team", team))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load timeline"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"team": team, "days": days, "points": points})
}

// Leaderboard ranks reps by cumulative XP, company-wide or per team.
func (h *DashboardHandler) Leaderboard(c *gin.Context) {
	limit := config.Conf.Dashboard.LeaderboardSize
	if v, err := strconv.Atoi(c.DefaultQuery("limit", "0")); err == nil && v > 0 && v <= 100 {
		limit = v
	}

	entries, err := repository.GetLeaderboard(c.Request.Context(), c.Query("team"), limit)
	if err != nil {
		h.log.Error("Failed to load leaderboard", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load leaderboard"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}

// Report serves the most recent generated team report page.
func (h *DashboardHandler) Report(c *gin.Context) {
	team := teamForRequest(c)
	if team == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No team specified"})
		return
	}

	path := filepath.Join(config.Conf.Digest.ReportDir, team+".html")
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No report generated yet for this team"})
		return
	}
	c.File(path)
}
