package handlers

import (
	"fmt"
	"net/http"
	"time"

	"autodrive/internal/engine"
	"autodrive/internal/models"
	"autodrive/internal/repository"
	"autodrive/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProfileHandler struct {
	log *zap.Logger
}

func NewProfileHandler(log *zap.Logger) *ProfileHandler {
	return &ProfileHandler{log: log}
}

// ShowProfile returns the user's info, six rolling trait stats and the
// level tuple derived from stored XP.
func (h *ProfileHandler) ShowProfile(c *gin.Context) {
	user := c.MustGet("user").(*models.User)

	stats, err := repository.GetTraitStats(c.Request.Context(), user.ID)
	if err != nil {
		h.log.Error("Failed to load trait stats", zap.Error(err), zap.Uint("userID", user.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}

	// Every trait is reported, defaulting to a zero stat for traits the
	// user has never been rated on.
	traitStats := make(map[string]engine.RollingStat, len(engine.Traits))
	for _, trait := range engine.Traits {
		traitStats[string(trait)] = stats[trait]
	}

	reminderTime := user.ReminderTime
	if user.TimeZone != "" && user.ReminderTime != "" {
		if loc, err := time.LoadLocation(user.TimeZone); err == nil {
			if utcTime, err := time.Parse("15:04", user.ReminderTime); err == nil {
				now := time.Now().UTC()
				reminderUTC := time.Date(now.Year(), now.Month(), now.Day(), utcTime.Hour(), utcTime.Minute(), 0, 0, time.UTC)
				reminderTime = reminderUTC.In(loc).Format("15:04")
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         user.ID,
		"email":      user.Email,
		"firstName":  user.FirstName,
		"lastName":   user.LastName,
		"role":       user.Role,
		"team":       user.Team,
		"xp":         user.XP,
		"level":      engine.CalculateLevel(user.XP),
		"traitStats": traitStats,
		"notifications": gin.H{
			"enabled":      user.EmailNotifications,
			"reminderTime": reminderTime,
			"timezone":     user.TimeZone,
		},
	})
}

// ShowHistory returns the user's recent lesson completions.
func (h *ProfileHandler) ShowHistory(c *gin.Context) {
	user := c.MustGet("user").(*models.User)

	logs, err := repository.GetLessonHistory(c.Request.Context(), user.ID, 20)
	if err != nil {
		h.log.Error("Failed to load lesson history", zap.Error(err), zap.Uint("userID", user.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": logs})
}

type updateInfoRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (h *ProfileHandler) UpdateInfo(c *gin.Context) {
	user := c.MustGet("user").(*models.User)

	var req updateInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	if err := repository.UpdateUser(c.Request.Context(), user.ID, req.FirstName, req.LastName); err != nil {
		h.log.Error("Failed to update user info", zap.Error(err), zap.Uint("userID", user.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}
	c.Status(http.StatusNoContent)
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

func (h *ProfileHandler) UpdatePassword(c *gin.Context) {
	user := c.MustGet("user").(*models.User)

	var req updatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	if !user.CheckPassword(req.CurrentPassword) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Incorrect current password"})
		return
	}
	if !utils.IsComplexPassword(req.NewPassword) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "New password does not meet complexity requirements"})
		return
	}
	if err := repository.UpdateUserPassword(c.Request.Context(), user.ID, req.NewPassword); err != nil {
		h.log.Error("Failed to update password", zap.Error(err), zap.Uint("userID", user.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}
	c.Status(http.StatusNoContent)
}

type notificationSettingsRequest struct {
	Enabled      bool   `json:"enabled"`
	ReminderTime string `json:"reminderTime"`
	Timezone     string `json:"timezone"`
}

func (h *ProfileHandler) UpdateNotificationSettings(c *gin.Context) {
	user := c.MustGet("user").(*models.User)

	var req notificationSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}
	if req.Timezone == "" {
		req.Timezone = "UTC"
	}

	loc, err := time.LoadLocation(req.Timezone)
	if err != nil {
		h.log.Error("Invalid timezone identifier", zap.Error(err), zap.String("timezone", req.Timezone))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid timezone"})
		return
	}

	// Combine the current date with the user's selected time so DST is
	// resolved correctly before converting to UTC for storage.
	now := time.Now()
	dateTimeString := fmt.Sprintf("%s %s", now.Format("2006-01-02"), req.ReminderTime)
	parsedTime, err := time.ParseInLocation("2006-01-02 15:04", dateTimeString, loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid time format, use HH:MM"})
		return
	}

	utcReminderTime := parsedTime.UTC().Format("15:04")
	if err := repository.UpdateNotificationPreferences(user.ID, req.Enabled, utcReminderTime, req.Timezone); err != nil {
		h.log.Error("Failed to update notification preferences", zap.Error(err), zap.Uint("userID", user.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save notification settings"})
		return
	}
	c.Status(http.StatusNoContent)
}

type deleteAccountRequest struct {
	Password     string `json:"password" binding:"required"`
	Confirmation string `json:"confirmation" binding:"required"`
}

func (h *ProfileHandler) DeleteAccount(c *gin.Context) {
	user := c.MustGet("user").(*models.User)

	var req deleteAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}
	if req.Confirmation != "DELETE" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Type DELETE to confirm"})
		return
	}
	if !user.CheckPassword(req.Password) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Incorrect password"})
		return
	}
	if err := repository.DeleteUser(c.Request.Context(), user.ID); err != nil {
		h.log.Error("Failed to delete account", zap.Error(err), zap.Uint("userID", user.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account"})
		return
	}

	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	session.Save()
	c.Status(http.StatusNoContent)
}
