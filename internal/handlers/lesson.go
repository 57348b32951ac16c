package handlers

import (
	"net/http"
	"time"

	"autodrive/internal/engine"
	"autodrive/internal/models"
	"autodrive/internal/observability"
	"autodrive/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type LessonHandler struct {
	log       *zap.Logger
	catalog   *models.Catalog
	moderator *engine.Moderator
}

func NewLessonHandler(log *zap.Logger, catalog *models.Catalog) *LessonHandler {
	return &LessonHandler{
		log:       log,
		catalog:   catalog,
		moderator: engine.NewModerator(nil),
	}
}

func (h *LessonHandler) ListLessons(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"lessons": h.catalog.Lessons})
}

// transcriptTurn is one chat turn of the roleplay. Only user turns feed
// moderation; the AI's own lines are never scored.
type transcriptTurn struct {
	Role    string `json:"role" binding:"required"`
	Content string `json:"content"`
}

// traitValue converts one rating for persistence. Traits the grader never
// rated stay NULL so history reads can tell "not rated" from a real 0.
func traitValue(ratings engine.PartialRatings, trait engine.Trait) *float64 {
	v, ok := ratings[trait]
	if !ok {
		return nil
	}
	clamped := engine.ClampScore(v)
	return &clamped
}

type completeLessonRequest struct {
	Transcript []transcriptTurn   `json:"transcript"`
	Ratings    map[string]float64 `json:"ratings"`
	XPAwarded  int                `json:"xpAwarded"`
}

// CompleteLesson ingests one finished roleplay attempt: the grader's
// proposed ratings and XP plus the transcript. Moderation may override the
// proposal; the surviving ratings are blended into the user's rolling stats
// and the XP delta is applied, all in one transaction.
func (h *LessonHandler) CompleteLesson(c *gin.Context) {
	user := c.MustGet("user").(*models.User)

	lessonID := c.Param("id")
	lesson, ok := h.catalog.Find(lessonID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown lesson"})
		return
	}

	var req completeLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind lesson completion", zap.Error(err), zap.String("lessonID", lessonID))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	userMessages := make([]string, 0, len(req.Transcript))
	for _, turn := range req.Transcript {
		if turn.Role == "user" {
			userMessages = append(userMessages, turn.Content)
		}
	}

	proposedXP := req.XPAwarded
	if proposedXP == 0 {
		proposedXP = lesson.BaseXP
	}

	proposed := engine.PartialFromMap(req.Ratings)
	assessment := h.moderator.Assess(userMessages, proposed, proposedXP)

	finalRatings := engine.RatingsFromAssessment(assessment, proposed)
	finalXP := engine.XPFromAssessment(assessment, proposedXP)

	prior, err := repository.GetTraitStats(c.Request.Context(), user.ID)
	if err != nil {
		h.log.Error("Failed to load trait stats", zap.Error(err), zap.Uint("userID", user.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile stats"})
		return
	}

	now := time.Now().UTC()
	updated := engine.UpdateRollingStats(prior, finalRatings, now)

	logRow := models.LessonLog{
		AttemptID:      uuid.NewString(),
		UserID:         user.ID,
		LessonID:       lesson.ID,
		Empathy:        traitValue(finalRatings, engine.TraitEmpathy),
		Listening:      traitValue(finalRatings, engine.TraitListening),
		Trust:          traitValue(finalRatings, engine.TraitTrust),
		FollowUp:       traitValue(finalRatings, engine.TraitFollowUp),
		Closing:        traitValue(finalRatings, engine.TraitClosing),
		Relationship:   traitValue(finalRatings, engine.TraitRelationship),
		XPAwarded:      finalXP,
		Violated:       assessment.Violated,
		ViolationScore: assessment.Score,
		Severity:       string(assessment.Severity),
		Flags:          pq.StringArray(assessment.Flags),
	}

	totalXP, err := repository.SaveLessonCompletionTx(c.Request.Context(), logRow, updated)
	if err != nil {
		h.log.Error("Failed to persist lesson completion",
			zap.Error(err),
			zap.Uint("userID", user.ID),
			zap.String("lessonID", lesson.ID),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save lesson result"})
		return
	}

	observability.LessonsCompleted.WithLabelValues(string(assessment.Severity)).Inc()
	observability.XPAwarded.Observe(float64(finalXP))
	if assessment.Violated {
		for _, flag := range assessment.Flags {
			observability.BehaviorViolations.WithLabelValues(flag).Inc()
		}
	}

	if assessment.Violated {
		h.log.Warn("Behavior violation during lesson",
			zap.Uint("userID", user.ID),
			zap.String("lessonID", lesson.ID),
			zap.Float64("score", assessment.Score),
			zap.Strings("flags", assessment.Flags),
		)
	}

	c.JSON(http.StatusOK, gin.H{
		"attemptId":  logRow.AttemptID,
		"assessment": assessment,
		"xpAwarded":  finalXP,
		"totalXp":    totalXP,
		"level":      engine.CalculateLevel(totalXP),
	})
}
