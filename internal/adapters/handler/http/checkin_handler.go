package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/habitloop/streakboard/internal/adapters/handler/http/middleware"
	"github.com/habitloop/streakboard/internal/core/services"
)

type CheckInHandler struct {
	checkIns *services.CheckInService
	freezes  *services.FreezeService
	metrics  *services.MetricsService
}

func NewCheckInHandler(checkIns *services.CheckInService, freezes *services.FreezeService, metrics *services.MetricsService) *CheckInHandler {
	return &CheckInHandler{
		checkIns: checkIns,
		freezes:  freezes,
		metrics:  metrics,
	}
}

type submitCheckInRequest struct {
	Date   string `json:"date" binding:"required"`
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

type scheduleFreezeRequest struct {
	Dates []string `json:"dates" binding:"required"`
}

func (h *CheckInHandler) RegisterRoutes(router *gin.RouterGroup) {
	challenges := router.Group("/challenges/:id")
	{
		challenges.POST("/checkins", h.Submit)
		challenges.GET("/checkins", h.History)
		challenges.POST("/freezes", h.ScheduleFreezes)
		challenges.GET("/metrics", h.GetMetrics)
		challenges.POST("/metrics/recompute", h.Recompute)
	}
}

func (h *CheckInHandler) Submit(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req submitCheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	input := services.SubmitCheckInInput{
		ChallengeID: c.Param("id"),
		UserID:      userID,
		Date:        req.Date,
		Status:      req.Status,
		Notes:       req.Notes,
	}

	if err := h.checkIns.Submit(c.Request.Context(), input); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *CheckInHandler) History(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	history, err := h.checkIns.History(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, history)
}

func (h *CheckInHandler) ScheduleFreezes(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req scheduleFreezeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	created, err := h.freezes.Schedule(c.Request.Context(), c.Param("id"), userID, req.Dates)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"created_count": created})
}

func (h *CheckInHandler) GetMetrics(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	metrics, err := h.metrics.Get(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, metrics)
}

// Recompute exists for repair and backfill; the regular write path already
// recomputes synchronously.
func (h *CheckInHandler) Recompute(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	metrics, err := h.metrics.Recompute(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, metrics)
}
