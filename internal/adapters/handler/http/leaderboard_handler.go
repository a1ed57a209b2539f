package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/habitloop/streakboard/internal/core/services"
)

type LeaderboardHandler struct {
	svc *services.LeaderboardService
}

func NewLeaderboardHandler(svc *services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{svc: svc}
}

func (h *LeaderboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/challenges/:id/leaderboard", h.Get)
}

func (h *LeaderboardHandler) Get(c *gin.Context) {
	entries, err := h.svc.Get(c.Request.Context(), c.Param("id"), c.Query("sort_by"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}
