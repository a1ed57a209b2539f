package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/habitloop/streakboard/internal/adapters/handler/http/middleware"
	"github.com/habitloop/streakboard/internal/core/services"
)

type ChallengeHandler struct {
	svc *services.ChallengeService
}

func NewChallengeHandler(svc *services.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{svc: svc}
}

type createChallengeRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

func (h *ChallengeHandler) RegisterRoutes(router *gin.RouterGroup) {
	challenges := router.Group("/challenges")
	{
		challenges.POST("", h.Create)
		challenges.GET("", h.List)
		challenges.GET("/:id", h.Get)
		challenges.POST("/:id/join", h.Join)
		challenges.GET("/:id/members", h.Members)
	}
}

func (h *ChallengeHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req createChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	challenge, err := h.svc.Create(c.Request.Context(), services.CreateChallengeInput{
		CreatedBy:   userID,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, challenge)
}

func (h *ChallengeHandler) Get(c *gin.Context) {
	challenge, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, challenge)
}

func (h *ChallengeHandler) List(c *gin.Context) {
	challenges, err := h.svc.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, challenges)
}

func (h *ChallengeHandler) Join(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	membership, err := h.svc.Join(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, membership)
}

func (h *ChallengeHandler) Members(c *gin.Context) {
	members, err := h.svc.Members(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, members)
}
