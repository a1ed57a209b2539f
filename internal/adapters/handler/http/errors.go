package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/habitloop/streakboard/internal/core/domain"
	"github.com/habitloop/streakboard/internal/logger"
)

// handleError maps domain errors to a stable status + message pair. No
// internal detail leaks past this point except for the error kind.
func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotMember):
		c.JSON(http.StatusForbidden, gin.H{"error": "not a member of this challenge"})

	case errors.Is(err, domain.ErrChallengeNotFound) || errors.Is(err, domain.ErrUserNotFound) ||
		errors.Is(err, domain.ErrCheckInNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "resource not found"})

	case errors.Is(err, domain.ErrAlreadyMember) || errors.Is(err, domain.ErrFreezeConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrInvalidStatus) || errors.Is(err, domain.ErrInvalidDate) ||
		errors.Is(err, domain.ErrDateInFuture) || errors.Is(err, domain.ErrNotesTooLong) ||
		errors.Is(err, domain.ErrInvalidSortCriterion) ||
		errors.Is(err, domain.ErrFreezeBatchEmpty) || errors.Is(err, domain.ErrFreezeBatchTooLarge) ||
		errors.Is(err, domain.ErrFreezeNotFuture) || errors.Is(err, domain.ErrFreezeTooFar) ||
		errors.Is(err, domain.ErrFreezeDuplicateDate) ||
		errors.Is(err, domain.ErrChallengeTitleEmpty) || errors.Is(err, domain.ErrChallengeTitleLong) ||
		errors.Is(err, domain.ErrChallengeDescLong):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrMetricsStale):
		// the check-in row persisted; only the projection write failed
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "metrics recompute failed",
			"message": "the check-in was saved but metrics may be stale, retry the recompute",
		})

	default:
		logger.S.Errorw("request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
