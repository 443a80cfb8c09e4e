package api

import (
	"errors"
	"net/http"

	"github.com/afriverse/editorial-api/internal/models"
	"github.com/afriverse/editorial-api/internal/validation"
	"github.com/gin-gonic/gin"
)

// respondError maps the workflow error taxonomy onto HTTP responses. Each
// error kind stays distinguishable for the caller.
func respondError(c *gin.Context, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "validation failed",
			"fields": verrs.Fields(),
		})
		return
	}

	switch {
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found", "kind": "not_found"})
	case errors.Is(err, models.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error(), "kind": "permission_denied"})
	case errors.Is(err, models.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "kind": "invalid_transition"})
	case errors.Is(err, models.ErrMissingFeedback):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "missing_feedback"})
	case errors.Is(err, models.ErrInvalidSchedule):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "invalid_schedule"})
	case errors.Is(err, models.ErrConcurrentModification):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "kind": "concurrent_modification"})
	case errors.Is(err, models.ErrWorkflowClosed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "kind": "workflow_closed"})
	case errors.Is(err, models.ErrSlugTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "kind": "slug_taken"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
