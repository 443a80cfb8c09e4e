package api

import (
	"net/http"

	"github.com/afriverse/editorial-api/internal/models"
	"github.com/afriverse/editorial-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ReviewHandler handles editorial review endpoints
type ReviewHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(services *service.Services, log zerolog.Logger) *ReviewHandler {
	return &ReviewHandler{
		services: services,
		log:      log.With().Str("handler", "review").Logger(),
	}
}

// GetReview handles GET /v1/content/:id/review
func (h *ReviewHandler) GetReview(c *gin.Context) {
	review, err := h.services.Review.GetReview(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

// UpdateReview handles PATCH /v1/content/:id/review
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	var update models.ReviewUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	actor := actorFrom(c)
	review, err := h.services.Review.UpdateReview(
		c.Request.Context(), c.Param("id"), &update, actor.ID, actor.Role,
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

// feedbackRequest is the body of POST /v1/content/:id/feedback
type feedbackRequest struct {
	Kind models.FeedbackKind `json:"kind"`
	Body string              `json:"body"`
}

// AddFeedback handles POST /v1/content/:id/feedback
func (h *ReviewHandler) AddFeedback(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	actor := actorFrom(c)
	entry, err := h.services.Review.AddFeedback(
		c.Request.Context(), c.Param("id"), req.Kind, req.Body, actor.ID, actor.Role,
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// GetFeedback handles GET /v1/content/:id/feedback
func (h *ReviewHandler) GetFeedback(c *gin.Context) {
	entries, err := h.services.Review.GetFeedback(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"feedback": entries, "count": len(entries)})
}

// GetHistory handles GET /v1/content/:id/history
func (h *ReviewHandler) GetHistory(c *gin.Context) {
	entries, err := h.services.Review.GetHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": entries, "count": len(entries)})
}
