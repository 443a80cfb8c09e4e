package api

import (
	"errors"
	"net/http"

	"github.com/afriverse/editorial-api/internal/config"
	"github.com/afriverse/editorial-api/internal/models"
	"github.com/afriverse/editorial-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ContentHandler handles content item endpoints
type ContentHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewContentHandler creates a new ContentHandler
func NewContentHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *ContentHandler {
	return &ContentHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "content").Logger(),
	}
}

// Create handles POST /v1/content
func (h *ContentHandler) Create(c *gin.Context) {
	var input models.ContentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	actor := actorFrom(c)
	item, err := h.services.Workflow.Create(c.Request.Context(), &input, actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// Get handles GET /v1/content/:id. Reads of published items count as a
// public view.
func (h *ContentHandler) Get(c *gin.Context) {
	id := c.Param("id")

	item, err := h.services.Workflow.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	if item.Status == models.StatusPublished {
		if err := h.services.Workflow.RecordView(c.Request.Context(), id); err != nil {
			h.log.Error().Err(err).Str("content_id", id).Msg("Failed to record view")
		} else {
			item.Views++
		}
	}

	c.JSON(http.StatusOK, item)
}

// Update handles PUT /v1/content/:id (author content edits)
func (h *ContentHandler) Update(c *gin.Context) {
	var input models.ContentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	actor := actorFrom(c)
	item, err := h.services.Workflow.UpdateDraft(c.Request.Context(), c.Param("id"), &input, actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// transitionRequest is the body of POST /v1/content/:id/transitions
type transitionRequest struct {
	Event   models.Event              `json:"event"`
	Payload *models.TransitionPayload `json:"payload,omitempty"`
}

// Transition handles POST /v1/content/:id/transitions
func (h *ContentHandler) Transition(c *gin.Context) {
	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Event == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "event is required"})
		return
	}

	actor := actorFrom(c)
	item, err := h.services.Workflow.SubmitTransition(
		c.Request.Context(), c.Param("id"), req.Event, actor.ID, actor.Role, req.Payload,
	)
	if err != nil {
		// Show the caller its current options on a bad transition
		if errors.Is(err, models.ErrInvalidTransition) {
			if current, getErr := h.services.Workflow.Get(c.Request.Context(), c.Param("id")); getErr == nil {
				c.JSON(http.StatusConflict, gin.H{
					"error":        err.Error(),
					"kind":         "invalid_transition",
					"status":       current.Status,
					"valid_events": service.ValidEvents(current.Status),
				})
				return
			}
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}
