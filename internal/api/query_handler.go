package api

import (
	"net/http"
	"strconv"

	"github.com/afriverse/editorial-api/internal/config"
	"github.com/afriverse/editorial-api/internal/models"
	"github.com/afriverse/editorial-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// QueryHandler handles editorial queue and dashboard endpoints
type QueryHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewQueryHandler creates a new QueryHandler
func NewQueryHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *QueryHandler {
	return &QueryHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "query").Logger(),
	}
}

// Queue handles GET /v1/editorial/queue
func (h *QueryHandler) Queue(c *gin.Context) {
	status := c.Query("status")
	if status == "" {
		status = string(models.StatusPendingReview)
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "0"))

	params := models.QueueParams{
		Status:     models.Status(status),
		Priority:   models.Priority(c.Query("priority")),
		CategoryID: c.Query("category_id"),
		Page:       page,
		PageSize:   pageSize,
	}

	items, err := h.services.Query.ListByStatus(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":     items,
		"count":     len(items),
		"page":      params.Page,
		"page_size": params.PageSize,
	})
}

// Counts handles GET /v1/editorial/counts
func (h *QueryHandler) Counts(c *gin.Context) {
	filter := models.CountFilter{
		AuthorID:   c.Query("author_id"),
		AssignedTo: c.Query("assigned_to"),
		CategoryID: c.Query("category_id"),
	}

	counts, err := h.services.Query.CountByStatus(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"counts": counts})
}

// Performance handles GET /v1/authors/:id/performance
func (h *QueryHandler) Performance(c *gin.Context) {
	perf, err := h.services.Query.PerformanceSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, perf)
}
