package api

import (
	"net/http"
	"time"

	"github.com/afriverse/editorial-api/internal/config"
	"github.com/afriverse/editorial-api/internal/models"
	"github.com/afriverse/editorial-api/internal/repository"
	"github.com/afriverse/editorial-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const actorKey = "actor"

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, users repository.UserRepository, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	// Handlers
	contentHandler := NewContentHandler(services, cfg, log)
	reviewHandler := NewReviewHandler(services, log)
	queryHandler := NewQueryHandler(services, cfg, log)

	// Health check
	router.GET("/health", healthCheck)
	router.GET("/metrics", metricsHandler(services))

	actor := actorMiddleware(users, log)

	// API v1
	v1 := router.Group("/v1")
	{
		content := v1.Group("/content")
		{
			content.POST("", actor, contentHandler.Create)
			content.GET("/:id", contentHandler.Get)
			content.PUT("/:id", actor, contentHandler.Update)
			content.POST("/:id/transitions", actor, contentHandler.Transition)
			content.GET("/:id/history", reviewHandler.GetHistory)
			content.GET("/:id/feedback", reviewHandler.GetFeedback)
			content.GET("/:id/review", reviewHandler.GetReview)
			content.PATCH("/:id/review", actor, reviewHandler.UpdateReview)
			content.POST("/:id/feedback", actor, reviewHandler.AddFeedback)
		}

		editorial := v1.Group("/editorial")
		{
			editorial.GET("/queue", queryHandler.Queue)
			editorial.GET("/counts", queryHandler.Counts)
		}

		v1.GET("/authors/:id/performance", queryHandler.Performance)
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "afriverse-editorial-api",
	})
}

// metricsHandler returns a queue snapshot
func metricsHandler(services *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		counts, err := services.Query.CountByStatus(c.Request.Context(), models.CountFilter{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to collect metrics"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"queue":     counts,
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}

// actorMiddleware resolves the acting user from the X-Actor-ID header for
// mutating routes. The engine still makes its own permission decisions; the
// middleware only establishes identity.
func actorMiddleware(users repository.UserRepository, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID := c.GetHeader("X-Actor-ID")
		if actorID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "X-Actor-ID header is required"})
			c.Abort()
			return
		}

		user, err := users.GetByID(c.Request.Context(), actorID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown actor"})
			c.Abort()
			return
		}
		if !user.Active {
			c.JSON(http.StatusForbidden, gin.H{"error": "actor is deactivated"})
			c.Abort()
			return
		}

		c.Set(actorKey, user)
		c.Next()
	}
}

// actorFrom returns the resolved acting user
func actorFrom(c *gin.Context) *models.User {
	return c.MustGet(actorKey).(*models.User)
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Actor-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
