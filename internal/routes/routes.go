package routes

import (
	"net/http"

	"kazicare_backend/internal/handlers"
	"kazicare_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRoutes mounts every handler under /api/v1 plus the health probe.
func SetupRoutes(router *gin.Engine, h *handlers.AppHandlers) {
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")

	h.Auth.RegisterRoutes(api)
	h.User.RegisterRoutes(api)
	h.Job.RegisterRoutes(api)
	h.Application.RegisterRoutes(api)
	h.Admin.RegisterRoutes(api)
	h.Notification.RegisterRoutes(api)
}
