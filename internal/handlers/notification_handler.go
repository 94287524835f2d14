package handlers

import (
	"net/http"

	"kazicare_backend/internal/middleware"
	"kazicare_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	*BaseHandler
	notificationService services.NotificationService
}

func NewNotificationHandler(base *BaseHandler, notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{BaseHandler: base, notificationService: notificationService}
}

func (h *NotificationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	notifications := rg.Group("/notifications", middleware.AuthMiddleware())
	{
		notifications.GET("", h.ListNotifications)
		notifications.POST("/:id/read", h.MarkAsRead)
	}
}

func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	page, pageSize := h.ParsePagination(c)
	unreadOnly := c.Query("unread") == "true"

	resp, err := h.notificationService.ListNotifications(
		c.Request.Context(), middleware.GetUserID(c), unreadOnly, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	err := h.notificationService.MarkAsRead(c.Request.Context(), c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}
