package handlers

import (
	"net/http"

	"kazicare_backend/internal/middleware"
	"kazicare_backend/internal/models"
	"kazicare_backend/internal/services"
	"kazicare_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	*BaseHandler
	applicationService services.ApplicationService
}

func NewApplicationHandler(base *BaseHandler, applicationService services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{BaseHandler: base, applicationService: applicationService}
}

func (h *ApplicationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	applications := rg.Group("/applications", middleware.AuthMiddleware())
	{
		applications.POST("",
			middleware.RequireRoles(models.UserRoleHousekeeper),
			h.Apply)
		applications.GET("/mine",
			middleware.RequireRoles(models.UserRoleHousekeeper),
			h.ListMyApplications)
		applications.GET("/job/:jobId",
			middleware.RequireRoles(models.UserRoleEmployer),
			h.ListJobApplications)
		applications.POST("/:id/decision",
			middleware.RequireRoles(models.UserRoleEmployer),
			h.DecideApplication)
	}
}

func (h *ApplicationHandler) Apply(c *gin.Context) {
	var req dto.ApplyRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	req.HousekeeperID = middleware.GetUserID(c)

	application, err := h.applicationService.Apply(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, application)
}

func (h *ApplicationHandler) ListMyApplications(c *gin.Context) {
	applications, err := h.applicationService.ListMyApplications(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": applications})
}

func (h *ApplicationHandler) ListJobApplications(c *gin.Context) {
	applications, err := h.applicationService.ListJobApplications(
		c.Request.Context(), c.Param("jobId"), middleware.GetUserID(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": applications})
}

func (h *ApplicationHandler) DecideApplication(c *gin.Context) {
	var req dto.DecideApplicationRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	application, err := h.applicationService.DecideApplication(
		c.Request.Context(), c.Param("id"), middleware.GetUserID(c), req.Decision)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, application)
}
