package handlers

import (
	"net/http"

	"kazicare_backend/internal/middleware"
	"kazicare_backend/internal/models"
	"kazicare_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	*BaseHandler
	adminService services.AdminService
}

func NewAdminHandler(base *BaseHandler, adminService services.AdminService) *AdminHandler {
	return &AdminHandler{BaseHandler: base, adminService: adminService}
}

func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin",
		middleware.AuthMiddleware(),
		middleware.RequireRoles(models.UserRoleAdmin))
	{
		admin.GET("/overview", h.GetOverview)
		admin.GET("/users/unverified", h.ListUnverifiedUsers)
		admin.POST("/users/:id/verify", h.VerifyUser)
		admin.GET("/jobs/unverified", h.ListUnverifiedJobs)
		admin.POST("/jobs/:id/verify", h.VerifyJob)
	}
}

func (h *AdminHandler) GetOverview(c *gin.Context) {
	overview, err := h.adminService.GetOverview(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

func (h *AdminHandler) ListUnverifiedUsers(c *gin.Context) {
	page, pageSize := h.ParsePagination(c)
	resp, err := h.adminService.ListUnverifiedUsers(c.Request.Context(), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) VerifyUser(c *gin.Context) {
	user, err := h.adminService.VerifyUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AdminHandler) ListUnverifiedJobs(c *gin.Context) {
	page, pageSize := h.ParsePagination(c)
	resp, err := h.adminService.ListUnverifiedJobs(c.Request.Context(), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) VerifyJob(c *gin.Context) {
	job, err := h.adminService.VerifyJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}
