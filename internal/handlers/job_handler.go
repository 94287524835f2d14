package handlers

import (
	"net/http"
	"time"

	"kazicare_backend/internal/config"
	"kazicare_backend/internal/middleware"
	"kazicare_backend/internal/models"
	"kazicare_backend/internal/ratelimit"
	"kazicare_backend/internal/services"
	"kazicare_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	*BaseHandler
	jobService services.JobService
	limiter    ratelimit.Limiter
}

func NewJobHandler(base *BaseHandler, jobService services.JobService, limiter ratelimit.Limiter) *JobHandler {
	return &JobHandler{BaseHandler: base, jobService: jobService, limiter: limiter}
}

func (h *JobHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cfg := config.GetConfig()
	postLimit := middleware.RateLimitMiddleware(
		h.limiter,
		cfg.RateLimit.JobPostMax,
		time.Duration(cfg.RateLimit.JobPostWindow)*time.Second,
	)

	jobs := rg.Group("/jobs", middleware.AuthMiddleware())
	{
		jobs.GET("", h.ListJobs)
		jobs.GET("/:id", h.GetJob)
		jobs.POST("",
			middleware.RequireRoles(models.UserRoleEmployer),
			postLimit,
			h.CreateJob)
		jobs.GET("/mine",
			middleware.RequireRoles(models.UserRoleEmployer),
			h.ListMyJobs)
		jobs.POST("/:id/close",
			middleware.RequireRoles(models.UserRoleEmployer),
			h.CloseJob)
	}
}

// ListJobs is the browse endpoint: verified jobs only, optional location
// and salary filters, paginated.
func (h *JobHandler) ListJobs(c *gin.Context) {
	var filter dto.JobFilterRequest
	if !h.BindAndValidateQuery(c, &filter) {
		return
	}

	page, pageSize := h.ParsePagination(c)
	resp, err := h.jobService.ListJobs(c.Request.Context(), &filter, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.jobService.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dto.CreateJobRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	req.EmployerID = middleware.GetUserID(c)

	job, err := h.jobService.CreateJob(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (h *JobHandler) ListMyJobs(c *gin.Context) {
	jobs, err := h.jobService.ListEmployerJobs(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

func (h *JobHandler) CloseJob(c *gin.Context) {
	job, err := h.jobService.CloseJob(c.Request.Context(), c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}
