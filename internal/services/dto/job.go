package dto

import (
	"time"

	"kazicare_backend/internal/models"
)

type CreateJobRequest struct {
	EmployerID  string   `json:"employer_id" validate:"-"` // set by the server from the session
	Title       string   `json:"title" validate:"required,min=3,max=100"`
	Description string   `json:"description" validate:"omitempty,max=5000"`
	Location    string   `json:"location" validate:"required,min=2,max=100"`
	Salary      *float64 `json:"salary" validate:"omitempty,gte=0"`
}

// JobFilterRequest carries the housekeeper browse filters from the query
// string. All fields are optional.
type JobFilterRequest struct {
	Location  string   `json:"location" form:"location"`
	SalaryMin *float64 `json:"salary_min" form:"salary_min" validate:"omitempty,gte=0"`
	SalaryMax *float64 `json:"salary_max" form:"salary_max" validate:"omitempty,gte=0"`
}

type JobResponse struct {
	ID          string           `json:"id"`
	EmployerID  string           `json:"employer_id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Location    string           `json:"location"`
	Salary      *float64         `json:"salary"`
	IsVerified  bool             `json:"is_verified"`
	Status      models.JobStatus `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
}

func NewJobResponse(job *models.Job) *JobResponse {
	return &JobResponse{
		ID:          job.ID,
		EmployerID:  job.EmployerID,
		Title:       job.Title,
		Description: job.Description,
		Location:    job.Location,
		Salary:      job.Salary,
		IsVerified:  job.IsVerified,
		Status:      job.Status,
		CreatedAt:   job.CreatedAt,
	}
}

type JobListResponse struct {
	Jobs       []JobResponse `json:"jobs"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int           `json:"total_pages"`
}
