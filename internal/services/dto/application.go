package dto

import (
	"time"

	"kazicare_backend/internal/models"
)

type ApplyRequest struct {
	HousekeeperID string  `json:"housekeeper_id" validate:"-"` // set by the server from the session
	JobID         string  `json:"job_id" validate:"required,uuid"`
	Message       *string `json:"message" validate:"omitempty,max=2000"`
}

type DecideApplicationRequest struct {
	Decision models.ApplicationStatus `json:"decision" validate:"required,is-application-decision"`
}

type ApplicationResponse struct {
	ID            string                   `json:"id"`
	JobID         string                   `json:"job_id"`
	HousekeeperID string                   `json:"housekeeper_id"`
	Message       *string                  `json:"message,omitempty"`
	Status        models.ApplicationStatus `json:"status"`
	CreatedAt     time.Time                `json:"created_at"`

	// Joined fields for list views
	JobTitle        string `json:"job_title,omitempty"`
	JobLocation     string `json:"job_location,omitempty"`
	HousekeeperName string `json:"housekeeper_name,omitempty"`
}

func NewApplicationResponse(app *models.Application) *ApplicationResponse {
	resp := &ApplicationResponse{
		ID:            app.ID,
		JobID:         app.JobID,
		HousekeeperID: app.HousekeeperID,
		Message:       app.Message,
		Status:        app.Status,
		CreatedAt:     app.CreatedAt,
	}
	if app.Job != nil {
		resp.JobTitle = app.Job.Title
		resp.JobLocation = app.Job.Location
	}
	if app.Housekeeper != nil {
		resp.HousekeeperName = app.Housekeeper.Name
	}
	return resp
}
