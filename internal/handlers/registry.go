package handlers

import (
	"kazicare_backend/internal/ratelimit"
	"kazicare_backend/internal/services"
	"kazicare_backend/internal/validator"
)

// AppHandlers groups every HTTP handler for route registration.
type AppHandlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Job          *JobHandler
	Application  *ApplicationHandler
	Admin        *AdminHandler
	Notification *NotificationHandler
}

func NewAppHandlers(svc *services.ServiceContainer, v *validator.Validator, limiter ratelimit.Limiter) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		Auth:         NewAuthHandler(base, svc.Auth),
		User:         NewUserHandler(base, svc.User),
		Job:          NewJobHandler(base, svc.Job, limiter),
		Application:  NewApplicationHandler(base, svc.Application),
		Admin:        NewAdminHandler(base, svc.Admin),
		Notification: NewNotificationHandler(base, svc.Notification),
	}
}
