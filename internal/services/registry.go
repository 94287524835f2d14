package services

import (
	"kazicare_backend/internal/email"
	"kazicare_backend/internal/repositories"

	"gorm.io/gorm"
)

// ServiceContainer wires every service against the shared repositories.
type ServiceContainer struct {
	Auth         AuthService
	User         UserService
	Job          JobService
	Application  ApplicationService
	Admin        AdminService
	Notification NotificationService
}

func NewServiceContainer(db *gorm.DB, emailProvider email.Provider) *ServiceContainer {
	userRepo := repositories.NewUserRepository(db)
	jobRepo := repositories.NewJobRepository(db)
	appRepo := repositories.NewApplicationRepository(db)
	tokenRepo := repositories.NewRefreshTokenRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)

	return &ServiceContainer{
		Auth:         NewAuthService(userRepo, tokenRepo, emailProvider),
		User:         NewUserService(userRepo, tokenRepo),
		Job:          NewJobService(jobRepo, userRepo),
		Application:  NewApplicationService(appRepo, jobRepo, userRepo, notificationRepo, emailProvider),
		Admin:        NewAdminService(userRepo, jobRepo, appRepo, notificationRepo, emailProvider),
		Notification: NewNotificationService(notificationRepo),
	}
}
