package services

import (
	"context"
	"errors"

	"kazicare_backend/internal/email"
	"kazicare_backend/internal/logger"
	"kazicare_backend/internal/models"
	"kazicare_backend/internal/repositories"
	"kazicare_backend/internal/services/dto"
	"kazicare_backend/pkg/apperrors"
)

type ApplicationService interface {
	Apply(ctx context.Context, req *dto.ApplyRequest) (*dto.ApplicationResponse, error)
	ListMyApplications(ctx context.Context, housekeeperID string) ([]dto.ApplicationResponse, error)
	ListJobApplications(ctx context.Context, jobID, employerID string) ([]dto.ApplicationResponse, error)
	DecideApplication(ctx context.Context, applicationID, employerID string, decision models.ApplicationStatus) (*dto.ApplicationResponse, error)
}

type ApplicationServiceImpl struct {
	appRepo          repositories.ApplicationRepository
	jobRepo          repositories.JobRepository
	userRepo         repositories.UserRepository
	notificationRepo repositories.NotificationRepository
	email            email.Provider
}

func NewApplicationService(
	appRepo repositories.ApplicationRepository,
	jobRepo repositories.JobRepository,
	userRepo repositories.UserRepository,
	notificationRepo repositories.NotificationRepository,
	emailProvider email.Provider,
) ApplicationService {
	return &ApplicationServiceImpl{
		appRepo:          appRepo,
		jobRepo:          jobRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		email:            emailProvider,
	}
}

// Apply records a housekeeper's application to a verified open job. The
// unique index on (job, housekeeper) makes the second apply a conflict no
// matter how the requests race. The employer gets an email and an in-app
// notification; neither can fail the application itself.
func (s *ApplicationServiceImpl) Apply(ctx context.Context, req *dto.ApplyRequest) (*dto.ApplicationResponse, error) {
	housekeeper, err := s.userRepo.FindByID(req.HousekeeperID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if housekeeper.Role != models.UserRoleHousekeeper {
		return nil, apperrors.ErrInvalidUserRole
	}
	if !housekeeper.IsVerified {
		return nil, apperrors.ErrUserNotVerified
	}

	job, err := s.jobRepo.FindVerifiedByID(req.JobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if job.Status != models.JobStatusOpen {
		return nil, apperrors.ErrInvalidStatus("application", "Job is no longer accepting applications")
	}

	application := &models.Application{
		JobID:         req.JobID,
		HousekeeperID: req.HousekeeperID,
		Message:       req.Message,
		Status:        models.ApplicationStatusPending,
	}

	if err := s.appRepo.Create(application); err != nil {
		if errors.Is(err, repositories.ErrDuplicateApplication) {
			return nil, apperrors.ErrAlreadyApplied
		}
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "application created",
		"application_id", application.ID, "job_id", job.ID, "housekeeper_id", housekeeper.ID)

	s.notifyEmployerOfApplication(ctx, job, housekeeper, application)

	application.Job = job
	return dto.NewApplicationResponse(application), nil
}

func (s *ApplicationServiceImpl) ListMyApplications(ctx context.Context, housekeeperID string) ([]dto.ApplicationResponse, error) {
	applications, err := s.appRepo.FindByHousekeeper(housekeeperID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.ApplicationResponse, 0, len(applications))
	for i := range applications {
		responses = append(responses, *dto.NewApplicationResponse(&applications[i]))
	}
	return responses, nil
}

// ListJobApplications returns the applications for one of the employer's
// own jobs. Asking about someone else's job is forbidden, not hidden.
func (s *ApplicationServiceImpl) ListJobApplications(ctx context.Context, jobID, employerID string) ([]dto.ApplicationResponse, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if job.EmployerID != employerID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	applications, err := s.appRepo.FindByJob(jobID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.ApplicationResponse, 0, len(applications))
	for i := range applications {
		responses = append(responses, *dto.NewApplicationResponse(&applications[i]))
	}
	return responses, nil
}

// DecideApplication accepts or rejects a pending application. The guarded
// update means a decision lands at most once; a second attempt sees zero
// rows and reports the conflict. The housekeeper is told of the outcome.
func (s *ApplicationServiceImpl) DecideApplication(ctx context.Context, applicationID, employerID string, decision models.ApplicationStatus) (*dto.ApplicationResponse, error) {
	if decision != models.ApplicationStatusAccepted && decision != models.ApplicationStatusRejected {
		return nil, apperrors.ErrInvalidOperation("application", "Decision must be accepted or rejected")
	}

	application, err := s.appRepo.FindByID(applicationID)
	if err != nil {
		if errors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if application.Job == nil || application.Job.EmployerID != employerID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	affected, err := s.appRepo.UpdateStatus(applicationID, models.ApplicationStatusPending, decision)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if affected == 0 {
		return nil, apperrors.ErrConflict(nil, "application", "Application has already been decided")
	}
	application.Status = decision

	logger.CtxInfo(ctx, "application decided",
		"application_id", applicationID, "decision", decision)

	s.notifyHousekeeperOfDecision(ctx, application)

	return dto.NewApplicationResponse(application), nil
}

func (s *ApplicationServiceImpl) notifyEmployerOfApplication(ctx context.Context, job *models.Job, housekeeper *models.User, application *models.Application) {
	employer, err := s.userRepo.FindByID(job.EmployerID)
	if err != nil {
		logger.CtxError(ctx, "failed to load employer for application notification", "error", err, "job_id", job.ID)
		return
	}

	if err := s.email.SendNewApplication(employer.Email, job.Title, housekeeper.Name); err != nil {
		logger.CtxError(ctx, "failed to send new application email", "error", err, "employer_id", employer.ID)
	}

	notification := &models.Notification{
		UserID:  employer.ID,
		Type:    repositories.NotificationTypeNewApplication,
		Title:   "New Application",
		Message: housekeeper.Name + " applied to " + job.Title,
		Data: repositories.NotificationData(map[string]string{
			"job_id":         job.ID,
			"application_id": application.ID,
		}),
	}
	if err := s.notificationRepo.Create(notification); err != nil {
		logger.CtxError(ctx, "failed to create application notification", "error", err, "employer_id", employer.ID)
	}
}

func (s *ApplicationServiceImpl) notifyHousekeeperOfDecision(ctx context.Context, application *models.Application) {
	housekeeper, err := s.userRepo.FindByID(application.HousekeeperID)
	if err != nil {
		logger.CtxError(ctx, "failed to load housekeeper for decision notification", "error", err, "application_id", application.ID)
		return
	}

	jobTitle := ""
	if application.Job != nil {
		jobTitle = application.Job.Title
	}
	accepted := application.Status == models.ApplicationStatusAccepted

	if err := s.email.SendApplicationDecided(housekeeper.Email, jobTitle, accepted); err != nil {
		logger.CtxError(ctx, "failed to send decision email", "error", err, "housekeeper_id", housekeeper.ID)
	}

	notification := &models.Notification{
		UserID:  housekeeper.ID,
		Type:    repositories.NotificationTypeApplicationDecided,
		Title:   "Application Update",
		Message: "Your application for " + jobTitle + " has been " + string(application.Status),
		Data: repositories.NotificationData(map[string]string{
			"application_id": application.ID,
			"decision":       string(application.Status),
		}),
	}
	if err := s.notificationRepo.Create(notification); err != nil {
		logger.CtxError(ctx, "failed to create decision notification", "error", err, "housekeeper_id", housekeeper.ID)
	}
}
