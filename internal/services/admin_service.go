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

type AdminService interface {
	VerifyUser(ctx context.Context, userID string) (*dto.UserResponse, error)
	VerifyJob(ctx context.Context, jobID string) (*dto.JobResponse, error)
	ListUnverifiedUsers(ctx context.Context, page, pageSize int) (*dto.UserListResponse, error)
	ListUnverifiedJobs(ctx context.Context, page, pageSize int) (*dto.JobListResponse, error)
	GetOverview(ctx context.Context) (*dto.AdminOverview, error)
}

type AdminServiceImpl struct {
	userRepo         repositories.UserRepository
	jobRepo          repositories.JobRepository
	appRepo          repositories.ApplicationRepository
	notificationRepo repositories.NotificationRepository
	email            email.Provider
}

func NewAdminService(
	userRepo repositories.UserRepository,
	jobRepo repositories.JobRepository,
	appRepo repositories.ApplicationRepository,
	notificationRepo repositories.NotificationRepository,
	emailProvider email.Provider,
) AdminService {
	return &AdminServiceImpl{
		userRepo:         userRepo,
		jobRepo:          jobRepo,
		appRepo:          appRepo,
		notificationRepo: notificationRepo,
		email:            emailProvider,
	}
}

// VerifyUser flips an account to verified. The guarded update fires at
// most once, so the verification email goes out exactly once per account
// no matter how many admins click. A repeat attempt is a conflict, a
// missing account is not found. Email failure is logged and never undoes
// the verification.
func (s *AdminServiceImpl) VerifyUser(ctx context.Context, userID string) (*dto.UserResponse, error) {
	affected, err := s.userRepo.Verify(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user, findErr := s.userRepo.FindByID(userID)
	if findErr != nil {
		if errors.Is(findErr, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(findErr)
		}
		return nil, apperrors.InternalError(findErr)
	}

	if affected == 0 {
		return nil, apperrors.ErrAlreadyVerified
	}

	logger.CtxInfo(ctx, "user verified", "user_id", userID)

	if err := s.email.SendAccountVerified(user.Email, user.Name); err != nil {
		logger.CtxError(ctx, "failed to send account verified email", "error", err, "user_id", userID)
	}

	notification := &models.Notification{
		UserID:  user.ID,
		Type:    repositories.NotificationTypeAccountVerified,
		Title:   "Account Verified",
		Message: "Your account has been verified. You can now log in.",
	}
	if err := s.notificationRepo.Create(notification); err != nil {
		logger.CtxError(ctx, "failed to create verification notification", "error", err, "user_id", userID)
	}

	return dto.NewUserResponse(user), nil
}

// VerifyJob makes a posting live. Same exactly-once shape as VerifyUser;
// the email goes to the posting employer.
func (s *AdminServiceImpl) VerifyJob(ctx context.Context, jobID string) (*dto.JobResponse, error) {
	affected, err := s.jobRepo.Verify(jobID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	job, findErr := s.jobRepo.FindByID(jobID)
	if findErr != nil {
		if errors.Is(findErr, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrNotFound(findErr)
		}
		return nil, apperrors.InternalError(findErr)
	}

	if affected == 0 {
		return nil, apperrors.ErrAlreadyVerified
	}

	logger.CtxInfo(ctx, "job verified", "job_id", jobID)

	employer, err := s.userRepo.FindByID(job.EmployerID)
	if err != nil {
		logger.CtxError(ctx, "failed to load employer for job verified email", "error", err, "job_id", jobID)
	} else {
		if err := s.email.SendJobVerified(employer.Email, job.Title); err != nil {
			logger.CtxError(ctx, "failed to send job verified email", "error", err, "job_id", jobID)
		}

		notification := &models.Notification{
			UserID:  employer.ID,
			Type:    repositories.NotificationTypeJobVerified,
			Title:   "Job Verified",
			Message: "Your job posting " + job.Title + " is now live.",
			Data: repositories.NotificationData(map[string]string{
				"job_id": job.ID,
			}),
		}
		if err := s.notificationRepo.Create(notification); err != nil {
			logger.CtxError(ctx, "failed to create job verified notification", "error", err, "job_id", jobID)
		}
	}

	return dto.NewJobResponse(job), nil
}

func (s *AdminServiceImpl) ListUnverifiedUsers(ctx context.Context, page, pageSize int) (*dto.UserListResponse, error) {
	offset := (page - 1) * pageSize
	users, total, err := s.userRepo.FindUnverified(pageSize, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *dto.NewUserResponse(&users[i]))
	}

	return &dto.UserListResponse{
		Users:      responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

func (s *AdminServiceImpl) ListUnverifiedJobs(ctx context.Context, page, pageSize int) (*dto.JobListResponse, error) {
	offset := (page - 1) * pageSize
	jobs, total, err := s.jobRepo.FindUnverified(pageSize, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		responses = append(responses, *dto.NewJobResponse(&jobs[i]))
	}

	return &dto.JobListResponse{
		Jobs:       responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

func (s *AdminServiceImpl) GetOverview(ctx context.Context) (*dto.AdminOverview, error) {
	overview := &dto.AdminOverview{}

	var err error
	if overview.TotalUsers, err = s.userRepo.CountAll(); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if overview.Employers, err = s.userRepo.CountByRole(models.UserRoleEmployer); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if overview.Housekeepers, err = s.userRepo.CountByRole(models.UserRoleHousekeeper); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if overview.VerifiedUsers, err = s.userRepo.CountVerified(); err != nil {
		return nil, apperrors.InternalError(err)
	}
	overview.UnverifiedUsers = overview.TotalUsers - overview.VerifiedUsers

	if overview.TotalJobs, err = s.jobRepo.CountAll(); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if overview.VerifiedJobs, err = s.jobRepo.CountVerified(); err != nil {
		return nil, apperrors.InternalError(err)
	}
	overview.UnverifiedJobs = overview.TotalJobs - overview.VerifiedJobs

	if overview.TotalApplications, err = s.appRepo.CountAll(); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return overview, nil
}
