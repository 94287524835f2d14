package services

import (
	"context"
	"errors"

	"kazicare_backend/internal/logger"
	"kazicare_backend/internal/models"
	"kazicare_backend/internal/repositories"
	"kazicare_backend/internal/services/dto"
	"kazicare_backend/pkg/apperrors"
)

type JobService interface {
	CreateJob(ctx context.Context, req *dto.CreateJobRequest) (*dto.JobResponse, error)
	GetJob(ctx context.Context, jobID string) (*dto.JobResponse, error)
	ListJobs(ctx context.Context, filter *dto.JobFilterRequest, page, pageSize int) (*dto.JobListResponse, error)
	ListEmployerJobs(ctx context.Context, employerID string) ([]dto.JobResponse, error)
	CloseJob(ctx context.Context, jobID, employerID string) (*dto.JobResponse, error)
}

type JobServiceImpl struct {
	jobRepo  repositories.JobRepository
	userRepo repositories.UserRepository
}

func NewJobService(jobRepo repositories.JobRepository, userRepo repositories.UserRepository) JobService {
	return &JobServiceImpl{jobRepo: jobRepo, userRepo: userRepo}
}

// CreateJob stores a new posting in the unverified state. Only verified
// employers can post; the job stays invisible to housekeepers until an
// admin verifies it.
func (s *JobServiceImpl) CreateJob(ctx context.Context, req *dto.CreateJobRequest) (*dto.JobResponse, error) {
	employer, err := s.userRepo.FindByID(req.EmployerID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if employer.Role != models.UserRoleEmployer {
		return nil, apperrors.ErrInvalidUserRole
	}
	if !employer.IsVerified {
		return nil, apperrors.ErrUserNotVerified
	}

	job := &models.Job{
		EmployerID:  req.EmployerID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Salary:      req.Salary,
		IsVerified:  false,
		Status:      models.JobStatusOpen,
	}

	if err := s.jobRepo.Create(job); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "job created", "job_id", job.ID, "employer_id", job.EmployerID)
	return dto.NewJobResponse(job), nil
}

// GetJob returns a single verified job. Unverified jobs look like missing
// ones to the public surface.
func (s *JobServiceImpl) GetJob(ctx context.Context, jobID string) (*dto.JobResponse, error) {
	job, err := s.jobRepo.FindVerifiedByID(jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.NewJobResponse(job), nil
}

// ListJobs runs the browse query. Every supplied filter narrows the result
// set; no filters means every verified job, paginated.
func (s *JobServiceImpl) ListJobs(ctx context.Context, filter *dto.JobFilterRequest, page, pageSize int) (*dto.JobListResponse, error) {
	repoFilter := repositories.JobFilter{
		Location:  filter.Location,
		SalaryMin: filter.SalaryMin,
		SalaryMax: filter.SalaryMax,
		Page:      page,
		PageSize:  pageSize,
	}

	jobs, total, err := s.jobRepo.FindVerifiedWithFilter(repoFilter)
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

func (s *JobServiceImpl) ListEmployerJobs(ctx context.Context, employerID string) ([]dto.JobResponse, error) {
	jobs, err := s.jobRepo.FindByEmployer(employerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		responses = append(responses, *dto.NewJobResponse(&jobs[i]))
	}
	return responses, nil
}

// CloseJob moves an open job to closed. Only the posting employer can
// close it.
func (s *JobServiceImpl) CloseJob(ctx context.Context, jobID, employerID string) (*dto.JobResponse, error) {
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
	if job.Status == models.JobStatusClosed {
		return nil, apperrors.ErrInvalidStatus("job", "Job is already closed")
	}

	if err := s.jobRepo.UpdateStatus(jobID, models.JobStatusClosed); err != nil {
		return nil, apperrors.InternalError(err)
	}
	job.Status = models.JobStatusClosed

	logger.CtxInfo(ctx, "job closed", "job_id", jobID, "employer_id", employerID)
	return dto.NewJobResponse(job), nil
}

// totalPages is ceil(total / pageSize) with a floor of zero pages for an
// empty result.
func totalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
