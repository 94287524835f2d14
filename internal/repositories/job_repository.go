package repositories

import (
	"errors"
	"time"

	"kazicare_backend/internal/models"

	"gorm.io/gorm"
)

var ErrJobNotFound = errors.New("job not found")

// JobFilter holds the optional browse filters. Nil/empty fields are not
// applied; filters that are applied must all hold for a row to match.
type JobFilter struct {
	Location  string
	SalaryMin *float64
	SalaryMax *float64
	Page      int
	PageSize  int
}

type JobRepository interface {
	Create(job *models.Job) error
	FindByID(id string) (*models.Job, error)
	FindVerifiedByID(id string) (*models.Job, error)
	FindByEmployer(employerID string) ([]models.Job, error)
	UpdateStatus(jobID string, status models.JobStatus) error

	// Browse
	FindVerifiedWithFilter(filter JobFilter) ([]models.Job, int64, error)

	// Verification
	Verify(jobID string) (int64, error)
	FindUnverified(limit, offset int) ([]models.Job, int64, error)

	CountAll() (int64, error)
	CountVerified() (int64, error)
}

type JobRepositoryImpl struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &JobRepositoryImpl{db: db}
}

func (r *JobRepositoryImpl) Create(job *models.Job) error {
	return r.db.Create(job).Error
}

func (r *JobRepositoryImpl) FindByID(id string) (*models.Job, error) {
	var job models.Job
	err := r.db.First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

// FindVerifiedByID only returns jobs that are live. Unverified jobs are
// indistinguishable from missing ones to non-admin callers.
func (r *JobRepositoryImpl) FindVerifiedByID(id string) (*models.Job, error) {
	var job models.Job
	err := r.db.First(&job, "id = ? AND is_verified = ?", id, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) FindByEmployer(employerID string) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.Where("employer_id = ?", employerID).
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, err
}

func (r *JobRepositoryImpl) UpdateStatus(jobID string, status models.JobStatus) error {
	result := r.db.Model(&models.Job{}).Where("id = ?", jobID).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

// FindVerifiedWithFilter builds the predicate conjunction incrementally:
// each supplied filter adds one AND clause. A job with a NULL salary
// passes any salary bound, so "not specified" postings never vanish from
// filtered results. Ordering is pinned to insertion order.
func (r *JobRepositoryImpl) FindVerifiedWithFilter(filter JobFilter) ([]models.Job, int64, error) {
	var jobs []models.Job

	query := r.db.Model(&models.Job{}).Where("is_verified = ?", true)

	if filter.Location != "" {
		query = query.Where("location ILIKE ?", "%"+filter.Location+"%")
	}
	if filter.SalaryMin != nil {
		query = query.Where("salary >= ? OR salary IS NULL", *filter.SalaryMin)
	}
	if filter.SalaryMax != nil {
		query = query.Where("salary <= ? OR salary IS NULL", *filter.SalaryMax)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.PageSize
	offset := (filter.Page - 1) * filter.PageSize

	err := query.Order("created_at ASC, id ASC").Limit(limit).Offset(offset).Find(&jobs).Error
	return jobs, total, err
}

func (r *JobRepositoryImpl) Verify(jobID string) (int64, error) {
	result := r.db.Model(&models.Job{}).
		Where("id = ? AND is_verified = ?", jobID, false).
		Updates(map[string]interface{}{
			"is_verified": true,
			"updated_at":  time.Now(),
		})
	return result.RowsAffected, result.Error
}

func (r *JobRepositoryImpl) FindUnverified(limit, offset int) ([]models.Job, int64, error) {
	var jobs []models.Job

	query := r.db.Model(&models.Job{}).Where("is_verified = ?", false)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at ASC, id ASC").Limit(limit).Offset(offset).Find(&jobs).Error
	return jobs, total, err
}

func (r *JobRepositoryImpl) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&models.Job{}).Count(&count).Error
	return count, err
}

func (r *JobRepositoryImpl) CountVerified() (int64, error) {
	var count int64
	err := r.db.Model(&models.Job{}).Where("is_verified = ?", true).Count(&count).Error
	return count, err
}
