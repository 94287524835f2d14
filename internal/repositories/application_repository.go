package repositories

import (
	"errors"

	"kazicare_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound  = errors.New("application not found")
	ErrDuplicateApplication = errors.New("application already exists for this job and housekeeper")
)

type ApplicationRepository interface {
	Create(application *models.Application) error
	FindByID(id string) (*models.Application, error)
	FindByHousekeeper(housekeeperID string) ([]models.Application, error)
	FindByJob(jobID string) ([]models.Application, error)
	UpdateStatus(applicationID string, from, to models.ApplicationStatus) (int64, error)
	CountAll() (int64, error)
}

type ApplicationRepositoryImpl struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &ApplicationRepositoryImpl{db: db}
}

// Create inserts the application. The unique index on (job_id,
// housekeeper_id) is the authority on duplicates; the violation is mapped
// to ErrDuplicateApplication rather than checked up front.
func (r *ApplicationRepositoryImpl) Create(application *models.Application) error {
	err := r.db.Create(application).Error
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicateApplication
	}
	return err
}

func (r *ApplicationRepositoryImpl) FindByID(id string) (*models.Application, error) {
	var application models.Application
	err := r.db.Preload("Job").First(&application, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &application, nil
}

func (r *ApplicationRepositoryImpl) FindByHousekeeper(housekeeperID string) ([]models.Application, error) {
	var applications []models.Application
	err := r.db.Preload("Job").
		Where("housekeeper_id = ?", housekeeperID).
		Order("created_at DESC").
		Find(&applications).Error
	return applications, err
}

func (r *ApplicationRepositoryImpl) FindByJob(jobID string) ([]models.Application, error) {
	var applications []models.Application
	err := r.db.Preload("Housekeeper").
		Where("job_id = ?", jobID).
		Order("created_at ASC").
		Find(&applications).Error
	return applications, err
}

// UpdateStatus transitions an application from one status to another in a
// single guarded UPDATE. RowsAffected == 0 means the application was
// missing or not in the expected source status.
func (r *ApplicationRepositoryImpl) UpdateStatus(applicationID string, from, to models.ApplicationStatus) (int64, error) {
	result := r.db.Model(&models.Application{}).
		Where("id = ? AND status = ?", applicationID, from).
		Update("status", to)
	return result.RowsAffected, result.Error
}

func (r *ApplicationRepositoryImpl) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&models.Application{}).Count(&count).Error
	return count, err
}
