package repositories

import (
	"errors"
	"time"

	"kazicare_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

type UserRepository interface {
	FindByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	Create(user *models.User) error
	UpdateProfile(userID, name, email string) error
	UpdatePassword(userID, passwordHash string) error
	SetResetToken(userID, token string, expiresAt time.Time) error
	FindByResetToken(token string) (*models.User, error)
	ClearResetToken(userID string) error

	// Verification
	Verify(userID string) (int64, error)
	FindUnverified(limit, offset int) ([]models.User, int64, error)

	// Admin stats
	CountByRole(role models.UserRole) (int64, error)
	CountAll() (int64, error)
	CountVerified() (int64, error)
}

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) FindByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Create(user *models.User) error {
	var existing models.User
	if err := r.db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		return ErrUserAlreadyExists
	}

	err := r.db.Create(user).Error
	if err != nil && isUniqueViolation(err) {
		// Lost the race between the existence check and the insert; the
		// unique index on email is the actual guarantee.
		return ErrUserAlreadyExists
	}
	return err
}

func (r *UserRepositoryImpl) UpdateProfile(userID, name, email string) error {
	result := r.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"name":       name,
		"email":      email,
		"updated_at": time.Now(),
	})

	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return ErrUserAlreadyExists
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) UpdatePassword(userID, passwordHash string) error {
	result := r.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"password_hash": passwordHash,
		"updated_at":    time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) SetResetToken(userID, token string, expiresAt time.Time) error {
	result := r.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"reset_token":     token,
		"reset_token_exp": expiresAt,
		"updated_at":      time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) FindByResetToken(token string) (*models.User, error) {
	var user models.User
	err := r.db.Where("reset_token = ? AND reset_token != '' AND reset_token_exp > ?", token, time.Now()).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) ClearResetToken(userID string) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"reset_token":     "",
		"reset_token_exp": nil,
	}).Error
}

// Verify flips is_verified on the matching unverified row only. The
// returned count tells the service apart "not found" from "already
// verified" without a second read.
func (r *UserRepositoryImpl) Verify(userID string) (int64, error) {
	result := r.db.Model(&models.User{}).
		Where("id = ? AND is_verified = ?", userID, false).
		Updates(map[string]interface{}{
			"is_verified": true,
			"updated_at":  time.Now(),
		})
	return result.RowsAffected, result.Error
}

func (r *UserRepositoryImpl) FindUnverified(limit, offset int) ([]models.User, int64, error) {
	var users []models.User

	query := r.db.Model(&models.User{}).Where("is_verified = ?", false)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at ASC, id ASC").Limit(limit).Offset(offset).Find(&users).Error
	return users, total, err
}

func (r *UserRepositoryImpl) CountByRole(role models.UserRole) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("role = ?", role).Count(&count).Error
	return count, err
}

func (r *UserRepositoryImpl) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}

func (r *UserRepositoryImpl) CountVerified() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("is_verified = ?", true).Count(&count).Error
	return count, err
}
