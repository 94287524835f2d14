package repositories

import (
	"encoding/json"
	"errors"
	"time"

	"kazicare_backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

// Notification types, one per state transition that emails someone.
const (
	NotificationTypeAccountVerified    = "account_verified"
	NotificationTypeJobVerified        = "job_verified"
	NotificationTypeNewApplication     = "new_application"
	NotificationTypeApplicationDecided = "application_decided"
)

type NotificationRepository interface {
	Create(notification *models.Notification) error
	FindByUser(userID string, unreadOnly bool, limit, offset int) ([]models.Notification, int64, error)
	MarkAsRead(notificationID, userID string) error
	GetUnreadCount(userID string) (int64, error)
}

type NotificationRepositoryImpl struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &NotificationRepositoryImpl{db: db}
}

func (r *NotificationRepositoryImpl) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

func (r *NotificationRepositoryImpl) FindByUser(userID string, unreadOnly bool, limit, offset int) ([]models.Notification, int64, error) {
	var notifications []models.Notification

	query := r.db.Model(&models.Notification{}).Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&notifications).Error
	return notifications, total, err
}

// MarkAsRead is scoped by user so nobody can read-ack someone else's
// notification.
func (r *NotificationRepositoryImpl) MarkAsRead(notificationID, userID string) error {
	now := time.Now()
	result := r.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": now,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepositoryImpl) GetUnreadCount(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// NotificationData marshals an arbitrary payload into the JSONB column.
func NotificationData(payload map[string]string) datatypes.JSON {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil
	}
	return datatypes.JSON(data)
}
