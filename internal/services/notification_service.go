package services

import (
	"context"
	"errors"

	"kazicare_backend/internal/repositories"
	"kazicare_backend/internal/services/dto"
	"kazicare_backend/pkg/apperrors"
)

type NotificationService interface {
	ListNotifications(ctx context.Context, userID string, unreadOnly bool, page, pageSize int) (*dto.NotificationListResponse, error)
	MarkAsRead(ctx context.Context, notificationID, userID string) error
}

type NotificationServiceImpl struct {
	notificationRepo repositories.NotificationRepository
}

func NewNotificationService(notificationRepo repositories.NotificationRepository) NotificationService {
	return &NotificationServiceImpl{notificationRepo: notificationRepo}
}

func (s *NotificationServiceImpl) ListNotifications(ctx context.Context, userID string, unreadOnly bool, page, pageSize int) (*dto.NotificationListResponse, error) {
	offset := (page - 1) * pageSize
	notifications, total, err := s.notificationRepo.FindByUser(userID, unreadOnly, pageSize, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	unread, err := s.notificationRepo.GetUnreadCount(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		responses = append(responses, *dto.NewNotificationResponse(&notifications[i]))
	}

	return &dto.NotificationListResponse{
		Notifications: responses,
		Total:         total,
		UnreadCount:   unread,
		Page:          page,
		PageSize:      pageSize,
		TotalPages:    totalPages(total, pageSize),
	}, nil
}

func (s *NotificationServiceImpl) MarkAsRead(ctx context.Context, notificationID, userID string) error {
	if err := s.notificationRepo.MarkAsRead(notificationID, userID); err != nil {
		if errors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}
