package services

import (
	"context"
	"errors"

	"kazicare_backend/internal/auth"
	"kazicare_backend/internal/logger"
	"kazicare_backend/internal/repositories"
	"kazicare_backend/internal/services/dto"
	"kazicare_backend/pkg/apperrors"
)

type UserService interface {
	GetMe(ctx context.Context, userID string) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error
}

type UserServiceImpl struct {
	userRepo  repositories.UserRepository
	tokenRepo repositories.RefreshTokenRepository
}

func NewUserService(userRepo repositories.UserRepository, tokenRepo repositories.RefreshTokenRepository) UserService {
	return &UserServiceImpl{userRepo: userRepo, tokenRepo: tokenRepo}
}

func (s *UserServiceImpl) GetMe(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.NewUserResponse(user), nil
}

func (s *UserServiceImpl) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	if err := s.userRepo.UpdateProfile(userID, req.Name, req.Email); err != nil {
		switch {
		case errors.Is(err, repositories.ErrUserNotFound):
			return nil, apperrors.ErrNotFound(err)
		case errors.Is(err, repositories.ErrUserAlreadyExists):
			return nil, apperrors.ErrEmailAlreadyExists
		default:
			return nil, apperrors.InternalError(err)
		}
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "profile updated", "user_id", userID)
	return dto.NewUserResponse(user), nil
}

// ChangePassword verifies the current password before replacing it, then
// revokes all other sessions.
func (s *UserServiceImpl) ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		return apperrors.ErrInvalidCredentials
	}
	if err := auth.ValidatePassword(req.NewPassword); err != nil {
		return apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.UpdatePassword(userID, hash); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.tokenRepo.DeleteByUserID(userID); err != nil {
		logger.CtxError(ctx, "failed to revoke sessions after password change", "error", err, "user_id", userID)
	}

	logger.CtxInfo(ctx, "password changed", "user_id", userID)
	return nil
}
