package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"smartblog/internal/dto"
	"smartblog/internal/entity"
	"smartblog/internal/repository"
	"smartblog/pkg/apperror"
	"smartblog/pkg/storage"
)

type ProfileService interface {
	GetProfileByUsername(ctx context.Context, username string) (*dto.PublicProfileResponse, error)
	GetOwnProfile(ctx context.Context, userID uuid.UUID) (*dto.OwnProfileResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req dto.UpdateProfileRequest) (*entity.User, error)
	UpdateAvatar(ctx context.Context, userID uuid.UUID, sourceURL string) (*dto.AvatarResponse, error)
}

type profileService struct {
	users        repository.UserRepository
	imageStorage storage.ImageStorage
}

func NewProfileService(users repository.UserRepository, imageStorage storage.ImageStorage) ProfileService {
	return &profileService{
		users:        users,
		imageStorage: imageStorage,
	}
}

func (s *profileService) GetProfileByUsername(ctx context.Context, username string) (*dto.PublicProfileResponse, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("User not found.")
		}
		return nil, err
	}

	postCount, err := s.users.CountPostsByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &dto.PublicProfileResponse{
		Username:    user.Username,
		Email:       user.Email,
		CreatedAt:   user.CreatedAt,
		Description: user.Description,
		PostCount:   postCount,
	}, nil
}

func (s *profileService) GetOwnProfile(ctx context.Context, userID uuid.UUID) (*dto.OwnProfileResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("User not found.")
		}
		return nil, err
	}

	return &dto.OwnProfileResponse{
		Username:    user.Username,
		Email:       user.Email,
		Description: user.Description,
		Role:        user.Role.String(),
	}, nil
}

// UpdateProfile overwrites only the supplied fields; absent fields are
// left untouched.
func (s *profileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req dto.UpdateProfileRequest) (*entity.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("User not found.")
		}
		return nil, err
	}

	if req.Username != nil && *req.Username != "" && *req.Username != user.Username {
		if _, err := s.users.FindByUsername(ctx, *req.Username); err == nil {
			return nil, apperror.Conflict("Username already taken.")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Username = *req.Username
	}

	if req.Description != nil {
		clean := sanitizeText(*req.Description)
		user.Description = &clean
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("Username already taken.")
		}
		return nil, err
	}
	return user, nil
}

// UpdateAvatar hands the source image to the external image service for
// the face-cropped, rounded variant and stores both resulting URLs.
func (s *profileService) UpdateAvatar(ctx context.Context, userID uuid.UUID, sourceURL string) (*dto.AvatarResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("User not found.")
		}
		return nil, err
	}
	if s.imageStorage == nil {
		return nil, apperror.New(http.StatusBadGateway, "Image service is not configured.", apperror.ErrInternal)
	}

	result, err := s.imageStorage.UploadAvatar(ctx, user.ID.String(), sourceURL)
	if err != nil {
		return nil, apperror.New(http.StatusBadGateway, "Image service failed.", err)
	}

	user.AvatarURL = &result.Original
	user.AvatarThumbURL = &result.Round
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	return &dto.AvatarResponse{
		Original: result.Original,
		Round:    result.Round,
	}, nil
}
