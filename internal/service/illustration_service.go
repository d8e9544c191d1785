package service

import (
	"bytes"
	"context"
	"net/http"

	"github.com/google/uuid"

	"smartblog/internal/dto"
	"smartblog/pkg/apperror"
	"smartblog/pkg/storage"
)

// PictureGenerator produces an image from a text prompt.
type PictureGenerator interface {
	GeneratePicture(ctx context.Context, prompt string) ([]byte, error)
}

type IllustrationService interface {
	// Illustrate generates a picture for the prompt and stores it under
	// the requesting user's folder with a random name.
	Illustrate(ctx context.Context, userID uuid.UUID, prompt string) (*dto.IllustrationResponse, error)
}

type illustrationService struct {
	generator    PictureGenerator
	imageStorage storage.ImageStorage
}

func NewIllustrationService(generator PictureGenerator, imageStorage storage.ImageStorage) IllustrationService {
	return &illustrationService{
		generator:    generator,
		imageStorage: imageStorage,
	}
}

func (s *illustrationService) Illustrate(ctx context.Context, userID uuid.UUID, prompt string) (*dto.IllustrationResponse, error) {
	if prompt == "" {
		return nil, apperror.BadRequest("Query parameter is required.")
	}
	if s.generator == nil {
		return nil, apperror.New(http.StatusBadGateway, "Illustration service is not configured.", apperror.ErrInternal)
	}
	if s.imageStorage == nil {
		return nil, apperror.New(http.StatusBadGateway, "Image service is not configured.", apperror.ErrInternal)
	}

	picture, err := s.generator.GeneratePicture(ctx, prompt)
	if err != nil {
		return nil, apperror.New(http.StatusBadGateway, "Illustration service failed.", err)
	}

	name := uuid.NewString()
	url, err := s.imageStorage.UploadIllustration(ctx, userID.String(), name, bytes.NewReader(picture))
	if err != nil {
		return nil, apperror.New(http.StatusBadGateway, "Image service failed.", err)
	}

	return &dto.IllustrationResponse{
		IllustrationID: name,
		Illustration:   url,
	}, nil
}
