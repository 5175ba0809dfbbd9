package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/knowhealth/backend/internal/domain/entities"
	"github.com/knowhealth/backend/internal/domain/repositories"
)

// ImageService stores and lists uploaded image references.
type ImageService struct {
	repo repositories.ImageRepository
}

// NewImageService creates a new image service
func NewImageService(repo repositories.ImageRepository) *ImageService {
	return &ImageService{repo: repo}
}

// Save stores an image URL reference
func (s *ImageService) Save(ctx context.Context, url string) (*entities.Image, error) {
	image := &entities.Image{
		ID:        uuid.New().String(),
		URL:       url,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, image); err != nil {
		return nil, err
	}
	return image, nil
}

// List retrieves all stored image references
func (s *ImageService) List(ctx context.Context) ([]*entities.Image, error) {
	return s.repo.List(ctx)
}
