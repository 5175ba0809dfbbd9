package repositories

import (
	"context"

	"github.com/knowhealth/backend/internal/domain/entities"
)

// ImageRepository stores uploaded image references.
type ImageRepository interface {
	Create(ctx context.Context, image *entities.Image) error
	List(ctx context.Context) ([]*entities.Image, error)
}
