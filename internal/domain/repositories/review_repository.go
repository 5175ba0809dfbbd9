package repositories

import (
	"context"

	"github.com/knowhealth/backend/internal/domain/entities"
)

// ReviewRepository defines persistence for reviews and their moderation
// status.
type ReviewRepository interface {
	Create(ctx context.Context, review *entities.Review) error
	GetByID(ctx context.Context, id string) (*entities.Review, error)
	// ListByTarget returns reviews for one listing ordered by recency,
	// with criteria fields inapplicable to the target type nulled out.
	ListByTarget(ctx context.Context, targetID string, targetType entities.TargetType) ([]*entities.Review, error)
	ListByOwner(ctx context.Context, userID string) ([]*entities.Review, error)
	ListByStatus(ctx context.Context, status entities.ReviewStatus) ([]*entities.Review, error)
	SetStatus(ctx context.Context, id string, status entities.ReviewStatus) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status entities.ReviewStatus) (int, error)
	// AggregateByTarget returns the average rating and review count for
	// one listing, counting published reviews only.
	AggregateByTarget(ctx context.Context, targetID string, targetType entities.TargetType) (float64, int, error)
}
