package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/knowhealth/backend/internal/domain/entities"
	"github.com/knowhealth/backend/internal/domain/repositories"
	apperrors "github.com/knowhealth/backend/pkg/errors"
)

// ReviewService handles business logic for reviews
type ReviewService struct {
	reviews    repositories.ReviewRepository
	providers  repositories.ProviderRepository
	facilities repositories.FacilityRepository
}

// NewReviewService creates a new review service
func NewReviewService(
	reviews repositories.ReviewRepository,
	providers repositories.ProviderRepository,
	facilities repositories.FacilityRepository,
) *ReviewService {
	return &ReviewService{
		reviews:    reviews,
		providers:  providers,
		facilities: facilities,
	}
}

// Create stores a new review against an existing listing and refreshes
// the listing's aggregate rating.
func (s *ReviewService) Create(ctx context.Context, review *entities.Review) error {
	if review.ProviderID != "" && review.FacilityID != "" {
		return apperrors.NewValidationError("a review must reference exactly one listing")
	}
	if review.ProviderID == "" && review.FacilityID == "" {
		return apperrors.NewValidationError("a review must reference a provider or a facility")
	}

	if err := s.verifyTarget(ctx, review); err != nil {
		return err
	}

	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	review.Status = entities.ReviewStatusPublished
	review.CreatedAt = time.Now().UTC()
	review.NormalizeCriteria()

	if err := s.reviews.Create(ctx, review); err != nil {
		return err
	}

	s.refreshAggregate(ctx, review.TargetID(), review.TargetType())
	return nil
}

// verifyTarget confirms the listing a review points at exists.
func (s *ReviewService) verifyTarget(ctx context.Context, review *entities.Review) error {
	if review.TargetType() == entities.TargetTypeFacility {
		_, err := s.facilities.GetByID(ctx, review.FacilityID)
		return err
	}
	_, err := s.providers.GetByID(ctx, review.ProviderID)
	return err
}

// refreshAggregate recomputes a listing's average rating from its
// published reviews. Failures are logged, not surfaced; the next write
// corrects the aggregate.
func (s *ReviewService) refreshAggregate(ctx context.Context, targetID string, targetType entities.TargetType) {
	rating, count, err := s.reviews.AggregateByTarget(ctx, targetID, targetType)
	if err != nil {
		log.Warn().Err(err).Str("target_id", targetID).Msg("failed to aggregate reviews")
		return
	}

	if targetType == entities.TargetTypeFacility {
		err = s.facilities.SetRating(ctx, targetID, rating, count)
	} else {
		err = s.providers.SetRating(ctx, targetID, rating, count)
	}
	if err != nil {
		log.Warn().Err(err).Str("target_id", targetID).Msg("failed to store aggregate rating")
	}
}

// GetByID retrieves a review by ID
func (s *ReviewService) GetByID(ctx context.Context, id string) (*entities.Review, error) {
	return s.reviews.GetByID(ctx, id)
}

// ListByTarget retrieves the reviews for one listing
func (s *ReviewService) ListByTarget(ctx context.Context, targetID string, targetType entities.TargetType) ([]*entities.Review, error) {
	return s.reviews.ListByTarget(ctx, targetID, targetType)
}

// ListByOwner retrieves the reviews one user wrote
func (s *ReviewService) ListByOwner(ctx context.Context, userID string) ([]*entities.Review, error) {
	return s.reviews.ListByOwner(ctx, userID)
}
