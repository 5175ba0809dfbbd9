package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/knowhealth/backend/internal/domain/entities"
	"github.com/knowhealth/backend/internal/domain/providers"
	"github.com/knowhealth/backend/internal/domain/repositories"
	apperrors "github.com/knowhealth/backend/pkg/errors"
)

// ReportedReview pairs a reported review with the report that flagged it.
type ReportedReview struct {
	Review *entities.Review `json:"review"`
	Report *entities.Report `json:"report"`
}

// ModerationService drives the report, approve and delete workflow for
// reviews.
type ModerationService struct {
	reviews    repositories.ReviewRepository
	reports    repositories.ReportRepository
	providers  repositories.ProviderRepository
	facilities repositories.FacilityRepository
	eventBus   providers.EventBus
}

// NewModerationService creates a new moderation service
func NewModerationService(
	reviews repositories.ReviewRepository,
	reports repositories.ReportRepository,
	providerRepo repositories.ProviderRepository,
	facilityRepo repositories.FacilityRepository,
	eventBus providers.EventBus,
) *ModerationService {
	return &ModerationService{
		reviews:    reviews,
		reports:    reports,
		providers:  providerRepo,
		facilities: facilityRepo,
		eventBus:   eventBus,
	}
}

// Report flags a review for moderation. The review is hidden from
// public listings until an operator resolves the report. Reporting an
// already-reported review keeps the original report.
func (s *ModerationService) Report(ctx context.Context, reviewID, reporterID, reason string) error {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}

	report := &entities.Report{
		ReviewID:  reviewID,
		UserID:    reporterID,
		Reason:    reason,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.reports.Upsert(ctx, report); err != nil {
		return err
	}

	if err := s.reviews.SetStatus(ctx, reviewID, entities.ReviewStatusReported); err != nil {
		return err
	}

	s.refreshAggregate(ctx, review)
	s.publish(ctx, review, entities.ModerationEventReported)
	return nil
}

// Approve restores a reported review to the published state and clears
// its report. Operator only.
func (s *ModerationService) Approve(ctx context.Context, reviewID string, actor *entities.User) error {
	if !actor.CanModerate() {
		return apperrors.NewUnauthorizedError("only operators may resolve reports")
	}

	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.Status != entities.ReviewStatusReported {
		return apperrors.NewConflictError("review is not awaiting moderation")
	}

	if err := s.reviews.SetStatus(ctx, reviewID, entities.ReviewStatusPublished); err != nil {
		return err
	}
	if err := s.reports.Delete(ctx, reviewID); err != nil {
		return err
	}

	s.refreshAggregate(ctx, review)
	s.publish(ctx, review, entities.ModerationEventApproved)
	return nil
}

// Delete permanently removes a reported review and its report. Operator
// only.
func (s *ModerationService) Delete(ctx context.Context, reviewID string, actor *entities.User) error {
	if !actor.CanModerate() {
		return apperrors.NewUnauthorizedError("only operators may resolve reports")
	}

	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}

	if err := s.reviews.Delete(ctx, reviewID); err != nil {
		return err
	}
	if err := s.reports.Delete(ctx, reviewID); err != nil {
		return err
	}

	s.refreshAggregate(ctx, review)
	s.publish(ctx, review, entities.ModerationEventDeleted)
	return nil
}

// ListReported returns the moderation queue. Operator only.
func (s *ModerationService) ListReported(ctx context.Context, actor *entities.User) ([]*ReportedReview, error) {
	if !actor.CanModerate() {
		return nil, apperrors.NewUnauthorizedError("only operators may view the moderation queue")
	}

	reviews, err := s.reviews.ListByStatus(ctx, entities.ReviewStatusReported)
	if err != nil {
		return nil, err
	}

	queue := make([]*ReportedReview, 0, len(reviews))
	for _, review := range reviews {
		entry := &ReportedReview{Review: review}
		report, err := s.reports.GetByReviewID(ctx, review.ID)
		if err == nil {
			entry.Report = report
		} else if !apperrors.IsNotFound(err) {
			return nil, err
		}
		queue = append(queue, entry)
	}

	return queue, nil
}

func (s *ModerationService) refreshAggregate(ctx context.Context, review *entities.Review) {
	rating, count, err := s.reviews.AggregateByTarget(ctx, review.TargetID(), review.TargetType())
	if err != nil {
		log.Warn().Err(err).Str("target_id", review.TargetID()).Msg("failed to aggregate reviews")
		return
	}

	if review.TargetType() == entities.TargetTypeFacility {
		err = s.facilities.SetRating(ctx, review.TargetID(), rating, count)
	} else {
		err = s.providers.SetRating(ctx, review.TargetID(), rating, count)
	}
	if err != nil {
		log.Warn().Err(err).Str("target_id", review.TargetID()).Msg("failed to store aggregate rating")
	}
}

// publish emits a moderation event. The bus is optional; without Redis
// dependent caches simply expire on their TTL.
func (s *ModerationService) publish(ctx context.Context, review *entities.Review, eventType entities.ModerationEventType) {
	if s.eventBus == nil {
		return
	}

	event := &entities.ModerationEvent{
		ID:         uuid.New().String(),
		ReviewID:   review.ID,
		TargetID:   review.TargetID(),
		TargetType: review.TargetType(),
		EventType:  eventType,
		OccurredAt: time.Now().UTC(),
	}

	if err := s.eventBus.Publish(ctx, providers.EventChannelModeration, event); err != nil {
		log.Warn().Err(err).Str("review_id", review.ID).Msg("failed to publish moderation event")
	}
}
