package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowhealth/backend/internal/domain/entities"
	apperrors "github.com/knowhealth/backend/pkg/errors"
)

func moderationFixture(t *testing.T) (*ModerationService, *stubReviewRepo, *stubReportRepo, *stubProviderRepo, *stubEventBus) {
	t.Helper()

	reviews := newStubReviewRepo()
	reports := newStubReportRepo()
	providerRepo := newStubProviderRepo()
	facilityRepo := newStubFacilityRepo()
	bus := &stubEventBus{}

	providerRepo.Create(context.Background(), &entities.Provider{
		ID:          "prov-1",
		Name:        "Dr. Ada Bello",
		SubmittedBy: "owner-1",
	})
	reviews.Create(context.Background(), &entities.Review{
		ID:         "rev-1",
		UserID:     "author-1",
		ProviderID: "prov-1",
		Rating:     5,
		Comment:    "Very thorough consultation.",
		Status:     entities.ReviewStatusPublished,
		CreatedAt:  time.Now(),
	})

	service := NewModerationService(reviews, reports, providerRepo, facilityRepo, bus)
	return service, reviews, reports, providerRepo, bus
}

func TestModerationService_ReportThenApprove(t *testing.T) {
	service, reviews, reports, _, bus := moderationFixture(t)
	ctx := context.Background()
	operator := &entities.User{ID: "op-1", Role: entities.RoleOperator}

	err := service.Report(ctx, "rev-1", "reporter-1", "This looks fabricated to me.")
	require.NoError(t, err)

	review, err := reviews.GetByID(ctx, "rev-1")
	require.NoError(t, err)
	assert.Equal(t, entities.ReviewStatusReported, review.Status)

	report, err := reports.GetByReviewID(ctx, "rev-1")
	require.NoError(t, err)
	assert.Equal(t, "reporter-1", report.UserID)

	queue, err := service.ListReported(ctx, operator)
	require.NoError(t, err)
	require.Len(t, queue, 1)
	assert.Equal(t, "rev-1", queue[0].Review.ID)
	require.NotNil(t, queue[0].Report)

	err = service.Approve(ctx, "rev-1", operator)
	require.NoError(t, err)

	review, err = reviews.GetByID(ctx, "rev-1")
	require.NoError(t, err)
	assert.Equal(t, entities.ReviewStatusPublished, review.Status)

	_, err = reports.GetByReviewID(ctx, "rev-1")
	assert.True(t, apperrors.IsNotFound(err))

	events := bus.events()
	require.Len(t, events, 2)
	assert.Equal(t, entities.ModerationEventReported, events[0].EventType)
	assert.Equal(t, entities.ModerationEventApproved, events[1].EventType)
}

func TestModerationService_ReportThenDelete(t *testing.T) {
	service, reviews, reports, providerRepo, _ := moderationFixture(t)
	ctx := context.Background()
	operator := &entities.User{ID: "op-1", Role: entities.RoleOperator}

	require.NoError(t, service.Report(ctx, "rev-1", "reporter-1", "Spam content, repeated everywhere."))
	require.NoError(t, service.Delete(ctx, "rev-1", operator))

	_, err := reviews.GetByID(ctx, "rev-1")
	assert.True(t, apperrors.IsNotFound(err))

	_, err = reports.GetByReviewID(ctx, "rev-1")
	assert.True(t, apperrors.IsNotFound(err))

	// Aggregate drops back to zero with the review gone.
	provider, err := providerRepo.GetByID(ctx, "prov-1")
	require.NoError(t, err)
	assert.Zero(t, provider.Rating)
	assert.Zero(t, provider.ReviewCount)
}

func TestModerationService_RepeatReportKeepsFirstReason(t *testing.T) {
	service, _, reports, _, _ := moderationFixture(t)
	ctx := context.Background()

	require.NoError(t, service.Report(ctx, "rev-1", "reporter-1", "First report reason here."))
	require.NoError(t, service.Report(ctx, "rev-1", "reporter-2", "Second report reason here."))

	report, err := reports.GetByReviewID(ctx, "rev-1")
	require.NoError(t, err)
	assert.Equal(t, "reporter-1", report.UserID)
	assert.Equal(t, "First report reason here.", report.Reason)
}

func TestModerationService_ReportHidesReviewFromAggregate(t *testing.T) {
	service, _, _, providerRepo, _ := moderationFixture(t)
	ctx := context.Background()

	require.NoError(t, service.Report(ctx, "rev-1", "reporter-1", "Not a real patient experience."))

	provider, err := providerRepo.GetByID(ctx, "prov-1")
	require.NoError(t, err)
	assert.Zero(t, provider.Rating)
	assert.Zero(t, provider.ReviewCount)
}

func TestModerationService_MemberCannotModerate(t *testing.T) {
	service, _, _, _, _ := moderationFixture(t)
	ctx := context.Background()
	member := &entities.User{ID: "user-2", Role: entities.RoleMember}

	require.NoError(t, service.Report(ctx, "rev-1", "reporter-1", "Offensive wording throughout."))

	err := service.Approve(ctx, "rev-1", member)
	assert.True(t, apperrors.IsUnauthorized(err))

	err = service.Delete(ctx, "rev-1", member)
	assert.True(t, apperrors.IsUnauthorized(err))

	_, err = service.ListReported(ctx, member)
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestModerationService_ApproveRequiresReportedStatus(t *testing.T) {
	service, _, _, _, _ := moderationFixture(t)
	operator := &entities.User{ID: "op-1", Role: entities.RoleOperator}

	err := service.Approve(context.Background(), "rev-1", operator)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeConflict, apperrors.TypeOf(err))
}

func TestModerationService_ReportUnknownReview(t *testing.T) {
	service, _, _, _, _ := moderationFixture(t)

	err := service.Report(context.Background(), "missing", "reporter-1", "Reported by mistake maybe.")
	assert.True(t, apperrors.IsNotFound(err))
}
