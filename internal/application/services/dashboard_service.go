package services

import (
	"context"

	"github.com/knowhealth/backend/internal/domain/entities"
	"github.com/knowhealth/backend/internal/domain/repositories"
	apperrors "github.com/knowhealth/backend/pkg/errors"
)

// DashboardStats is the operator dashboard snapshot.
type DashboardStats struct {
	Providers       int                     `json:"providers"`
	Facilities      int                     `json:"facilities"`
	Reviews         int                     `json:"reviews"`
	ReportedReviews int                     `json:"reported_reviews"`
	Users           int                     `json:"users"`
	Messages        *entities.MessageCounts `json:"messages"`
}

// DashboardService aggregates counts for the operator dashboard.
type DashboardService struct {
	providers  repositories.ProviderRepository
	facilities repositories.FacilityRepository
	reviews    repositories.ReviewRepository
	users      repositories.UserRepository
	messages   repositories.MessageRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	providers repositories.ProviderRepository,
	facilities repositories.FacilityRepository,
	reviews repositories.ReviewRepository,
	users repositories.UserRepository,
	messages repositories.MessageRepository,
) *DashboardService {
	return &DashboardService{
		providers:  providers,
		facilities: facilities,
		reviews:    reviews,
		users:      users,
		messages:   messages,
	}
}

// Stats collects the dashboard counters. Operator only.
func (s *DashboardService) Stats(ctx context.Context, actor *entities.User) (*DashboardStats, error) {
	if !actor.CanModerate() {
		return nil, apperrors.NewUnauthorizedError("only operators may view the dashboard")
	}

	stats := &DashboardStats{}
	var err error

	if stats.Providers, err = s.providers.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Facilities, err = s.facilities.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Reviews, err = s.reviews.Count(ctx); err != nil {
		return nil, err
	}
	if stats.ReportedReviews, err = s.reviews.CountByStatus(ctx, entities.ReviewStatusReported); err != nil {
		return nil, err
	}
	if stats.Users, err = s.users.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Messages, err = s.messages.Counts(ctx); err != nil {
		return nil, err
	}

	return stats, nil
}
