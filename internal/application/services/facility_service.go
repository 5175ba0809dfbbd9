package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/knowhealth/backend/internal/domain/entities"
	"github.com/knowhealth/backend/internal/domain/providers"
	"github.com/knowhealth/backend/internal/domain/repositories"
)

// FacilityService handles business logic for facility listings
type FacilityService struct {
	repo       repositories.FacilityRepository
	searchRepo providers.DirectorySearchRepository
}

// NewFacilityService creates a new facility service
func NewFacilityService(repo repositories.FacilityRepository, searchRepo providers.DirectorySearchRepository) *FacilityService {
	return &FacilityService{
		repo:       repo,
		searchRepo: searchRepo,
	}
}

// Create stores a new facility listing and indexes it
func (s *FacilityService) Create(ctx context.Context, facility *entities.Facility) error {
	if facility.ID == "" {
		facility.ID = uuid.New().String()
	}
	if facility.ImageURL == "" {
		facility.ImageURL = entities.PlaceholderImageURL(facility.Name)
	}
	now := time.Now().UTC()
	facility.CreatedAt = now
	facility.UpdatedAt = now

	if err := s.repo.Create(ctx, facility); err != nil {
		return err
	}

	if s.searchRepo != nil {
		if err := s.searchRepo.IndexFacility(ctx, facility); err != nil {
			log.Warn().Err(err).Str("facility_id", facility.ID).Msg("failed to index facility")
		}
	}

	return nil
}

// GetByID retrieves a facility by ID
func (s *FacilityService) GetByID(ctx context.Context, id string) (*entities.Facility, error) {
	return s.repo.GetByID(ctx, id)
}

// Update updates a facility listing and reindexes it
func (s *FacilityService) Update(ctx context.Context, facility *entities.Facility, requestingUserID string) error {
	if err := s.repo.Update(ctx, facility, requestingUserID); err != nil {
		return err
	}

	if s.searchRepo != nil {
		if err := s.searchRepo.IndexFacility(ctx, facility); err != nil {
			log.Warn().Err(err).Str("facility_id", facility.ID).Msg("failed to reindex facility")
		}
	}

	return nil
}

// Delete removes a facility listing and its index entry
func (s *FacilityService) Delete(ctx context.Context, id, requestingUserID string) error {
	if err := s.repo.Delete(ctx, id, requestingUserID); err != nil {
		return err
	}

	if s.searchRepo != nil {
		if err := s.searchRepo.DeleteDocument(ctx, entities.TargetTypeFacility, id); err != nil {
			log.Warn().Err(err).Str("facility_id", id).Msg("failed to remove facility from index")
		}
	}

	return nil
}

// List retrieves facility listings with filters
func (s *FacilityService) List(ctx context.Context, filter repositories.FacilityFilter) ([]*entities.Facility, error) {
	return s.repo.List(ctx, filter)
}

// ListByOwner retrieves the listings one user submitted
func (s *FacilityService) ListByOwner(ctx context.Context, userID string) ([]*entities.Facility, error) {
	return s.repo.ListByOwner(ctx, userID)
}
