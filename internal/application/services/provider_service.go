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

// ProviderService handles business logic for provider listings
type ProviderService struct {
	repo       repositories.ProviderRepository
	searchRepo providers.DirectorySearchRepository
}

// NewProviderService creates a new provider service
func NewProviderService(repo repositories.ProviderRepository, searchRepo providers.DirectorySearchRepository) *ProviderService {
	return &ProviderService{
		repo:       repo,
		searchRepo: searchRepo,
	}
}

// Create stores a new provider listing and indexes it
func (s *ProviderService) Create(ctx context.Context, provider *entities.Provider) error {
	if provider.ID == "" {
		provider.ID = uuid.New().String()
	}
	if provider.ImageURL == "" {
		provider.ImageURL = entities.PlaceholderImageURL(provider.Name)
	}
	now := time.Now().UTC()
	provider.CreatedAt = now
	provider.UpdatedAt = now

	if err := s.repo.Create(ctx, provider); err != nil {
		return err
	}

	// Index failures degrade search, not the write (eventual consistency)
	if s.searchRepo != nil {
		if err := s.searchRepo.IndexProvider(ctx, provider); err != nil {
			log.Warn().Err(err).Str("provider_id", provider.ID).Msg("failed to index provider")
		}
	}

	return nil
}

// GetByID retrieves a provider by ID
func (s *ProviderService) GetByID(ctx context.Context, id string) (*entities.Provider, error) {
	return s.repo.GetByID(ctx, id)
}

// Update updates a provider listing and reindexes it
func (s *ProviderService) Update(ctx context.Context, provider *entities.Provider, requestingUserID string) error {
	if err := s.repo.Update(ctx, provider, requestingUserID); err != nil {
		return err
	}

	if s.searchRepo != nil {
		if err := s.searchRepo.IndexProvider(ctx, provider); err != nil {
			log.Warn().Err(err).Str("provider_id", provider.ID).Msg("failed to reindex provider")
		}
	}

	return nil
}

// Delete removes a provider listing and its index entry
func (s *ProviderService) Delete(ctx context.Context, id, requestingUserID string) error {
	if err := s.repo.Delete(ctx, id, requestingUserID); err != nil {
		return err
	}

	if s.searchRepo != nil {
		if err := s.searchRepo.DeleteDocument(ctx, entities.TargetTypeProvider, id); err != nil {
			log.Warn().Err(err).Str("provider_id", id).Msg("failed to remove provider from index")
		}
	}

	return nil
}

// List retrieves provider listings with filters
func (s *ProviderService) List(ctx context.Context, filter repositories.ProviderFilter) ([]*entities.Provider, error) {
	return s.repo.List(ctx, filter)
}

// ListByOwner retrieves the listings one user submitted
func (s *ProviderService) ListByOwner(ctx context.Context, userID string) ([]*entities.Provider, error) {
	return s.repo.ListByOwner(ctx, userID)
}
