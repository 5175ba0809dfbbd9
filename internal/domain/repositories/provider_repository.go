package repositories

import (
	"context"

	"github.com/knowhealth/backend/internal/domain/entities"
)

// ProviderFilter narrows provider listings.
type ProviderFilter struct {
	Specialty string
	Location  string
	Limit     int
	Offset    int
}

// ProviderRepository defines persistence for practitioner listings.
type ProviderRepository interface {
	Create(ctx context.Context, provider *entities.Provider) error
	GetByID(ctx context.Context, id string) (*entities.Provider, error)
	Update(ctx context.Context, provider *entities.Provider, requestingUserID string) error
	// Delete verifies ownership before issuing the delete; a mismatch
	// yields an UNAUTHORIZED error distinct from NOT_FOUND.
	Delete(ctx context.Context, id, requestingUserID string) error
	List(ctx context.Context, filter ProviderFilter) ([]*entities.Provider, error)
	ListByOwner(ctx context.Context, userID string) ([]*entities.Provider, error)
	// SetRating stores the recomputed aggregate rating and review count.
	SetRating(ctx context.Context, id string, rating float64, reviewCount int) error
	Count(ctx context.Context) (int, error)
}
