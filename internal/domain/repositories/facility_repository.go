package repositories

import (
	"context"

	"github.com/knowhealth/backend/internal/domain/entities"
)

// FacilityFilter narrows facility listings.
type FacilityFilter struct {
	FacilityType string
	Location     string
	Limit        int
	Offset       int
}

// FacilityRepository defines persistence for institution listings.
type FacilityRepository interface {
	Create(ctx context.Context, facility *entities.Facility) error
	GetByID(ctx context.Context, id string) (*entities.Facility, error)
	Update(ctx context.Context, facility *entities.Facility, requestingUserID string) error
	Delete(ctx context.Context, id, requestingUserID string) error
	List(ctx context.Context, filter FacilityFilter) ([]*entities.Facility, error)
	ListByOwner(ctx context.Context, userID string) ([]*entities.Facility, error)
	SetRating(ctx context.Context, id string, rating float64, reviewCount int) error
	Count(ctx context.Context) (int, error)
}
