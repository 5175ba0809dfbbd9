package providers

import (
	"context"

	"github.com/knowhealth/backend/internal/domain/entities"
)

// DirectorySearchParams is a free-text directory query with optional
// filters.
type DirectorySearchParams struct {
	Query        string
	Specialty    string
	FacilityType string
	Location     string
	Limit        int
	Offset       int
}

// DirectorySearchResult is one search hit across both listing kinds.
type DirectorySearchResult struct {
	Kind     entities.TargetType `json:"kind"`
	Provider *entities.Provider  `json:"provider,omitempty"`
	Facility *entities.Facility  `json:"facility,omitempty"`
}

// DirectorySearchRepository indexes and searches listings. Implemented
// by the Typesense adapter; the application falls back to database
// filtering when no search engine is configured.
type DirectorySearchRepository interface {
	IndexProvider(ctx context.Context, provider *entities.Provider) error
	IndexFacility(ctx context.Context, facility *entities.Facility) error
	DeleteDocument(ctx context.Context, kind entities.TargetType, id string) error
	Search(ctx context.Context, params DirectorySearchParams) ([]*DirectorySearchResult, error)
}
