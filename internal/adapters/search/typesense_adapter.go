package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/knowhealth/backend/internal/domain/entities"
	"github.com/knowhealth/backend/internal/domain/providers"
	tsclient "github.com/knowhealth/backend/internal/infrastructure/clients/typesense"
)

// TypesenseAdapter implements directory search over a single collection
// holding both provider and facility documents.
type TypesenseAdapter struct {
	client *tsclient.Client
}

var _ providers.DirectorySearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// documentID keeps provider and facility documents from colliding in the
// shared collection.
func documentID(kind entities.TargetType, id string) string {
	return fmt.Sprintf("%s:%s", kind, id)
}

// IndexProvider indexes a provider listing
func (a *TypesenseAdapter) IndexProvider(ctx context.Context, provider *entities.Provider) error {
	document := map[string]interface{}{
		"id":           documentID(entities.TargetTypeProvider, provider.ID),
		"entity_id":    provider.ID,
		"kind":         string(entities.TargetTypeProvider),
		"name":         provider.Name,
		"specialty":    provider.Specialty,
		"location":     provider.Location,
		"description":  provider.Bio,
		"languages":    provider.Languages,
		"insurances":   provider.Insurances,
		"rating":       provider.Rating,
		"review_count": provider.ReviewCount,
		"created_at":   provider.CreatedAt.Unix(),
	}

	if err := a.client.UpsertDocument(ctx, document); err != nil {
		return fmt.Errorf("failed to index provider: %w", err)
	}
	return nil
}

// IndexFacility indexes a facility listing
func (a *TypesenseAdapter) IndexFacility(ctx context.Context, facility *entities.Facility) error {
	document := map[string]interface{}{
		"id":            documentID(entities.TargetTypeFacility, facility.ID),
		"entity_id":     facility.ID,
		"kind":          string(entities.TargetTypeFacility),
		"name":          facility.Name,
		"facility_type": facility.FacilityType,
		"location":      facility.Location,
		"description":   facility.Description,
		"services":      facility.Services,
		"rating":        facility.Rating,
		"review_count":  facility.ReviewCount,
		"created_at":    facility.CreatedAt.Unix(),
	}

	if err := a.client.UpsertDocument(ctx, document); err != nil {
		return fmt.Errorf("failed to index facility: %w", err)
	}
	return nil
}

// DeleteDocument removes a listing from the index
func (a *TypesenseAdapter) DeleteDocument(ctx context.Context, kind entities.TargetType, id string) error {
	if err := a.client.DeleteDocument(ctx, documentID(kind, id)); err != nil {
		return fmt.Errorf("failed to delete document from index: %w", err)
	}
	return nil
}

// Search runs a free-text query across both listing kinds
func (a *TypesenseAdapter) Search(ctx context.Context, params providers.DirectorySearchParams) ([]*providers.DirectorySearchResult, error) {
	query := params.Query
	if query == "" {
		query = "*"
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	searchParams := &api.SearchCollectionParams{
		Q:       pointer.String(query),
		QueryBy: pointer.String("name,location,description,services,languages"),
		Page:    pointer.Int(params.Offset/limit + 1),
		PerPage: pointer.Int(limit),
	}

	if filter := buildFilter(params); filter != "" {
		searchParams.FilterBy = pointer.String(filter)
	}

	result, err := a.client.Client().Collection(tsclient.DirectoryCollection).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to search directory: %w", err)
	}

	results := []*providers.DirectorySearchResult{}
	if result.Hits == nil {
		return results, nil
	}

	for _, hit := range *result.Hits {
		if hit.Document == nil {
			continue
		}
		results = append(results, hydrateResult(*hit.Document))
	}

	return results, nil
}

func buildFilter(params providers.DirectorySearchParams) string {
	var parts []string
	if params.Specialty != "" {
		parts = append(parts, fmt.Sprintf("specialty:=%s", params.Specialty))
	}
	if params.FacilityType != "" {
		parts = append(parts, fmt.Sprintf("facility_type:=%s", params.FacilityType))
	}
	switch {
	case params.Specialty != "":
		parts = append(parts, fmt.Sprintf("kind:=%s", entities.TargetTypeProvider))
	case params.FacilityType != "":
		parts = append(parts, fmt.Sprintf("kind:=%s", entities.TargetTypeFacility))
	}
	return strings.Join(parts, " && ")
}

// hydrateResult rebuilds a partial entity from the indexed document.
// Callers needing full details fetch them from the database by id.
func hydrateResult(doc map[string]interface{}) *providers.DirectorySearchResult {
	kind := entities.TargetType(stringField(doc, "kind"))
	result := &providers.DirectorySearchResult{Kind: kind}

	if kind == entities.TargetTypeFacility {
		result.Facility = &entities.Facility{
			ID:           stringField(doc, "entity_id"),
			Name:         stringField(doc, "name"),
			FacilityType: stringField(doc, "facility_type"),
			Location:     stringField(doc, "location"),
			Description:  stringField(doc, "description"),
			Services:     stringSliceField(doc, "services"),
			Rating:       floatField(doc, "rating"),
			ReviewCount:  intField(doc, "review_count"),
		}
		return result
	}

	result.Provider = &entities.Provider{
		ID:          stringField(doc, "entity_id"),
		Name:        stringField(doc, "name"),
		Specialty:   stringField(doc, "specialty"),
		Location:    stringField(doc, "location"),
		Bio:         stringField(doc, "description"),
		Languages:   stringSliceField(doc, "languages"),
		Insurances:  stringSliceField(doc, "insurances"),
		Rating:      floatField(doc, "rating"),
		ReviewCount: intField(doc, "review_count"),
	}
	return result
}

func stringField(doc map[string]interface{}, key string) string {
	if val, ok := doc[key].(string); ok {
		return val
	}
	return ""
}

func stringSliceField(doc map[string]interface{}, key string) []string {
	raw, ok := doc[key].([]interface{})
	if !ok {
		return nil
	}
	values := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			values = append(values, s)
		}
	}
	return values
}

func floatField(doc map[string]interface{}, key string) float64 {
	if val, ok := doc[key].(float64); ok {
		return val
	}
	return 0
}

func intField(doc map[string]interface{}, key string) int {
	if val, ok := doc[key].(float64); ok {
		return int(val)
	}
	return 0
}
