package handlers

import (
	"net/http"

	"github.com/knowhealth/backend/internal/application/services"
	"github.com/knowhealth/backend/internal/domain/providers"
	"github.com/knowhealth/backend/internal/domain/repositories"
)

// SearchHandler serves free-text directory search across providers and
// facilities. Without a search engine it falls back to filtered
// database listings.
type SearchHandler struct {
	searchRepo  providers.DirectorySearchRepository
	providerSvc *services.ProviderService
	facilitySvc *services.FacilityService
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(
	searchRepo providers.DirectorySearchRepository,
	providerSvc *services.ProviderService,
	facilitySvc *services.FacilityService,
) *SearchHandler {
	return &SearchHandler{
		searchRepo:  searchRepo,
		providerSvc: providerSvc,
		facilitySvc: facilitySvc,
	}
}

// SearchDirectory handles GET /api/search
func (h *SearchHandler) SearchDirectory(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	params := providers.DirectorySearchParams{
		Query:        query.Get("q"),
		Specialty:    query.Get("specialty"),
		FacilityType: query.Get("type"),
		Location:     query.Get("location"),
		Limit:        parseIntParam(query.Get("limit"), 20),
		Offset:       parseIntParam(query.Get("offset"), 0),
	}

	if h.searchRepo != nil {
		results, err := h.searchRepo.Search(r.Context(), params)
		if err == nil {
			respondWithJSON(w, http.StatusOK, map[string]interface{}{
				"results": results,
				"count":   len(results),
			})
			return
		}
		// Fall through to the database on search engine failure.
	}

	results, err := h.fallbackSearch(r, params)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"results": results,
		"count":   len(results),
	})
}

func (h *SearchHandler) fallbackSearch(r *http.Request, params providers.DirectorySearchParams) ([]*providers.DirectorySearchResult, error) {
	results := []*providers.DirectorySearchResult{}

	if params.FacilityType == "" {
		providerList, err := h.providerSvc.List(r.Context(), repositories.ProviderFilter{
			Specialty: params.Specialty,
			Location:  params.Location,
			Limit:     params.Limit,
			Offset:    params.Offset,
		})
		if err != nil {
			return nil, err
		}
		for _, provider := range providerList {
			results = append(results, &providers.DirectorySearchResult{
				Kind:     "provider",
				Provider: provider,
			})
		}
	}

	if params.Specialty == "" {
		facilityList, err := h.facilitySvc.List(r.Context(), repositories.FacilityFilter{
			FacilityType: params.FacilityType,
			Location:     params.Location,
			Limit:        params.Limit,
			Offset:       params.Offset,
		})
		if err != nil {
			return nil, err
		}
		for _, facility := range facilityList {
			results = append(results, &providers.DirectorySearchResult{
				Kind:     "facility",
				Facility: facility,
			})
		}
	}

	return results, nil
}
