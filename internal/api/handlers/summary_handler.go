package handlers

import (
	"net/http"

	"github.com/knowhealth/backend/internal/application/services"
	"github.com/knowhealth/backend/internal/domain/entities"
)

// SummaryHandler serves AI review summaries for listings.
type SummaryHandler struct {
	service *services.SummaryService
}

// NewSummaryHandler creates a new summary handler
func NewSummaryHandler(service *services.SummaryService) *SummaryHandler {
	return &SummaryHandler{service: service}
}

// GetProviderSummary handles GET /api/providers/{id}/summary
func (h *SummaryHandler) GetProviderSummary(w http.ResponseWriter, r *http.Request) {
	h.get(w, r, entities.TargetTypeProvider)
}

// GetFacilitySummary handles GET /api/facilities/{id}/summary
func (h *SummaryHandler) GetFacilitySummary(w http.ResponseWriter, r *http.Request) {
	h.get(w, r, entities.TargetTypeFacility)
}

// get answers with summary:null when no summary is available; clients
// simply omit the summary block.
func (h *SummaryHandler) get(w http.ResponseWriter, r *http.Request, targetType entities.TargetType) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "listing ID is required")
		return
	}

	summary, err := h.service.Summarize(r.Context(), id, targetType)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"summary": summary,
	})
}
