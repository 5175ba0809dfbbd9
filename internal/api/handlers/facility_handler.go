package handlers

import (
	"net/http"

	"github.com/knowhealth/backend/internal/application/services"
	"github.com/knowhealth/backend/internal/auth"
	"github.com/knowhealth/backend/internal/domain/entities"
	"github.com/knowhealth/backend/internal/domain/repositories"
	"github.com/knowhealth/backend/internal/validation"
)

// FacilityHandler handles facility listing HTTP requests
type FacilityHandler struct {
	service *services.FacilityService
}

// NewFacilityHandler creates a new facility handler
func NewFacilityHandler(service *services.FacilityService) *FacilityHandler {
	return &FacilityHandler{service: service}
}

// ListFacilities handles GET /api/facilities
func (h *FacilityHandler) ListFacilities(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := repositories.FacilityFilter{
		FacilityType: query.Get("type"),
		Location:     query.Get("location"),
		Limit:        parseIntParam(query.Get("limit"), 30),
		Offset:       parseIntParam(query.Get("offset"), 0),
	}

	facilities, err := h.service.List(r.Context(), filter)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"facilities": facilities,
		"count":      len(facilities),
	})
}

// GetFacility handles GET /api/facilities/{id}
func (h *FacilityHandler) GetFacility(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "facility ID is required")
		return
	}

	facility, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, facility)
}

// CreateFacility handles POST /api/facilities
func (h *FacilityHandler) CreateFacility(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var input validation.FacilityInput
	if !decodeJSON(w, r, &input) {
		return
	}
	if issues := validation.Validate(input); len(issues) > 0 {
		respondWithIssues(w, issues)
		return
	}

	facility := facilityFromInput(&input)
	facility.SubmittedBy = user.ID

	if err := h.service.Create(r.Context(), facility); err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"success":  true,
		"facility": facility,
	})
}

// UpdateFacility handles PUT /api/facilities/{id}
func (h *FacilityHandler) UpdateFacility(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id := r.PathValue("id")
	var input validation.FacilityInput
	if !decodeJSON(w, r, &input) {
		return
	}
	if issues := validation.Validate(input); len(issues) > 0 {
		respondWithIssues(w, issues)
		return
	}

	facility := facilityFromInput(&input)
	facility.ID = id

	if err := h.service.Update(r.Context(), facility, user.ID); err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"facility": facility,
	})
}

// DeleteFacility handles DELETE /api/facilities/{id}
func (h *FacilityHandler) DeleteFacility(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.service.Delete(r.Context(), r.PathValue("id"), user.ID); err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, FormState{Success: true, Message: "facility deleted"})
}

// ListMyFacilities handles GET /api/my/facilities
func (h *FacilityHandler) ListMyFacilities(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	facilities, err := h.service.ListByOwner(r.Context(), user.ID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"facilities": facilities,
		"count":      len(facilities),
	})
}

func facilityFromInput(input *validation.FacilityInput) *entities.Facility {
	return &entities.Facility{
		Name:         input.Name,
		FacilityType: input.FacilityType,
		Location:     input.Location,
		Description:  input.Description,
		Contact: entities.Contact{
			Phone:   input.Phone,
			Email:   input.Email,
			Address: input.Address,
		},
		Services:  validation.NormalizeList(input.Services),
		Amenities: validation.NormalizeList(input.Amenities),
		ImageURL:  input.ImageURL,
	}
}
