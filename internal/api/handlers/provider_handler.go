package handlers

import (
	"net/http"
	"strconv"

	"github.com/knowhealth/backend/internal/application/services"
	"github.com/knowhealth/backend/internal/auth"
	"github.com/knowhealth/backend/internal/domain/entities"
	"github.com/knowhealth/backend/internal/domain/repositories"
	"github.com/knowhealth/backend/internal/validation"
)

// ProviderHandler handles provider listing HTTP requests
type ProviderHandler struct {
	service *services.ProviderService
}

// NewProviderHandler creates a new provider handler
func NewProviderHandler(service *services.ProviderService) *ProviderHandler {
	return &ProviderHandler{service: service}
}

// ListProviders handles GET /api/providers
func (h *ProviderHandler) ListProviders(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := repositories.ProviderFilter{
		Specialty: query.Get("specialty"),
		Location:  query.Get("location"),
		Limit:     parseIntParam(query.Get("limit"), 30),
		Offset:    parseIntParam(query.Get("offset"), 0),
	}

	providers, err := h.service.List(r.Context(), filter)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"providers": providers,
		"count":     len(providers),
	})
}

// GetProvider handles GET /api/providers/{id}
func (h *ProviderHandler) GetProvider(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "provider ID is required")
		return
	}

	provider, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, provider)
}

// CreateProvider handles POST /api/providers
func (h *ProviderHandler) CreateProvider(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var input validation.ProviderInput
	if !decodeJSON(w, r, &input) {
		return
	}
	if issues := validation.Validate(input); len(issues) > 0 {
		respondWithIssues(w, issues)
		return
	}

	provider := providerFromInput(&input)
	provider.SubmittedBy = user.ID

	if err := h.service.Create(r.Context(), provider); err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"success":  true,
		"provider": provider,
	})
}

// UpdateProvider handles PUT /api/providers/{id}
func (h *ProviderHandler) UpdateProvider(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id := r.PathValue("id")
	var input validation.ProviderInput
	if !decodeJSON(w, r, &input) {
		return
	}
	if issues := validation.Validate(input); len(issues) > 0 {
		respondWithIssues(w, issues)
		return
	}

	provider := providerFromInput(&input)
	provider.ID = id

	if err := h.service.Update(r.Context(), provider, user.ID); err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"provider": provider,
	})
}

// DeleteProvider handles DELETE /api/providers/{id}
func (h *ProviderHandler) DeleteProvider(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.service.Delete(r.Context(), r.PathValue("id"), user.ID); err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, FormState{Success: true, Message: "provider deleted"})
}

// ListMyProviders handles GET /api/my/providers
func (h *ProviderHandler) ListMyProviders(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	providers, err := h.service.ListByOwner(r.Context(), user.ID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"providers": providers,
		"count":     len(providers),
	})
}

func providerFromInput(input *validation.ProviderInput) *entities.Provider {
	return &entities.Provider{
		Name:      input.Name,
		Specialty: input.Specialty,
		Location:  input.Location,
		Bio:       input.Bio,
		Contact: entities.Contact{
			Phone:   input.Phone,
			Email:   input.Email,
			Address: input.Address,
		},
		Languages:      validation.NormalizeList(input.Languages),
		Qualifications: validation.NormalizeList(input.Qualifications),
		Insurances:     validation.NormalizeList(input.Insurances),
		ImageURL:       input.ImageURL,
	}
}

func parseIntParam(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return fallback
	}
	return parsed
}
