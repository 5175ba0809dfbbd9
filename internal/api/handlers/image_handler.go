package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/knowhealth/backend/internal/application/services"
	"github.com/knowhealth/backend/internal/auth"
	"github.com/knowhealth/backend/internal/validation"
)

// ImageHandler handles stored image references.
type ImageHandler struct {
	service *services.ImageService
}

// NewImageHandler creates a new image handler
func NewImageHandler(service *services.ImageService) *ImageHandler {
	return &ImageHandler{service: service}
}

// ListImages handles GET /api/images. Failures, including a missing
// database, answer 500 with the error in the body.
func (h *ImageHandler) ListImages(w http.ResponseWriter, r *http.Request) {
	images, err := h.service.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list images")
		respondWithError(w, http.StatusInternalServerError, userMessage(err))
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"images":  images,
	})
}

// SaveImage handles POST /api/images
func (h *ImageHandler) SaveImage(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var input validation.ImageInput
	if !decodeJSON(w, r, &input) {
		return
	}
	if issues := validation.Validate(input); len(issues) > 0 {
		respondWithIssues(w, issues)
		return
	}

	image, err := h.service.Save(r.Context(), input.ImageURL)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"image":   image,
	})
}
