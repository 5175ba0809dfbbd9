package handlers

import (
	"net/http"

	"github.com/knowhealth/backend/internal/application/services"
	"github.com/knowhealth/backend/internal/auth"
)

// ModerationHandler exposes the operator moderation queue.
type ModerationHandler struct {
	service *services.ModerationService
}

// NewModerationHandler creates a new moderation handler
func NewModerationHandler(service *services.ModerationService) *ModerationHandler {
	return &ModerationHandler{service: service}
}

// ListReports handles GET /api/moderation/reports
func (h *ModerationHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	queue, err := h.service.ListReported(r.Context(), user)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"reports": queue,
		"count":   len(queue),
	})
}

// ApproveReview handles POST /api/moderation/reports/{id}/approve
func (h *ModerationHandler) ApproveReview(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.service.Approve(r.Context(), r.PathValue("id"), user); err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, FormState{Success: true, Message: "review approved"})
}

// DeleteReview handles DELETE /api/moderation/reports/{id}
func (h *ModerationHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.service.Delete(r.Context(), r.PathValue("id"), user); err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, FormState{Success: true, Message: "review deleted"})
}
