package handlers

import (
	"net/http"

	"github.com/knowhealth/backend/internal/application/services"
	"github.com/knowhealth/backend/internal/auth"
	"github.com/knowhealth/backend/internal/domain/entities"
	"github.com/knowhealth/backend/internal/validation"
)

// ReviewHandler handles review submission, listing and reporting.
type ReviewHandler struct {
	reviews    *services.ReviewService
	moderation *services.ModerationService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviews *services.ReviewService, moderation *services.ModerationService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, moderation: moderation}
}

// ListProviderReviews handles GET /api/providers/{id}/reviews
func (h *ReviewHandler) ListProviderReviews(w http.ResponseWriter, r *http.Request) {
	h.listByTarget(w, r, entities.TargetTypeProvider)
}

// ListFacilityReviews handles GET /api/facilities/{id}/reviews
func (h *ReviewHandler) ListFacilityReviews(w http.ResponseWriter, r *http.Request) {
	h.listByTarget(w, r, entities.TargetTypeFacility)
}

func (h *ReviewHandler) listByTarget(w http.ResponseWriter, r *http.Request, targetType entities.TargetType) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "listing ID is required")
		return
	}

	reviews, err := h.reviews.ListByTarget(r.Context(), id, targetType)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	// Reported reviews stay hidden until an operator resolves them.
	published := make([]*entities.Review, 0, len(reviews))
	for _, review := range reviews {
		if review.Status == entities.ReviewStatusPublished {
			published = append(published, review)
		}
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"reviews": published,
		"count":   len(published),
	})
}

// CreateProviderReview handles POST /api/providers/{id}/reviews
func (h *ReviewHandler) CreateProviderReview(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, entities.TargetTypeProvider)
}

// CreateFacilityReview handles POST /api/facilities/{id}/reviews
func (h *ReviewHandler) CreateFacilityReview(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, entities.TargetTypeFacility)
}

func (h *ReviewHandler) create(w http.ResponseWriter, r *http.Request, targetType entities.TargetType) {
	user := auth.UserFrom(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var input validation.ReviewInput
	if !decodeJSON(w, r, &input) {
		return
	}

	// The URL decides the target; a body that names the other kind of
	// listing would make the review ambiguous.
	if targetType == entities.TargetTypeProvider {
		input.ProviderID = r.PathValue("id")
	} else {
		input.FacilityID = r.PathValue("id")
	}

	if issues := validation.Validate(input); len(issues) > 0 {
		respondWithIssues(w, issues)
		return
	}

	review := &entities.Review{
		UserID:     user.ID,
		AuthorName: user.Name,
		ProviderID: input.ProviderID,
		FacilityID: input.FacilityID,
		Rating:     input.Rating,
		Comment:    input.Comment,
		Criteria: entities.CriteriaRatings{
			BedsideManner:    input.BedsideManner,
			MedicalAdherence: input.MedicalAdherence,
			SpecialtyCare:    input.SpecialtyCare,
			FacilityQuality:  input.FacilityQuality,
			WaitTime:         input.WaitTime,
		},
	}

	if err := h.reviews.Create(r.Context(), review); err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"review":  review,
	})
}

// ReportReview handles POST /api/reviews/{id}/report
func (h *ReviewHandler) ReportReview(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var input validation.ReportInput
	if !decodeJSON(w, r, &input) {
		return
	}
	if issues := validation.Validate(input); len(issues) > 0 {
		respondWithIssues(w, issues)
		return
	}

	if err := h.moderation.Report(r.Context(), r.PathValue("id"), user.ID, input.Reason); err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, FormState{Success: true, Message: "review reported"})
}

// ListMyReviews handles GET /api/my/reviews
func (h *ReviewHandler) ListMyReviews(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	reviews, err := h.reviews.ListByOwner(r.Context(), user.ID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"reviews": reviews,
		"count":   len(reviews),
	})
}
