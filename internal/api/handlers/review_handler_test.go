package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowhealth/backend/internal/application/services"
	"github.com/knowhealth/backend/internal/domain/entities"
)

type reviewFixture struct {
	handler   *ReviewHandler
	providers *memProviderRepo
	reviews   *memReviewRepo
	member    *entities.User
}

func setupReviewHandler(t *testing.T) *reviewFixture {
	t.Helper()

	providerRepo := newMemProviderRepo()
	facilityRepo := newMemFacilityRepo()
	reviewRepo := newMemReviewRepo()
	reportRepo := newMemReportRepo()

	member := &entities.User{ID: "user-1", Name: "Ada", Role: entities.RoleMember}

	providerRepo.providers["prov-1"] = &entities.Provider{
		ID:          "prov-1",
		Name:        "Dr. Amina Bello",
		Specialty:   "Cardiology",
		Location:    "Lagos",
		SubmittedBy: member.ID,
		CreatedAt:   time.Now().UTC(),
	}

	reviewService := services.NewReviewService(reviewRepo, providerRepo, facilityRepo)
	moderationService := services.NewModerationService(reviewRepo, reportRepo, providerRepo, facilityRepo, nil)

	return &reviewFixture{
		handler:   NewReviewHandler(reviewService, moderationService),
		providers: providerRepo,
		reviews:   reviewRepo,
		member:    member,
	}
}

func TestReviewHandler_CreateRequiresAuth(t *testing.T) {
	f := setupReviewHandler(t)

	body := `{"rating": 5, "comment": "excellent care throughout"}`
	req := httptest.NewRequest("POST", "/api/providers/prov-1/reviews", strings.NewReader(body))
	req.SetPathValue("id", "prov-1")
	w := httptest.NewRecorder()

	f.handler.CreateProviderReview(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestReviewHandler_CreateRejectsShortComment(t *testing.T) {
	f := setupReviewHandler(t)

	body := `{"rating": 5, "comment": "too short"}`
	req := httptest.NewRequest("POST", "/api/providers/prov-1/reviews", strings.NewReader(body))
	req.SetPathValue("id", "prov-1")
	req = authenticatedRequest(req, f.member)
	w := httptest.NewRecorder()

	f.handler.CreateProviderReview(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var state FormState
	require.NoError(t, json.NewDecoder(w.Body).Decode(&state))
	assert.False(t, state.Success)
	assert.Equal(t, "validation failed", state.Message)
	assert.Contains(t, state.Issues, "comment: must be at least 10 characters")
}

func TestReviewHandler_CreatePublishesAndUpdatesAggregate(t *testing.T) {
	f := setupReviewHandler(t)

	body := `{"rating": 4, "comment": "thorough consultation, clear explanations", "bedside_manner": 5}`
	req := httptest.NewRequest("POST", "/api/providers/prov-1/reviews", strings.NewReader(body))
	req.SetPathValue("id", "prov-1")
	req = authenticatedRequest(req, f.member)
	w := httptest.NewRecorder()

	f.handler.CreateProviderReview(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Success bool             `json:"success"`
		Review  *entities.Review `json:"review"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.True(t, response.Success)
	require.NotNil(t, response.Review)
	assert.NotEmpty(t, response.Review.ID)
	assert.Equal(t, entities.ReviewStatusPublished, response.Review.Status)
	assert.Equal(t, f.member.Name, response.Review.AuthorName)

	provider := f.providers.providers["prov-1"]
	assert.Equal(t, 4.0, provider.Rating)
	assert.Equal(t, 1, provider.ReviewCount)
}

func TestReviewHandler_CreateAgainstMissingListing(t *testing.T) {
	f := setupReviewHandler(t)

	body := `{"rating": 3, "comment": "decent enough experience overall"}`
	req := httptest.NewRequest("POST", "/api/providers/missing/reviews", strings.NewReader(body))
	req.SetPathValue("id", "missing")
	req = authenticatedRequest(req, f.member)
	w := httptest.NewRecorder()

	f.handler.CreateProviderReview(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReviewHandler_ListHidesReportedReviews(t *testing.T) {
	f := setupReviewHandler(t)

	f.reviews.reviews["rev-1"] = &entities.Review{
		ID: "rev-1", UserID: "user-2", ProviderID: "prov-1",
		Rating: 5, Comment: "published review stays visible",
		Status: entities.ReviewStatusPublished,
	}
	f.reviews.reviews["rev-2"] = &entities.Review{
		ID: "rev-2", UserID: "user-3", ProviderID: "prov-1",
		Rating: 1, Comment: "reported review must be hidden",
		Status: entities.ReviewStatusReported,
	}

	req := httptest.NewRequest("GET", "/api/providers/prov-1/reviews", nil)
	req.SetPathValue("id", "prov-1")
	w := httptest.NewRecorder()

	f.handler.ListProviderReviews(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Reviews []*entities.Review `json:"reviews"`
		Count   int                `json:"count"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	require.Equal(t, 1, response.Count)
	assert.Equal(t, "rev-1", response.Reviews[0].ID)
}

func TestReviewHandler_ReportReview(t *testing.T) {
	f := setupReviewHandler(t)

	f.reviews.reviews["rev-1"] = &entities.Review{
		ID: "rev-1", UserID: "user-2", ProviderID: "prov-1",
		Rating: 1, Comment: "questionable review content here",
		Status: entities.ReviewStatusPublished,
	}

	body := `{"reason": "contains fabricated claims about the clinic"}`
	req := httptest.NewRequest("POST", "/api/reviews/rev-1/report", strings.NewReader(body))
	req.SetPathValue("id", "rev-1")
	req = authenticatedRequest(req, f.member)
	w := httptest.NewRecorder()

	f.handler.ReportReview(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, entities.ReviewStatusReported, f.reviews.reviews["rev-1"].Status)
}

func TestReviewHandler_ReportRejectsShortReason(t *testing.T) {
	f := setupReviewHandler(t)

	body := `{"reason": "spam"}`
	req := httptest.NewRequest("POST", "/api/reviews/rev-1/report", strings.NewReader(body))
	req.SetPathValue("id", "rev-1")
	req = authenticatedRequest(req, f.member)
	w := httptest.NewRecorder()

	f.handler.ReportReview(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var state FormState
	require.NoError(t, json.NewDecoder(w.Body).Decode(&state))
	assert.Contains(t, state.Issues, "reason: must be at least 10 characters")
}
