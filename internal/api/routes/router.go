package routes

import (
	"net/http"

	"github.com/knowhealth/backend/internal/api/handlers"
	"github.com/knowhealth/backend/internal/api/middleware"
	"github.com/knowhealth/backend/internal/infrastructure/observability"
)

// Router wires handlers onto the HTTP mux and layers middleware.
type Router struct {
	mux *http.ServeMux

	authHandler       *handlers.AuthHandler
	providerHandler   *handlers.ProviderHandler
	facilityHandler   *handlers.FacilityHandler
	reviewHandler     *handlers.ReviewHandler
	moderationHandler *handlers.ModerationHandler
	messageHandler    *handlers.MessageHandler
	imageHandler      *handlers.ImageHandler
	summaryHandler    *handlers.SummaryHandler
	dashboardHandler  *handlers.DashboardHandler
	searchHandler     *handlers.SearchHandler

	authMiddleware  *middleware.AuthMiddleware
	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	authHandler *handlers.AuthHandler,
	providerHandler *handlers.ProviderHandler,
	facilityHandler *handlers.FacilityHandler,
	reviewHandler *handlers.ReviewHandler,
	moderationHandler *handlers.ModerationHandler,
	messageHandler *handlers.MessageHandler,
	imageHandler *handlers.ImageHandler,
	summaryHandler *handlers.SummaryHandler,
	dashboardHandler *handlers.DashboardHandler,
	searchHandler *handlers.SearchHandler,
	authMiddleware *middleware.AuthMiddleware,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:               http.NewServeMux(),
		authHandler:       authHandler,
		providerHandler:   providerHandler,
		facilityHandler:   facilityHandler,
		reviewHandler:     reviewHandler,
		moderationHandler: moderationHandler,
		messageHandler:    messageHandler,
		imageHandler:      imageHandler,
		summaryHandler:    summaryHandler,
		dashboardHandler:  dashboardHandler,
		searchHandler:     searchHandler,
		authMiddleware:    authMiddleware,
		cacheMiddleware:   cacheMiddleware,
		metrics:           metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Auth endpoints
	r.mux.HandleFunc("POST /api/auth/signup", r.authHandler.Signup)
	r.mux.HandleFunc("POST /api/auth/login", r.authHandler.Login)
	r.mux.HandleFunc("GET /api/auth/me", r.authHandler.Me)

	// Provider endpoints
	r.mux.HandleFunc("GET /api/providers", r.providerHandler.ListProviders)
	r.mux.HandleFunc("POST /api/providers", r.providerHandler.CreateProvider)
	r.mux.HandleFunc("GET /api/providers/{id}", r.providerHandler.GetProvider)
	r.mux.HandleFunc("PUT /api/providers/{id}", r.providerHandler.UpdateProvider)
	r.mux.HandleFunc("DELETE /api/providers/{id}", r.providerHandler.DeleteProvider)
	r.mux.HandleFunc("GET /api/providers/{id}/reviews", r.reviewHandler.ListProviderReviews)
	r.mux.HandleFunc("POST /api/providers/{id}/reviews", r.reviewHandler.CreateProviderReview)
	r.mux.HandleFunc("GET /api/providers/{id}/summary", r.summaryHandler.GetProviderSummary)

	// Facility endpoints
	r.mux.HandleFunc("GET /api/facilities", r.facilityHandler.ListFacilities)
	r.mux.HandleFunc("POST /api/facilities", r.facilityHandler.CreateFacility)
	r.mux.HandleFunc("GET /api/facilities/{id}", r.facilityHandler.GetFacility)
	r.mux.HandleFunc("PUT /api/facilities/{id}", r.facilityHandler.UpdateFacility)
	r.mux.HandleFunc("DELETE /api/facilities/{id}", r.facilityHandler.DeleteFacility)
	r.mux.HandleFunc("GET /api/facilities/{id}/reviews", r.reviewHandler.ListFacilityReviews)
	r.mux.HandleFunc("POST /api/facilities/{id}/reviews", r.reviewHandler.CreateFacilityReview)
	r.mux.HandleFunc("GET /api/facilities/{id}/summary", r.summaryHandler.GetFacilitySummary)

	// Directory search
	r.mux.HandleFunc("GET /api/search", r.searchHandler.SearchDirectory)

	// Review moderation
	r.mux.HandleFunc("POST /api/reviews/{id}/report", r.reviewHandler.ReportReview)
	r.mux.HandleFunc("GET /api/moderation/reports", r.moderationHandler.ListReports)
	r.mux.HandleFunc("POST /api/moderation/reports/{id}/approve", r.moderationHandler.ApproveReview)
	r.mux.HandleFunc("DELETE /api/moderation/reports/{id}", r.moderationHandler.DeleteReview)

	// User-owned listings and reviews
	r.mux.HandleFunc("GET /api/my/providers", r.providerHandler.ListMyProviders)
	r.mux.HandleFunc("GET /api/my/facilities", r.facilityHandler.ListMyFacilities)
	r.mux.HandleFunc("GET /api/my/reviews", r.reviewHandler.ListMyReviews)

	// Contact form and operator inbox
	r.mux.HandleFunc("POST /api/contact", r.messageHandler.SubmitMessage)
	r.mux.HandleFunc("GET /api/messages", r.messageHandler.ListMessages)
	r.mux.HandleFunc("POST /api/messages/{id}/read", r.messageHandler.MarkMessageRead)
	r.mux.HandleFunc("GET /api/messages/counts", r.messageHandler.GetMessageCounts)

	// Images
	r.mux.HandleFunc("GET /api/images", r.imageHandler.ListImages)
	r.mux.HandleFunc("POST /api/images", r.imageHandler.SaveImage)

	// Operator dashboard
	r.mux.HandleFunc("GET /api/dashboard", r.dashboardHandler.GetStats)

	// Apply middleware in reverse order (last middleware wraps first).
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	if r.authMiddleware != nil {
		handler = r.authMiddleware.Middleware(handler)
	}

	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORSMiddleware(handler)

	return handler
}
