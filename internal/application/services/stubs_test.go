package services

import (
	"context"
	"sort"
	"sync"

	"github.com/knowhealth/backend/internal/domain/entities"
	"github.com/knowhealth/backend/internal/domain/providers"
	"github.com/knowhealth/backend/internal/domain/repositories"
	apperrors "github.com/knowhealth/backend/pkg/errors"
)

// In-memory repository stubs shared by the service tests.

type stubReviewRepo struct {
	mu      sync.Mutex
	reviews map[string]*entities.Review
}

func newStubReviewRepo() *stubReviewRepo {
	return &stubReviewRepo{reviews: map[string]*entities.Review{}}
}

func (r *stubReviewRepo) Create(ctx context.Context, review *entities.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *review
	r.reviews[review.ID] = &copied
	return nil
}

func (r *stubReviewRepo) GetByID(ctx context.Context, id string) (*entities.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	review, ok := r.reviews[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("review not found")
	}
	copied := *review
	return &copied, nil
}

func (r *stubReviewRepo) ListByTarget(ctx context.Context, targetID string, targetType entities.TargetType) ([]*entities.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.Review
	for _, review := range r.reviews {
		if review.TargetID() == targetID && review.TargetType() == targetType {
			copied := *review
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubReviewRepo) ListByOwner(ctx context.Context, userID string) ([]*entities.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.Review
	for _, review := range r.reviews {
		if review.UserID == userID {
			copied := *review
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *stubReviewRepo) ListByStatus(ctx context.Context, status entities.ReviewStatus) ([]*entities.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.Review
	for _, review := range r.reviews {
		if review.Status == status {
			copied := *review
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *stubReviewRepo) SetStatus(ctx context.Context, id string, status entities.ReviewStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	review, ok := r.reviews[id]
	if !ok {
		return apperrors.NewNotFoundError("review not found")
	}
	review.Status = status
	return nil
}

func (r *stubReviewRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.reviews, id)
	return nil
}

func (r *stubReviewRepo) Count(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reviews), nil
}

func (r *stubReviewRepo) CountByStatus(ctx context.Context, status entities.ReviewStatus) (int, error) {
	reviews, _ := r.ListByStatus(ctx, status)
	return len(reviews), nil
}

func (r *stubReviewRepo) AggregateByTarget(ctx context.Context, targetID string, targetType entities.TargetType) (float64, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sum, count := 0, 0
	for _, review := range r.reviews {
		if review.TargetID() == targetID && review.TargetType() == targetType && review.Status == entities.ReviewStatusPublished {
			sum += review.Rating
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}

type stubReportRepo struct {
	mu      sync.Mutex
	reports map[string]*entities.Report
}

func newStubReportRepo() *stubReportRepo {
	return &stubReportRepo{reports: map[string]*entities.Report{}}
}

func (r *stubReportRepo) Upsert(ctx context.Context, report *entities.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.reports[report.ReviewID]; exists {
		return nil
	}
	copied := *report
	r.reports[report.ReviewID] = &copied
	return nil
}

func (r *stubReportRepo) GetByReviewID(ctx context.Context, reviewID string) (*entities.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	report, ok := r.reports[reviewID]
	if !ok {
		return nil, apperrors.NewNotFoundError("report not found")
	}
	copied := *report
	return &copied, nil
}

func (r *stubReportRepo) Delete(ctx context.Context, reviewID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.reports, reviewID)
	return nil
}

func (r *stubReportRepo) Count(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reports), nil
}

type stubProviderRepo struct {
	mu        sync.Mutex
	providers map[string]*entities.Provider
}

func newStubProviderRepo() *stubProviderRepo {
	return &stubProviderRepo{providers: map[string]*entities.Provider{}}
}

func (r *stubProviderRepo) Create(ctx context.Context, provider *entities.Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *provider
	r.providers[provider.ID] = &copied
	return nil
}

func (r *stubProviderRepo) GetByID(ctx context.Context, id string) (*entities.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	provider, ok := r.providers[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("provider not found")
	}
	copied := *provider
	return &copied, nil
}

func (r *stubProviderRepo) Update(ctx context.Context, provider *entities.Provider, requestingUserID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.providers[provider.ID]
	if !ok {
		return apperrors.NewNotFoundError("provider not found")
	}
	if existing.SubmittedBy != requestingUserID {
		return apperrors.NewUnauthorizedError("not the submitter")
	}
	copied := *provider
	copied.SubmittedBy = existing.SubmittedBy
	r.providers[provider.ID] = &copied
	return nil
}

func (r *stubProviderRepo) Delete(ctx context.Context, id, requestingUserID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.providers[id]
	if !ok {
		return apperrors.NewNotFoundError("provider not found")
	}
	if existing.SubmittedBy != requestingUserID {
		return apperrors.NewUnauthorizedError("not the submitter")
	}
	delete(r.providers, id)
	return nil
}

func (r *stubProviderRepo) List(ctx context.Context, filter repositories.ProviderFilter) ([]*entities.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.Provider
	for _, provider := range r.providers {
		copied := *provider
		out = append(out, &copied)
	}
	return out, nil
}

func (r *stubProviderRepo) ListByOwner(ctx context.Context, userID string) ([]*entities.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.Provider
	for _, provider := range r.providers {
		if provider.SubmittedBy == userID {
			copied := *provider
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *stubProviderRepo) SetRating(ctx context.Context, id string, rating float64, reviewCount int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	provider, ok := r.providers[id]
	if !ok {
		return apperrors.NewNotFoundError("provider not found")
	}
	provider.Rating = rating
	provider.ReviewCount = reviewCount
	return nil
}

func (r *stubProviderRepo) Count(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.providers), nil
}

type stubFacilityRepo struct {
	mu         sync.Mutex
	facilities map[string]*entities.Facility
}

func newStubFacilityRepo() *stubFacilityRepo {
	return &stubFacilityRepo{facilities: map[string]*entities.Facility{}}
}

func (r *stubFacilityRepo) Create(ctx context.Context, facility *entities.Facility) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *facility
	r.facilities[facility.ID] = &copied
	return nil
}

func (r *stubFacilityRepo) GetByID(ctx context.Context, id string) (*entities.Facility, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	facility, ok := r.facilities[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("facility not found")
	}
	copied := *facility
	return &copied, nil
}

func (r *stubFacilityRepo) Update(ctx context.Context, facility *entities.Facility, requestingUserID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.facilities[facility.ID]
	if !ok {
		return apperrors.NewNotFoundError("facility not found")
	}
	if existing.SubmittedBy != requestingUserID {
		return apperrors.NewUnauthorizedError("not the submitter")
	}
	copied := *facility
	copied.SubmittedBy = existing.SubmittedBy
	r.facilities[facility.ID] = &copied
	return nil
}

func (r *stubFacilityRepo) Delete(ctx context.Context, id, requestingUserID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.facilities[id]
	if !ok {
		return apperrors.NewNotFoundError("facility not found")
	}
	if existing.SubmittedBy != requestingUserID {
		return apperrors.NewUnauthorizedError("not the submitter")
	}
	delete(r.facilities, id)
	return nil
}

func (r *stubFacilityRepo) List(ctx context.Context, filter repositories.FacilityFilter) ([]*entities.Facility, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.Facility
	for _, facility := range r.facilities {
		copied := *facility
		out = append(out, &copied)
	}
	return out, nil
}

func (r *stubFacilityRepo) ListByOwner(ctx context.Context, userID string) ([]*entities.Facility, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.Facility
	for _, facility := range r.facilities {
		if facility.SubmittedBy == userID {
			copied := *facility
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *stubFacilityRepo) SetRating(ctx context.Context, id string, rating float64, reviewCount int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	facility, ok := r.facilities[id]
	if !ok {
		return apperrors.NewNotFoundError("facility not found")
	}
	facility.Rating = rating
	facility.ReviewCount = reviewCount
	return nil
}

func (r *stubFacilityRepo) Count(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.facilities), nil
}

type stubEventBus struct {
	mu        sync.Mutex
	published []*entities.ModerationEvent
}

func (b *stubEventBus) Publish(ctx context.Context, channel string, event *entities.ModerationEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = append(b.published, event)
	return nil
}

func (b *stubEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.ModerationEvent, error) {
	ch := make(chan *entities.ModerationEvent)
	close(ch)
	return ch, nil
}

func (b *stubEventBus) Unsubscribe(ctx context.Context, channel string) error { return nil }

func (b *stubEventBus) Close() error { return nil }

func (b *stubEventBus) events() []*entities.ModerationEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*entities.ModerationEvent{}, b.published...)
}

type stubCacheProvider struct {
	mu       sync.Mutex
	patterns []string
}

func (c *stubCacheProvider) Get(ctx context.Context, key string) ([]byte, error) { return nil, nil }

func (c *stubCacheProvider) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	return nil
}

func (c *stubCacheProvider) Delete(ctx context.Context, key string) error { return nil }

func (c *stubCacheProvider) DeletePattern(ctx context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.patterns = append(c.patterns, pattern)
	return nil
}

func (c *stubCacheProvider) Exists(ctx context.Context, key string) (bool, error) {
	return false, nil
}

func (c *stubCacheProvider) deletedPatterns() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string{}, c.patterns...)
}

type stubSummarizer struct {
	mu      sync.Mutex
	calls   int
	result  *entities.ReviewSummary
	lastErr error
}

func (s *stubSummarizer) Summarize(ctx context.Context, comments []string) (*entities.ReviewSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.lastErr != nil {
		return nil, s.lastErr
	}
	return s.result, nil
}

func (s *stubSummarizer) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

var _ providers.CacheProvider = (*stubCacheProvider)(nil)
var _ providers.ReviewSummarizer = (*stubSummarizer)(nil)
var _ providers.EventBus = (*stubEventBus)(nil)
var _ repositories.ReviewRepository = (*stubReviewRepo)(nil)
var _ repositories.ReportRepository = (*stubReportRepo)(nil)
var _ repositories.ProviderRepository = (*stubProviderRepo)(nil)
var _ repositories.FacilityRepository = (*stubFacilityRepo)(nil)
