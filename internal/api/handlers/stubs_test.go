package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/knowhealth/backend/internal/auth"
	"github.com/knowhealth/backend/internal/domain/entities"
	"github.com/knowhealth/backend/internal/domain/repositories"
	apperrors "github.com/knowhealth/backend/pkg/errors"
)

// In-memory repositories backing handler tests. Handlers are exercised
// end to end through real services; only persistence is substituted.

type memProviderRepo struct {
	providers map[string]*entities.Provider
}

func newMemProviderRepo() *memProviderRepo {
	return &memProviderRepo{providers: make(map[string]*entities.Provider)}
}

func (r *memProviderRepo) Create(_ context.Context, provider *entities.Provider) error {
	clone := *provider
	r.providers[provider.ID] = &clone
	return nil
}

func (r *memProviderRepo) GetByID(_ context.Context, id string) (*entities.Provider, error) {
	provider, ok := r.providers[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("provider with ID %s not found", id))
	}
	clone := *provider
	return &clone, nil
}

func (r *memProviderRepo) Update(_ context.Context, provider *entities.Provider, requestingUserID string) error {
	existing, ok := r.providers[provider.ID]
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("provider with ID %s not found", provider.ID))
	}
	if existing.SubmittedBy != requestingUserID {
		return apperrors.NewUnauthorizedError("only the submitting user may modify this provider")
	}
	clone := *provider
	clone.SubmittedBy = existing.SubmittedBy
	r.providers[provider.ID] = &clone
	return nil
}

func (r *memProviderRepo) Delete(_ context.Context, id, requestingUserID string) error {
	existing, ok := r.providers[id]
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("provider with ID %s not found", id))
	}
	if existing.SubmittedBy != requestingUserID {
		return apperrors.NewUnauthorizedError("only the submitting user may modify this provider")
	}
	delete(r.providers, id)
	return nil
}

func (r *memProviderRepo) List(_ context.Context, filter repositories.ProviderFilter) ([]*entities.Provider, error) {
	out := []*entities.Provider{}
	for _, p := range r.providers {
		if filter.Specialty != "" && p.Specialty != filter.Specialty {
			continue
		}
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (r *memProviderRepo) ListByOwner(_ context.Context, userID string) ([]*entities.Provider, error) {
	out := []*entities.Provider{}
	for _, p := range r.providers {
		if p.SubmittedBy == userID {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *memProviderRepo) SetRating(_ context.Context, id string, rating float64, reviewCount int) error {
	if p, ok := r.providers[id]; ok {
		p.Rating = rating
		p.ReviewCount = reviewCount
	}
	return nil
}

func (r *memProviderRepo) Count(_ context.Context) (int, error) {
	return len(r.providers), nil
}

type memFacilityRepo struct {
	facilities map[string]*entities.Facility
}

func newMemFacilityRepo() *memFacilityRepo {
	return &memFacilityRepo{facilities: make(map[string]*entities.Facility)}
}

func (r *memFacilityRepo) Create(_ context.Context, facility *entities.Facility) error {
	clone := *facility
	r.facilities[facility.ID] = &clone
	return nil
}

func (r *memFacilityRepo) GetByID(_ context.Context, id string) (*entities.Facility, error) {
	facility, ok := r.facilities[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("facility with ID %s not found", id))
	}
	clone := *facility
	return &clone, nil
}

func (r *memFacilityRepo) Update(_ context.Context, facility *entities.Facility, requestingUserID string) error {
	existing, ok := r.facilities[facility.ID]
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("facility with ID %s not found", facility.ID))
	}
	if existing.SubmittedBy != requestingUserID {
		return apperrors.NewUnauthorizedError("only the submitting user may modify this facility")
	}
	clone := *facility
	clone.SubmittedBy = existing.SubmittedBy
	r.facilities[facility.ID] = &clone
	return nil
}

func (r *memFacilityRepo) Delete(_ context.Context, id, requestingUserID string) error {
	existing, ok := r.facilities[id]
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("facility with ID %s not found", id))
	}
	if existing.SubmittedBy != requestingUserID {
		return apperrors.NewUnauthorizedError("only the submitting user may modify this facility")
	}
	delete(r.facilities, id)
	return nil
}

func (r *memFacilityRepo) List(_ context.Context, filter repositories.FacilityFilter) ([]*entities.Facility, error) {
	out := []*entities.Facility{}
	for _, f := range r.facilities {
		if filter.FacilityType != "" && f.FacilityType != filter.FacilityType {
			continue
		}
		clone := *f
		out = append(out, &clone)
	}
	return out, nil
}

func (r *memFacilityRepo) ListByOwner(_ context.Context, userID string) ([]*entities.Facility, error) {
	out := []*entities.Facility{}
	for _, f := range r.facilities {
		if f.SubmittedBy == userID {
			clone := *f
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *memFacilityRepo) SetRating(_ context.Context, id string, rating float64, reviewCount int) error {
	if f, ok := r.facilities[id]; ok {
		f.Rating = rating
		f.ReviewCount = reviewCount
	}
	return nil
}

func (r *memFacilityRepo) Count(_ context.Context) (int, error) {
	return len(r.facilities), nil
}

type memReviewRepo struct {
	reviews map[string]*entities.Review
}

func newMemReviewRepo() *memReviewRepo {
	return &memReviewRepo{reviews: make(map[string]*entities.Review)}
}

func (r *memReviewRepo) Create(_ context.Context, review *entities.Review) error {
	clone := *review
	r.reviews[review.ID] = &clone
	return nil
}

func (r *memReviewRepo) GetByID(_ context.Context, id string) (*entities.Review, error) {
	review, ok := r.reviews[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("review with ID %s not found", id))
	}
	clone := *review
	return &clone, nil
}

func (r *memReviewRepo) ListByTarget(_ context.Context, targetID string, targetType entities.TargetType) ([]*entities.Review, error) {
	out := []*entities.Review{}
	for _, review := range r.reviews {
		if review.TargetID() == targetID && review.TargetType() == targetType {
			clone := *review
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *memReviewRepo) ListByOwner(_ context.Context, userID string) ([]*entities.Review, error) {
	out := []*entities.Review{}
	for _, review := range r.reviews {
		if review.UserID == userID {
			clone := *review
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *memReviewRepo) ListByStatus(_ context.Context, status entities.ReviewStatus) ([]*entities.Review, error) {
	out := []*entities.Review{}
	for _, review := range r.reviews {
		if review.Status == status {
			clone := *review
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *memReviewRepo) SetStatus(_ context.Context, id string, status entities.ReviewStatus) error {
	review, ok := r.reviews[id]
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("review with ID %s not found", id))
	}
	review.Status = status
	return nil
}

func (r *memReviewRepo) Delete(_ context.Context, id string) error {
	delete(r.reviews, id)
	return nil
}

func (r *memReviewRepo) Count(_ context.Context) (int, error) {
	return len(r.reviews), nil
}

func (r *memReviewRepo) CountByStatus(_ context.Context, status entities.ReviewStatus) (int, error) {
	count := 0
	for _, review := range r.reviews {
		if review.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *memReviewRepo) AggregateByTarget(_ context.Context, targetID string, targetType entities.TargetType) (float64, int, error) {
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

type memReportRepo struct {
	reports map[string]*entities.Report
}

func newMemReportRepo() *memReportRepo {
	return &memReportRepo{reports: make(map[string]*entities.Report)}
}

func (r *memReportRepo) Upsert(_ context.Context, report *entities.Report) error {
	if _, exists := r.reports[report.ReviewID]; exists {
		return nil
	}
	clone := *report
	r.reports[report.ReviewID] = &clone
	return nil
}

func (r *memReportRepo) GetByReviewID(_ context.Context, reviewID string) (*entities.Report, error) {
	report, ok := r.reports[reviewID]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no report found for review %s", reviewID))
	}
	clone := *report
	return &clone, nil
}

func (r *memReportRepo) Delete(_ context.Context, reviewID string) error {
	delete(r.reports, reviewID)
	return nil
}

func (r *memReportRepo) Count(_ context.Context) (int, error) {
	return len(r.reports), nil
}

type memUserRepo struct {
	users map[string]*entities.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*entities.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *entities.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return apperrors.NewConflictError(fmt.Sprintf("user with email %s already exists", user.Email))
		}
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entities.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user with ID %s not found", id))
	}
	clone := *user
	return &clone, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("user with email %s not found", email))
}

func (r *memUserRepo) Count(_ context.Context) (int, error) {
	return len(r.users), nil
}

type memMessageRepo struct {
	messages map[string]*entities.ContactMessage
}

func newMemMessageRepo() *memMessageRepo {
	return &memMessageRepo{messages: make(map[string]*entities.ContactMessage)}
}

func (r *memMessageRepo) Create(_ context.Context, message *entities.ContactMessage) error {
	clone := *message
	r.messages[message.ID] = &clone
	return nil
}

func (r *memMessageRepo) List(_ context.Context) ([]*entities.ContactMessage, error) {
	out := []*entities.ContactMessage{}
	for _, m := range r.messages {
		clone := *m
		out = append(out, &clone)
	}
	return out, nil
}

func (r *memMessageRepo) MarkAsRead(_ context.Context, id string) error {
	message, ok := r.messages[id]
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("message with ID %s not found", id))
	}
	message.IsRead = true
	return nil
}

func (r *memMessageRepo) Counts(_ context.Context) (*entities.MessageCounts, error) {
	counts := &entities.MessageCounts{}
	for _, m := range r.messages {
		counts.Total++
		if !m.IsRead {
			counts.Unread++
		}
	}
	return counts, nil
}

// authenticatedRequest attaches a user to the request context the way
// the auth middleware would.
func authenticatedRequest(req *http.Request, user *entities.User) *http.Request {
	return req.WithContext(auth.WithUser(req.Context(), user))
}
