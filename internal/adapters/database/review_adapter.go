package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/knowhealth/backend/internal/domain/entities"
	"github.com/knowhealth/backend/internal/domain/repositories"
	"github.com/knowhealth/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/knowhealth/backend/pkg/errors"
)

var reviewColumns = []interface{}{
	"id", "user_id", "author_name", "provider_id", "facility_id",
	"rating", "comment", "status",
	"bedside_manner", "medical_adherence", "specialty_care",
	"facility_quality", "wait_time",
	"created_at",
}

// ReviewAdapter implements the ReviewRepository interface
type ReviewAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewReviewAdapter creates a new review adapter
func NewReviewAdapter(client *postgres.Client) repositories.ReviewRepository {
	return &ReviewAdapter{
		client: client,
		db:     newBuilder(client),
	}
}

// Create inserts a new review. Exactly one of provider_id and
// facility_id is set; the other is stored as NULL.
func (a *ReviewAdapter) Create(ctx context.Context, review *entities.Review) error {
	if a.db == nil {
		return errNotConfigured()
	}

	review.NormalizeCriteria()

	record := goqu.Record{
		"id":                review.ID,
		"user_id":           review.UserID,
		"author_name":       review.AuthorName,
		"provider_id":       nullableString(review.ProviderID),
		"facility_id":       nullableString(review.FacilityID),
		"rating":            review.Rating,
		"comment":           review.Comment,
		"status":            review.Status,
		"bedside_manner":    nullableInt(review.Criteria.BedsideManner),
		"medical_adherence": nullableInt(review.Criteria.MedicalAdherence),
		"specialty_care":    nullableInt(review.Criteria.SpecialtyCare),
		"facility_quality":  nullableInt(review.Criteria.FacilityQuality),
		"wait_time":         nullableInt(review.Criteria.WaitTime),
		"created_at":        review.CreatedAt,
	}

	query, args, err := a.db.Insert("reviews").Rows(record).Prepared(true).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build review insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create review", err)
	}

	return nil
}

// GetByID retrieves a review by ID
func (a *ReviewAdapter) GetByID(ctx context.Context, id string) (*entities.Review, error) {
	if a.db == nil {
		return nil, errNotConfigured()
	}

	query, args, err := a.db.From("reviews").
		Select(reviewColumns...).
		Where(goqu.Ex{"id": id}).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build review select query", err)
	}

	review, err := scanReview(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("review with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get review", err)
	}

	return review, nil
}

// ListByTarget retrieves the reviews for one listing, newest first
func (a *ReviewAdapter) ListByTarget(ctx context.Context, targetID string, targetType entities.TargetType) ([]*entities.Review, error) {
	if a.db == nil {
		return []*entities.Review{}, nil
	}

	ds := a.db.From("reviews").
		Select(reviewColumns...).
		Where(targetPredicate(targetID, targetType)).
		Order(goqu.C("created_at").Desc())

	return a.queryReviews(ctx, ds)
}

// ListByOwner retrieves the reviews written by one user, newest first
func (a *ReviewAdapter) ListByOwner(ctx context.Context, userID string) ([]*entities.Review, error) {
	if a.db == nil {
		return []*entities.Review{}, nil
	}

	ds := a.db.From("reviews").
		Select(reviewColumns...).
		Where(goqu.Ex{"user_id": userID}).
		Order(goqu.C("created_at").Desc())

	return a.queryReviews(ctx, ds)
}

// ListByStatus retrieves the reviews in one moderation state, newest first
func (a *ReviewAdapter) ListByStatus(ctx context.Context, status entities.ReviewStatus) ([]*entities.Review, error) {
	if a.db == nil {
		return []*entities.Review{}, nil
	}

	ds := a.db.From("reviews").
		Select(reviewColumns...).
		Where(goqu.Ex{"status": status}).
		Order(goqu.C("created_at").Desc())

	return a.queryReviews(ctx, ds)
}

// SetStatus moves a review between moderation states
func (a *ReviewAdapter) SetStatus(ctx context.Context, id string, status entities.ReviewStatus) error {
	if a.db == nil {
		return errNotConfigured()
	}

	query, args, err := a.db.Update("reviews").
		Set(goqu.Record{"status": status}).
		Where(goqu.Ex{"id": id}).
		Prepared(true).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build review status query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update review status", err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("review with id %s not found", id))
	}

	return nil
}

// Delete removes a review permanently
func (a *ReviewAdapter) Delete(ctx context.Context, id string) error {
	if a.db == nil {
		return errNotConfigured()
	}

	query, args, err := a.db.Delete("reviews").
		Where(goqu.Ex{"id": id}).
		Prepared(true).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build review delete query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to delete review", err)
	}

	return nil
}

// Count returns the total number of reviews
func (a *ReviewAdapter) Count(ctx context.Context) (int, error) {
	if a.db == nil {
		return 0, nil
	}
	return countRows(ctx, a.client, a.db, "reviews", nil)
}

// CountByStatus returns the number of reviews in one moderation state
func (a *ReviewAdapter) CountByStatus(ctx context.Context, status entities.ReviewStatus) (int, error) {
	if a.db == nil {
		return 0, nil
	}
	return countRows(ctx, a.client, a.db, "reviews", goqu.Ex{"status": status})
}

// AggregateByTarget computes the average rating and review count for one
// listing, counting published reviews only. A listing with no published
// reviews aggregates to (0, 0).
func (a *ReviewAdapter) AggregateByTarget(ctx context.Context, targetID string, targetType entities.TargetType) (float64, int, error) {
	if a.db == nil {
		return 0, 0, nil
	}

	query, args, err := a.db.From("reviews").
		Select(goqu.L("COALESCE(AVG(rating), 0)"), goqu.COUNT("*")).
		Where(targetPredicate(targetID, targetType)).
		Where(goqu.Ex{"status": entities.ReviewStatusPublished}).
		Prepared(true).ToSQL()
	if err != nil {
		return 0, 0, apperrors.NewInternalError("failed to build review aggregate query", err)
	}

	var rating float64
	var count int
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&rating, &count); err != nil {
		return 0, 0, apperrors.NewInternalError("failed to aggregate reviews", err)
	}

	return rating, count, nil
}

func targetPredicate(targetID string, targetType entities.TargetType) goqu.Ex {
	if targetType == entities.TargetTypeFacility {
		return goqu.Ex{"facility_id": targetID}
	}
	return goqu.Ex{"provider_id": targetID}
}

func (a *ReviewAdapter) queryReviews(ctx context.Context, ds *goqu.SelectDataset) ([]*entities.Review, error) {
	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build review list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list reviews", err)
	}
	defer rows.Close()

	reviews := []*entities.Review{}
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan review", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating reviews", err)
	}

	return reviews, nil
}

func scanReview(row rowScanner) (*entities.Review, error) {
	review := &entities.Review{}
	var providerID, facilityID sql.NullString
	var bedside, adherence, specialty, quality, wait sql.NullInt64

	err := row.Scan(
		&review.ID,
		&review.UserID,
		&review.AuthorName,
		&providerID,
		&facilityID,
		&review.Rating,
		&review.Comment,
		&review.Status,
		&bedside,
		&adherence,
		&specialty,
		&quality,
		&wait,
		&review.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	review.ProviderID = providerID.String
	review.FacilityID = facilityID.String
	review.Criteria = entities.CriteriaRatings{
		BedsideManner:    intPointer(bedside),
		MedicalAdherence: intPointer(adherence),
		SpecialtyCare:    intPointer(specialty),
		FacilityQuality:  intPointer(quality),
		WaitTime:         intPointer(wait),
	}
	review.NormalizeCriteria()

	return review, nil
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullableInt(n *int) interface{} {
	if n == nil {
		return nil
	}
	return *n
}

func intPointer(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}
