package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/knowhealth/backend/internal/domain/entities"
	"github.com/knowhealth/backend/internal/domain/repositories"
	"github.com/knowhealth/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/knowhealth/backend/pkg/errors"
)

var providerColumns = []interface{}{
	"id", "name", "specialty", "location", "bio",
	"phone", "email", "address",
	"languages", "qualifications", "insurances",
	"rating", "review_count", "image_url", "submitted_by",
	"created_at", "updated_at",
}

// ProviderAdapter implements the ProviderRepository interface
type ProviderAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewProviderAdapter creates a new provider adapter
func NewProviderAdapter(client *postgres.Client) repositories.ProviderRepository {
	return &ProviderAdapter{
		client: client,
		db:     newBuilder(client),
	}
}

// Create inserts a new provider listing
func (a *ProviderAdapter) Create(ctx context.Context, provider *entities.Provider) error {
	if a.db == nil {
		return errNotConfigured()
	}

	record := goqu.Record{
		"id":             provider.ID,
		"name":           provider.Name,
		"specialty":      provider.Specialty,
		"location":       provider.Location,
		"bio":            provider.Bio,
		"phone":          provider.Contact.Phone,
		"email":          provider.Contact.Email,
		"address":        provider.Contact.Address,
		"languages":      pq.Array(provider.Languages),
		"qualifications": pq.Array(provider.Qualifications),
		"insurances":     pq.Array(provider.Insurances),
		"rating":         provider.Rating,
		"review_count":   provider.ReviewCount,
		"image_url":      provider.ImageURL,
		"submitted_by":   provider.SubmittedBy,
		"created_at":     provider.CreatedAt,
		"updated_at":     provider.UpdatedAt,
	}

	query, args, err := a.db.Insert("providers").Rows(record).Prepared(true).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build provider insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create provider", err)
	}

	return nil
}

// GetByID retrieves a provider by ID
func (a *ProviderAdapter) GetByID(ctx context.Context, id string) (*entities.Provider, error) {
	if a.db == nil {
		return nil, errNotConfigured()
	}

	query, args, err := a.db.From("providers").
		Select(providerColumns...).
		Where(goqu.Ex{"id": id}).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build provider select query", err)
	}

	provider, err := scanProvider(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("provider with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get provider", err)
	}

	return provider, nil
}

// Update updates a provider after verifying the requester submitted it
func (a *ProviderAdapter) Update(ctx context.Context, provider *entities.Provider, requestingUserID string) error {
	if a.db == nil {
		return errNotConfigured()
	}

	if err := a.checkOwnership(ctx, provider.ID, requestingUserID); err != nil {
		return err
	}

	provider.UpdatedAt = time.Now()

	record := goqu.Record{
		"name":           provider.Name,
		"specialty":      provider.Specialty,
		"location":       provider.Location,
		"bio":            provider.Bio,
		"phone":          provider.Contact.Phone,
		"email":          provider.Contact.Email,
		"address":        provider.Contact.Address,
		"languages":      pq.Array(provider.Languages),
		"qualifications": pq.Array(provider.Qualifications),
		"insurances":     pq.Array(provider.Insurances),
		"image_url":      provider.ImageURL,
		"updated_at":     provider.UpdatedAt,
	}

	query, args, err := a.db.Update("providers").
		Set(record).
		Where(goqu.Ex{"id": provider.ID}).
		Prepared(true).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build provider update query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to update provider", err)
	}

	return nil
}

// Delete removes a provider after verifying the requester submitted it
func (a *ProviderAdapter) Delete(ctx context.Context, id, requestingUserID string) error {
	if a.db == nil {
		return errNotConfigured()
	}

	if err := a.checkOwnership(ctx, id, requestingUserID); err != nil {
		return err
	}

	query, args, err := a.db.Delete("providers").
		Where(goqu.Ex{"id": id}).
		Prepared(true).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build provider delete query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to delete provider", err)
	}

	return nil
}

// checkOwnership distinguishes not-found from a submitter mismatch.
func (a *ProviderAdapter) checkOwnership(ctx context.Context, id, requestingUserID string) error {
	query, args, err := a.db.From("providers").
		Select("submitted_by").
		Where(goqu.Ex{"id": id}).
		Prepared(true).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build provider ownership query", err)
	}

	var submittedBy string
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(&submittedBy)
	if err == sql.ErrNoRows {
		return apperrors.NewNotFoundError(fmt.Sprintf("provider with id %s not found", id))
	}
	if err != nil {
		return apperrors.NewInternalError("failed to check provider ownership", err)
	}

	if submittedBy != requestingUserID {
		return apperrors.NewUnauthorizedError("only the submitting user may modify this provider")
	}

	return nil
}

// List retrieves providers with filters, newest first
func (a *ProviderAdapter) List(ctx context.Context, filter repositories.ProviderFilter) ([]*entities.Provider, error) {
	if a.db == nil {
		return []*entities.Provider{}, nil
	}

	ds := a.db.From("providers").
		Select(providerColumns...).
		Order(goqu.C("created_at").Desc())

	if filter.Specialty != "" {
		ds = ds.Where(goqu.Ex{"specialty": filter.Specialty})
	}
	if filter.Location != "" {
		ds = ds.Where(goqu.C("location").ILike("%" + filter.Location + "%"))
	}
	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	return a.queryProviders(ctx, ds)
}

// ListByOwner retrieves the providers submitted by one user, newest first
func (a *ProviderAdapter) ListByOwner(ctx context.Context, userID string) ([]*entities.Provider, error) {
	if a.db == nil {
		return []*entities.Provider{}, nil
	}

	ds := a.db.From("providers").
		Select(providerColumns...).
		Where(goqu.Ex{"submitted_by": userID}).
		Order(goqu.C("created_at").Desc())

	return a.queryProviders(ctx, ds)
}

// SetRating stores the recomputed aggregate rating and review count
func (a *ProviderAdapter) SetRating(ctx context.Context, id string, rating float64, reviewCount int) error {
	if a.db == nil {
		return errNotConfigured()
	}

	query, args, err := a.db.Update("providers").
		Set(goqu.Record{"rating": rating, "review_count": reviewCount, "updated_at": time.Now()}).
		Where(goqu.Ex{"id": id}).
		Prepared(true).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build provider rating query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to update provider rating", err)
	}

	return nil
}

// Count returns the total number of provider listings
func (a *ProviderAdapter) Count(ctx context.Context) (int, error) {
	if a.db == nil {
		return 0, nil
	}
	return countRows(ctx, a.client, a.db, "providers", nil)
}

func (a *ProviderAdapter) queryProviders(ctx context.Context, ds *goqu.SelectDataset) ([]*entities.Provider, error) {
	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build provider list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list providers", err)
	}
	defer rows.Close()

	providers := []*entities.Provider{}
	for rows.Next() {
		provider, err := scanProvider(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan provider", err)
		}
		providers = append(providers, provider)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating providers", err)
	}

	return providers, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProvider(row rowScanner) (*entities.Provider, error) {
	provider := &entities.Provider{}
	var languages, qualifications, insurances pq.StringArray

	err := row.Scan(
		&provider.ID,
		&provider.Name,
		&provider.Specialty,
		&provider.Location,
		&provider.Bio,
		&provider.Contact.Phone,
		&provider.Contact.Email,
		&provider.Contact.Address,
		&languages,
		&qualifications,
		&insurances,
		&provider.Rating,
		&provider.ReviewCount,
		&provider.ImageURL,
		&provider.SubmittedBy,
		&provider.CreatedAt,
		&provider.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	provider.Languages = languages
	provider.Qualifications = qualifications
	provider.Insurances = insurances
	return provider, nil
}
