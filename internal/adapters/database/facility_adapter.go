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

var facilityColumns = []interface{}{
	"id", "name", "facility_type", "location", "description",
	"phone", "email", "address",
	"services", "amenities",
	"rating", "review_count", "image_url", "submitted_by",
	"created_at", "updated_at",
}

// FacilityAdapter implements the FacilityRepository interface
type FacilityAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewFacilityAdapter creates a new facility adapter
func NewFacilityAdapter(client *postgres.Client) repositories.FacilityRepository {
	return &FacilityAdapter{
		client: client,
		db:     newBuilder(client),
	}
}

// Create inserts a new facility listing
func (a *FacilityAdapter) Create(ctx context.Context, facility *entities.Facility) error {
	if a.db == nil {
		return errNotConfigured()
	}

	record := goqu.Record{
		"id":            facility.ID,
		"name":          facility.Name,
		"facility_type": facility.FacilityType,
		"location":      facility.Location,
		"description":   facility.Description,
		"phone":         facility.Contact.Phone,
		"email":         facility.Contact.Email,
		"address":       facility.Contact.Address,
		"services":      pq.Array(facility.Services),
		"amenities":     pq.Array(facility.Amenities),
		"rating":        facility.Rating,
		"review_count":  facility.ReviewCount,
		"image_url":     facility.ImageURL,
		"submitted_by":  facility.SubmittedBy,
		"created_at":    facility.CreatedAt,
		"updated_at":    facility.UpdatedAt,
	}

	query, args, err := a.db.Insert("facilities").Rows(record).Prepared(true).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build facility insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create facility", err)
	}

	return nil
}

// GetByID retrieves a facility by ID
func (a *FacilityAdapter) GetByID(ctx context.Context, id string) (*entities.Facility, error) {
	if a.db == nil {
		return nil, errNotConfigured()
	}

	query, args, err := a.db.From("facilities").
		Select(facilityColumns...).
		Where(goqu.Ex{"id": id}).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build facility select query", err)
	}

	facility, err := scanFacility(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("facility with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get facility", err)
	}

	return facility, nil
}

// Update updates a facility after verifying the requester submitted it
func (a *FacilityAdapter) Update(ctx context.Context, facility *entities.Facility, requestingUserID string) error {
	if a.db == nil {
		return errNotConfigured()
	}

	if err := a.checkOwnership(ctx, facility.ID, requestingUserID); err != nil {
		return err
	}

	facility.UpdatedAt = time.Now()

	record := goqu.Record{
		"name":          facility.Name,
		"facility_type": facility.FacilityType,
		"location":      facility.Location,
		"description":   facility.Description,
		"phone":         facility.Contact.Phone,
		"email":         facility.Contact.Email,
		"address":       facility.Contact.Address,
		"services":      pq.Array(facility.Services),
		"amenities":     pq.Array(facility.Amenities),
		"image_url":     facility.ImageURL,
		"updated_at":    facility.UpdatedAt,
	}

	query, args, err := a.db.Update("facilities").
		Set(record).
		Where(goqu.Ex{"id": facility.ID}).
		Prepared(true).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build facility update query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to update facility", err)
	}

	return nil
}

// Delete removes a facility after verifying the requester submitted it
func (a *FacilityAdapter) Delete(ctx context.Context, id, requestingUserID string) error {
	if a.db == nil {
		return errNotConfigured()
	}

	if err := a.checkOwnership(ctx, id, requestingUserID); err != nil {
		return err
	}

	query, args, err := a.db.Delete("facilities").
		Where(goqu.Ex{"id": id}).
		Prepared(true).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build facility delete query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to delete facility", err)
	}

	return nil
}

func (a *FacilityAdapter) checkOwnership(ctx context.Context, id, requestingUserID string) error {
	query, args, err := a.db.From("facilities").
		Select("submitted_by").
		Where(goqu.Ex{"id": id}).
		Prepared(true).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build facility ownership query", err)
	}

	var submittedBy string
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(&submittedBy)
	if err == sql.ErrNoRows {
		return apperrors.NewNotFoundError(fmt.Sprintf("facility with id %s not found", id))
	}
	if err != nil {
		return apperrors.NewInternalError("failed to check facility ownership", err)
	}

	if submittedBy != requestingUserID {
		return apperrors.NewUnauthorizedError("only the submitting user may modify this facility")
	}

	return nil
}

// List retrieves facilities with filters, newest first
func (a *FacilityAdapter) List(ctx context.Context, filter repositories.FacilityFilter) ([]*entities.Facility, error) {
	if a.db == nil {
		return []*entities.Facility{}, nil
	}

	ds := a.db.From("facilities").
		Select(facilityColumns...).
		Order(goqu.C("created_at").Desc())

	if filter.FacilityType != "" {
		ds = ds.Where(goqu.Ex{"facility_type": filter.FacilityType})
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

	return a.queryFacilities(ctx, ds)
}

// ListByOwner retrieves the facilities submitted by one user, newest first
func (a *FacilityAdapter) ListByOwner(ctx context.Context, userID string) ([]*entities.Facility, error) {
	if a.db == nil {
		return []*entities.Facility{}, nil
	}

	ds := a.db.From("facilities").
		Select(facilityColumns...).
		Where(goqu.Ex{"submitted_by": userID}).
		Order(goqu.C("created_at").Desc())

	return a.queryFacilities(ctx, ds)
}

// SetRating stores the recomputed aggregate rating and review count
func (a *FacilityAdapter) SetRating(ctx context.Context, id string, rating float64, reviewCount int) error {
	if a.db == nil {
		return errNotConfigured()
	}

	query, args, err := a.db.Update("facilities").
		Set(goqu.Record{"rating": rating, "review_count": reviewCount, "updated_at": time.Now()}).
		Where(goqu.Ex{"id": id}).
		Prepared(true).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build facility rating query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to update facility rating", err)
	}

	return nil
}

// Count returns the total number of facility listings
func (a *FacilityAdapter) Count(ctx context.Context) (int, error) {
	if a.db == nil {
		return 0, nil
	}
	return countRows(ctx, a.client, a.db, "facilities", nil)
}

func (a *FacilityAdapter) queryFacilities(ctx context.Context, ds *goqu.SelectDataset) ([]*entities.Facility, error) {
	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build facility list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list facilities", err)
	}
	defer rows.Close()

	facilities := []*entities.Facility{}
	for rows.Next() {
		facility, err := scanFacility(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan facility", err)
		}
		facilities = append(facilities, facility)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating facilities", err)
	}

	return facilities, nil
}

func scanFacility(row rowScanner) (*entities.Facility, error) {
	facility := &entities.Facility{}
	var services, amenities pq.StringArray

	err := row.Scan(
		&facility.ID,
		&facility.Name,
		&facility.FacilityType,
		&facility.Location,
		&facility.Description,
		&facility.Contact.Phone,
		&facility.Contact.Email,
		&facility.Contact.Address,
		&services,
		&amenities,
		&facility.Rating,
		&facility.ReviewCount,
		&facility.ImageURL,
		&facility.SubmittedBy,
		&facility.CreatedAt,
		&facility.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	facility.Services = services
	facility.Amenities = amenities
	return facility, nil
}
