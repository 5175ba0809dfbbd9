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

// ReportAdapter implements the ReportRepository interface
type ReportAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewReportAdapter creates a new report adapter
func NewReportAdapter(client *postgres.Client) repositories.ReportRepository {
	return &ReportAdapter{
		client: client,
		db:     newBuilder(client),
	}
}

// Upsert records a report against a review. A second report for the
// same review is a no-op: the first reporter's reason stands.
func (a *ReportAdapter) Upsert(ctx context.Context, report *entities.Report) error {
	if a.db == nil {
		return errNotConfigured()
	}

	record := goqu.Record{
		"review_id":  report.ReviewID,
		"user_id":    report.UserID,
		"reason":     report.Reason,
		"created_at": report.CreatedAt,
	}

	query, args, err := a.db.Insert("reports").
		Rows(record).
		OnConflict(goqu.DoNothing()).
		Prepared(true).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build report upsert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to record report", err)
	}

	return nil
}

// GetByReviewID retrieves the report for one review
func (a *ReportAdapter) GetByReviewID(ctx context.Context, reviewID string) (*entities.Report, error) {
	if a.db == nil {
		return nil, errNotConfigured()
	}

	query, args, err := a.db.From("reports").
		Select("review_id", "user_id", "reason", "created_at").
		Where(goqu.Ex{"review_id": reviewID}).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build report select query", err)
	}

	report := &entities.Report{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).
		Scan(&report.ReviewID, &report.UserID, &report.Reason, &report.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no report found for review %s", reviewID))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get report", err)
	}

	return report, nil
}

// Delete clears the report for one review once an operator resolves it
func (a *ReportAdapter) Delete(ctx context.Context, reviewID string) error {
	if a.db == nil {
		return errNotConfigured()
	}

	query, args, err := a.db.Delete("reports").
		Where(goqu.Ex{"review_id": reviewID}).
		Prepared(true).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build report delete query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to delete report", err)
	}

	return nil
}

// Count returns the number of open reports
func (a *ReportAdapter) Count(ctx context.Context) (int, error) {
	if a.db == nil {
		return 0, nil
	}
	return countRows(ctx, a.client, a.db, "reports", nil)
}
