package repositories

import (
	"context"

	"github.com/knowhealth/backend/internal/domain/entities"
)

// ReportRepository stores moderation-queue entries. A review carries at
// most one report: Upsert dedupes repeat reports by review id.
type ReportRepository interface {
	Upsert(ctx context.Context, report *entities.Report) error
	GetByReviewID(ctx context.Context, reviewID string) (*entities.Report, error)
	Delete(ctx context.Context, reviewID string) error
	Count(ctx context.Context) (int, error)
}
