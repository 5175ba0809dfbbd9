package providers

import (
	"context"

	"github.com/knowhealth/backend/internal/domain/entities"
)

// ReviewSummarizer condenses a set of review comments into a
// fixed-shape summary via an external model.
type ReviewSummarizer interface {
	Summarize(ctx context.Context, comments []string) (*entities.ReviewSummary, error)
}
