package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/knowhealth/backend/internal/domain/entities"
	"github.com/knowhealth/backend/internal/domain/providers"
	"github.com/knowhealth/backend/internal/domain/repositories"
)

// minReviewsForSummary is the floor below which no summary is produced;
// a couple of comments carry no aggregate signal worth paying for.
const minReviewsForSummary = 3

// SummaryService produces AI summaries of a listing's published reviews.
// A missing summary is never an error: callers render the page without
// the summary block.
type SummaryService struct {
	reviews    repositories.ReviewRepository
	summarizer providers.ReviewSummarizer
}

// NewSummaryService creates a new summary service
func NewSummaryService(reviews repositories.ReviewRepository, summarizer providers.ReviewSummarizer) *SummaryService {
	return &SummaryService{
		reviews:    reviews,
		summarizer: summarizer,
	}
}

// Summarize returns a summary of a listing's published reviews, or nil
// when there are fewer than three, no summarizer is configured, or the
// summarizer fails.
func (s *SummaryService) Summarize(ctx context.Context, targetID string, targetType entities.TargetType) (*entities.ReviewSummary, error) {
	if s.summarizer == nil {
		return nil, nil
	}

	reviews, err := s.reviews.ListByTarget(ctx, targetID, targetType)
	if err != nil {
		return nil, err
	}

	comments := make([]string, 0, len(reviews))
	for _, review := range reviews {
		if review.Status == entities.ReviewStatusPublished {
			comments = append(comments, review.Comment)
		}
	}

	if len(comments) < minReviewsForSummary {
		return nil, nil
	}

	summary, err := s.summarizer.Summarize(ctx, comments)
	if err != nil {
		log.Warn().Err(err).Str("target_id", targetID).Msg("review summarization failed")
		return nil, nil
	}

	return summary, nil
}
