package service

import (
	"context"
	"sync"
	"time"

	"github.com/spec-kit/queue-service/internal/domain"
	"github.com/spec-kit/queue-service/internal/repository"
)

// FeedbackService records post-transaction ratings and keeps the rolling
// average in the counters record. Mutations are serialized by a mutex so the
// create-list-recompute sequence never interleaves and a stale average can
// never overwrite a newer one.
type FeedbackService struct {
	mu        sync.Mutex
	feedbacks repository.FeedbackRepository
	stats     repository.StatsRepository
}

// FeedbackDependencies bundles collaborators for the feedback recorder.
type FeedbackDependencies struct {
	FeedbackRepo repository.FeedbackRepository
	StatsRepo    repository.StatsRepository
}

// FeedbackInput describes a submitted rating.
type FeedbackInput struct {
	QueueNumber     int
	Rating          int
	Comments        string
	TransactionType string
}

// NewFeedbackService constructs the service.
func NewFeedbackService(deps FeedbackDependencies) *FeedbackService {
	return &FeedbackService{feedbacks: deps.FeedbackRepo, stats: deps.StatsRepo}
}

// Submit appends a submitted feedback record and recomputes the average
// rating over all submitted records, rounded to one decimal place.
func (s *FeedbackService) Submit(ctx context.Context, input FeedbackInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fb := &domain.Feedback{
		QueueNumber:     input.QueueNumber,
		Rating:          input.Rating,
		Comments:        input.Comments,
		Status:          domain.FeedbackSubmitted,
		TransactionType: input.TransactionType,
		SubmittedAt:     time.Now().UTC(),
	}
	if err := s.feedbacks.Create(ctx, fb); err != nil {
		return err
	}

	submitted, err := s.feedbacks.ListSubmitted(ctx)
	if err != nil {
		return err
	}
	if len(submitted) > 0 {
		total := 0
		for _, f := range submitted {
			total += f.Rating
		}
		avg := roundTo1(float64(total) / float64(len(submitted)))
		if err := s.stats.SetAvgRating(ctx, avg); err != nil {
			return err
		}
	}
	return nil
}

// Skip records that the student declined to rate. Skipped records carry
// rating 0 and never feed the average.
func (s *FeedbackService) Skip(ctx context.Context, queueNumber int, transactionType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fb := &domain.Feedback{
		QueueNumber:     queueNumber,
		Rating:          0,
		Status:          domain.FeedbackSkipped,
		TransactionType: transactionType,
		SubmittedAt:     time.Now().UTC(),
	}
	return s.feedbacks.Create(ctx, fb)
}

// ListSubmitted returns submitted feedback, newest first.
func (s *FeedbackService) ListSubmitted(ctx context.Context) ([]domain.Feedback, error) {
	return s.feedbacks.ListSubmitted(ctx)
}
