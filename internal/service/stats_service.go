package service

import (
	"context"
	"errors"
	"time"

	"github.com/spec-kit/queue-service/internal/domain"
	"github.com/spec-kit/queue-service/internal/repository"
)

// StatsService assembles the read-only aggregate views.
type StatsService struct {
	entries      repository.QueueRepository
	transactions repository.TransactionRepository
	feedbacks    repository.FeedbackRepository
	stats        repository.StatsRepository
}

// StatsDependencies bundles collaborators for aggregates.
type StatsDependencies struct {
	QueueRepo       repository.QueueRepository
	TransactionRepo repository.TransactionRepository
	FeedbackRepo    repository.FeedbackRepository
	StatsRepo       repository.StatsRepository
}

// Overview is the dashboard aggregate. TotalTransactions counts closure
// records (completed and cancelled both), matching the transaction listing
// rather than the completed-only counter.
type Overview struct {
	ServedToday       int
	AvgWaitTime       float64
	WaitingStudents   int
	TotalTransactions int
	AvgRating         float64
	FeedbackCount     int
}

// NewStatsService constructs the service.
func NewStatsService(deps StatsDependencies) *StatsService {
	return &StatsService{
		entries:      deps.QueueRepo,
		transactions: deps.TransactionRepo,
		feedbacks:    deps.FeedbackRepo,
		stats:        deps.StatsRepo,
	}
}

// Overview computes the dashboard numbers. ServedToday counts Completed
// records whose closure fell in the current UTC day.
func (s *StatsService) Overview(ctx context.Context) (*Overview, error) {
	waiting, err := s.entries.CountWaiting(ctx)
	if err != nil {
		return nil, err
	}
	total, err := s.transactions.Count(ctx)
	if err != nil {
		return nil, err
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	servedToday, err := s.transactions.CountCompletedBetween(ctx, today, today.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}

	feedbackCount, err := s.feedbacks.CountSubmitted(ctx)
	if err != nil {
		return nil, err
	}

	view := &Overview{
		ServedToday:       servedToday,
		WaitingStudents:   waiting,
		TotalTransactions: total,
		FeedbackCount:     feedbackCount,
	}
	if stats, err := s.stats.Get(ctx); err == nil {
		view.AvgWaitTime = stats.AvgWaitTime
		view.AvgRating = stats.AvgRating
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return view, nil
}

// Transactions lists all closure records, newest first.
func (s *StatsService) Transactions(ctx context.Context) ([]domain.Transaction, error) {
	return s.transactions.ListAll(ctx)
}
