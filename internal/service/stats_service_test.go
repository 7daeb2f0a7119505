package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/queue-service/internal/domain"
)

func TestOverviewCountsSources(t *testing.T) {
	ctx := context.Background()
	entries := newFakeQueueRepo()
	txns := newFakeTransactionRepo()
	feedbacks := newFakeFeedbackRepo()
	stats := newFakeStatsRepo()

	require.NoError(t, entries.Create(ctx, &domain.QueueEntry{QueueNumber: 100, Status: domain.StatusWaiting, JoinedAt: time.Now().UTC()}))
	require.NoError(t, entries.Create(ctx, &domain.QueueEntry{QueueNumber: 101, Status: domain.StatusCompleted, JoinedAt: time.Now().UTC()}))

	now := time.Now().UTC()
	require.NoError(t, txns.Create(ctx, &domain.Transaction{QueueNumber: 101, Status: domain.TransactionCompleted, CompletedAt: now}))
	require.NoError(t, txns.Create(ctx, &domain.Transaction{QueueNumber: 90, Status: domain.TransactionCompleted, CompletedAt: now.Add(-48 * time.Hour)}))
	require.NoError(t, txns.Create(ctx, &domain.Transaction{QueueNumber: 91, Status: domain.TransactionCancelled, CompletedAt: now}))

	require.NoError(t, feedbacks.Create(ctx, &domain.Feedback{QueueNumber: 101, Rating: 4, Status: domain.FeedbackSubmitted, SubmittedAt: now}))
	require.NoError(t, feedbacks.Create(ctx, &domain.Feedback{QueueNumber: 90, Status: domain.FeedbackSkipped, SubmittedAt: now}))

	require.NoError(t, stats.SetAvgWaitTime(ctx, 6.5))
	require.NoError(t, stats.SetAvgRating(ctx, 4.0))

	svc := NewStatsService(StatsDependencies{
		QueueRepo:       entries,
		TransactionRepo: txns,
		FeedbackRepo:    feedbacks,
		StatsRepo:       stats,
	})

	view, err := svc.Overview(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, view.ServedToday)
	assert.Equal(t, 1, view.WaitingStudents)
	// counts closure records, cancelled included
	assert.Equal(t, 3, view.TotalTransactions)
	assert.Equal(t, 1, view.FeedbackCount)
	assert.Equal(t, 6.5, view.AvgWaitTime)
	assert.Equal(t, 4.0, view.AvgRating)
}

func TestTransactionsNewestFirst(t *testing.T) {
	ctx := context.Background()
	txns := newFakeTransactionRepo()
	now := time.Now().UTC()
	require.NoError(t, txns.Create(ctx, &domain.Transaction{QueueNumber: 100, Status: domain.TransactionCompleted, CompletedAt: now.Add(-time.Hour)}))
	require.NoError(t, txns.Create(ctx, &domain.Transaction{QueueNumber: 101, Status: domain.TransactionCancelled, CompletedAt: now}))

	svc := NewStatsService(StatsDependencies{
		QueueRepo:       newFakeQueueRepo(),
		TransactionRepo: txns,
		FeedbackRepo:    newFakeFeedbackRepo(),
		StatsRepo:       newFakeStatsRepo(),
	})

	listed, err := svc.Transactions(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, 101, listed[0].QueueNumber)
	assert.Equal(t, 100, listed[1].QueueNumber)
}
