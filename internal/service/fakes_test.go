package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/spec-kit/queue-service/internal/domain"
	"github.com/spec-kit/queue-service/internal/events"
	"github.com/spec-kit/queue-service/internal/repository"
)

type fakeQueueRepo struct {
	mu      sync.Mutex
	entries []*domain.QueueEntry
	nextID  int64
}

func newFakeQueueRepo() *fakeQueueRepo {
	return &fakeQueueRepo{}
}

func (f *fakeQueueRepo) Create(_ context.Context, entry *domain.QueueEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	entry.ID = f.nextID
	stored := *entry
	f.entries = append(f.entries, &stored)
	return nil
}

func (f *fakeQueueRepo) GetByNumber(_ context.Context, queueNumber int) (*domain.QueueEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.entries {
		if e.QueueNumber == queueNumber {
			copied := *e
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeQueueRepo) Current(_ context.Context) (*domain.QueueEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.entries {
		if e.IsCurrent && e.Status == domain.StatusCalled {
			copied := *e
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeQueueRepo) AnyCurrent(_ context.Context) (*domain.QueueEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.entries {
		if e.IsCurrent {
			copied := *e
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeQueueRepo) FirstWaiting(_ context.Context) (*domain.QueueEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var best *domain.QueueEntry
	for _, e := range f.entries {
		if e.Status != domain.StatusWaiting {
			continue
		}
		if best == nil || e.JoinedAt.Before(best.JoinedAt) {
			best = e
		}
	}
	if best == nil {
		return nil, repository.ErrNotFound
	}
	copied := *best
	return &copied, nil
}

func (f *fakeQueueRepo) ListWaiting(_ context.Context) ([]domain.QueueEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.QueueEntry
	for _, e := range f.entries {
		if e.Status == domain.StatusWaiting {
			result = append(result, *e)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].JoinedAt.Before(result[j].JoinedAt)
	})
	return result, nil
}

func (f *fakeQueueRepo) CountWaiting(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, e := range f.entries {
		if e.Status == domain.StatusWaiting {
			count++
		}
	}
	return count, nil
}

func (f *fakeQueueRepo) WaitingPosition(_ context.Context, joinedAt time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, e := range f.entries {
		if e.Status == domain.StatusWaiting && !e.JoinedAt.After(joinedAt) {
			count++
		}
	}
	return count, nil
}

func (f *fakeQueueRepo) SetState(_ context.Context, queueNumber int, status domain.QueueStatus, isCurrent bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.entries {
		if e.QueueNumber == queueNumber {
			e.Status = status
			e.IsCurrent = isCurrent
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeTransactionRepo struct {
	mu     sync.Mutex
	txns   []*domain.Transaction
	nextID int64
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{}
}

func (f *fakeTransactionRepo) Create(_ context.Context, txn *domain.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	txn.ID = f.nextID
	stored := *txn
	f.txns = append(f.txns, &stored)
	return nil
}

func (f *fakeTransactionRepo) FirstByNumber(_ context.Context, queueNumber int) (*domain.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.txns {
		if t.QueueNumber == queueNumber {
			copied := *t
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeTransactionRepo) ListAll(_ context.Context) ([]domain.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]domain.Transaction, 0, len(f.txns))
	for i := len(f.txns) - 1; i >= 0; i-- {
		result = append(result, *f.txns[i])
	}
	return result, nil
}

func (f *fakeTransactionRepo) ListCompleted(_ context.Context) ([]domain.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.Transaction
	for _, t := range f.txns {
		if t.Status == domain.TransactionCompleted {
			result = append(result, *t)
		}
	}
	return result, nil
}

func (f *fakeTransactionRepo) Count(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.txns), nil
}

func (f *fakeTransactionRepo) CountCompletedBetween(_ context.Context, from, to time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, t := range f.txns {
		if t.Status == domain.TransactionCompleted && !t.CompletedAt.Before(from) && t.CompletedAt.Before(to) {
			count++
		}
	}
	return count, nil
}

type fakeFeedbackRepo struct {
	mu        sync.Mutex
	feedbacks []*domain.Feedback
	nextID    int64
}

func newFakeFeedbackRepo() *fakeFeedbackRepo {
	return &fakeFeedbackRepo{}
}

func (f *fakeFeedbackRepo) Create(_ context.Context, fb *domain.Feedback) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	fb.ID = f.nextID
	stored := *fb
	f.feedbacks = append(f.feedbacks, &stored)
	return nil
}

func (f *fakeFeedbackRepo) ListSubmitted(_ context.Context) ([]domain.Feedback, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.Feedback
	for i := len(f.feedbacks) - 1; i >= 0; i-- {
		if f.feedbacks[i].Status == domain.FeedbackSubmitted {
			result = append(result, *f.feedbacks[i])
		}
	}
	return result, nil
}

func (f *fakeFeedbackRepo) CountSubmitted(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, fb := range f.feedbacks {
		if fb.Status == domain.FeedbackSubmitted {
			count++
		}
	}
	return count, nil
}

type fakeStatsRepo struct {
	mu    sync.Mutex
	stats domain.SystemStats
}

func newFakeStatsRepo() *fakeStatsRepo {
	return &fakeStatsRepo{stats: domain.SystemStats{ID: 1, QueueCounter: 100, LastReset: time.Now().UTC()}}
}

func (f *fakeStatsRepo) Get(_ context.Context) (*domain.SystemStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := f.stats
	return &copied, nil
}

func (f *fakeStatsRepo) NextQueueNumber(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	assigned := f.stats.QueueCounter
	f.stats.QueueCounter++
	return assigned, nil
}

func (f *fakeStatsRepo) IncrementTotalTransactions(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stats.TotalTransactions++
	return nil
}

func (f *fakeStatsRepo) SetAvgWaitTime(_ context.Context, avg float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stats.AvgWaitTime = avg
	return nil
}

func (f *fakeStatsRepo) SetAvgRating(_ context.Context, avg float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stats.AvgRating = avg
	return nil
}

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func newRecordingDispatcher() *recordingDispatcher {
	return &recordingDispatcher{}
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(_ events.EventType, _ events.EventHandler) {}

func (d *recordingDispatcher) Types() []events.EventType {
	d.mu.Lock()
	defer d.mu.Unlock()
	types := make([]events.EventType, 0, len(d.events))
	for _, e := range d.events {
		types = append(types, e.Type)
	}
	return types
}
