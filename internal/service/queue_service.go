package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/queue-service/internal/domain"
	"github.com/spec-kit/queue-service/internal/events"
	"github.com/spec-kit/queue-service/internal/repository"
)

// ErrEmptyQueue signals CallNext found no waiting entries. It is a soft
// failure: no state change, no broadcast.
var ErrEmptyQueue = errors.New("no students in queue")

// StatusNotFound is the sentinel status returned when a queue number is
// unknown to both active entries and closure records.
const StatusNotFound = "not_found"

// QueueService is the queue engine: it owns entry state transitions
// (waiting -> called -> completed/cancelled), number assignment, and position
// computation. All mutations are serialized by a mutex so concurrent joins
// never share a number and concurrent call-nexts never pick the same entry.
type QueueService struct {
	mu                 sync.Mutex
	entries            repository.QueueRepository
	transactions       repository.TransactionRepository
	stats              repository.StatsRepository
	dispatcher         events.Dispatcher
	startNumber        int
	minutesPerPosition int
}

// QueueDependencies bundles collaborators for the queue engine.
type QueueDependencies struct {
	QueueRepo          repository.QueueRepository
	TransactionRepo    repository.TransactionRepository
	StatsRepo          repository.StatsRepository
	Dispatcher         events.Dispatcher
	StartNumber        int
	MinutesPerPosition int
}

// JoinInput describes a join request.
type JoinInput struct {
	Purpose     string
	PurposeText string
	StudentName string
}

// JoinResult carries the assigned number and 1-indexed queue position.
type JoinResult struct {
	QueueNumber int
	Position    int
}

// QueueView is the read-only projection for display boards.
type QueueView struct {
	Current         *domain.QueueEntry
	Waiting         []domain.QueueEntry
	NextQueueNumber int
}

// StatusView is a student's own view of their ticket. Active marks views
// sourced from the entry table, which carry position data; closed-record
// fallbacks and the not_found sentinel report only a status.
type StatusView struct {
	Status    string
	Position  int
	WaitTime  int
	IsCurrent bool
	Active    bool
}

// NewQueueService constructs the queue engine.
func NewQueueService(deps QueueDependencies) *QueueService {
	startNumber := deps.StartNumber
	if startNumber <= 0 {
		startNumber = 100
	}
	minutes := deps.MinutesPerPosition
	if minutes <= 0 {
		minutes = 5
	}
	return &QueueService{
		entries:            deps.QueueRepo,
		transactions:       deps.TransactionRepo,
		stats:              deps.StatsRepo,
		dispatcher:         deps.Dispatcher,
		startNumber:        startNumber,
		minutesPerPosition: minutes,
	}
}

// Join assigns the next queue number and appends a waiting entry. Join never
// fails on business grounds; only store errors surface.
func (s *QueueService) Join(ctx context.Context, input JoinInput) (*JoinResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	queueNumber, err := s.stats.NextQueueNumber(ctx)
	if err != nil {
		return nil, err
	}

	studentName := strings.TrimSpace(input.StudentName)
	if studentName == "" {
		studentName = fmt.Sprintf("Student_%d", queueNumber)
	}

	entry := &domain.QueueEntry{
		QueueNumber: queueNumber,
		StudentName: studentName,
		Purpose:     input.Purpose,
		PurposeText: input.PurposeText,
		JoinedAt:    time.Now().UTC(),
		Status:      domain.StatusWaiting,
	}
	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, err
	}

	position, err := s.entries.WaitingPosition(ctx, entry.JoinedAt)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventQueueUpdated, nil)
	return &JoinResult{QueueNumber: queueNumber, Position: position}, nil
}

// CallNext moves the earliest waiting entry to called/current. Any previously
// current entry only loses its current flag; its status stays "called" and the
// entry goes stale until an operator closes it.
func (s *QueueService) CallNext(ctx context.Context) (*domain.QueueEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.entries.FirstWaiting(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEmptyQueue
		}
		return nil, err
	}

	current, err := s.entries.AnyCurrent(ctx)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if current != nil {
		if err := s.entries.SetState(ctx, current.QueueNumber, current.Status, false); err != nil {
			return nil, err
		}
	}

	if err := s.entries.SetState(ctx, next.QueueNumber, domain.StatusCalled, true); err != nil {
		return nil, err
	}
	next.Status = domain.StatusCalled
	next.IsCurrent = true

	s.publish(ctx, events.EventStudentCalled, events.StudentCalledPayload{
		QueueNumber: next.QueueNumber,
		PurposeText: next.PurposeText,
	})
	s.publish(ctx, events.EventQueueUpdated, nil)
	return next, nil
}

// CurrentView returns the entry being served, the ordered waiting list, and
// the next number the counter will hand out.
func (s *QueueService) CurrentView(ctx context.Context) (*QueueView, error) {
	current, err := s.entries.Current(ctx)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	waiting, err := s.entries.ListWaiting(ctx)
	if err != nil {
		return nil, err
	}

	nextNumber := s.startNumber
	if stats, err := s.stats.Get(ctx); err == nil {
		nextNumber = stats.QueueCounter
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	return &QueueView{Current: current, Waiting: waiting, NextQueueNumber: nextNumber}, nil
}

// Status resolves a queue number for a student. Active entries report
// position and an estimated wait; closed numbers fall back to the closure
// record and report its status lower-cased.
func (s *QueueService) Status(ctx context.Context, queueNumber int) (*StatusView, error) {
	entry, err := s.entries.GetByNumber(ctx, queueNumber)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		txn, err := s.transactions.FirstByNumber(ctx, queueNumber)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return &StatusView{Status: StatusNotFound}, nil
			}
			return nil, err
		}
		return &StatusView{Status: strings.ToLower(string(txn.Status))}, nil
	}

	position, err := s.entries.WaitingPosition(ctx, entry.JoinedAt)
	if err != nil {
		return nil, err
	}
	return &StatusView{
		Status:    string(entry.Status),
		Position:  position,
		WaitTime:  position * s.minutesPerPosition,
		IsCurrent: entry.IsCurrent,
		Active:    true,
	}, nil
}

// Complete closes an entry as served: snapshots a Completed transaction,
// bumps total transactions, and recomputes the completed-wait average.
func (s *QueueService) Complete(ctx context.Context, queueNumber int, servedBy string) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	txn, err := s.close(ctx, queueNumber, servedBy, domain.TransactionCompleted, domain.StatusCompleted)
	if err != nil {
		return nil, err
	}

	if err := s.stats.IncrementTotalTransactions(ctx); err != nil {
		return nil, err
	}
	completed, err := s.transactions.ListCompleted(ctx)
	if err != nil {
		return nil, err
	}
	if len(completed) > 0 {
		total := 0
		for _, t := range completed {
			total += t.WaitingTime
		}
		avg := roundTo1(float64(total) / float64(len(completed)))
		if err := s.stats.SetAvgWaitTime(ctx, avg); err != nil {
			return nil, err
		}
	}

	s.publish(ctx, events.EventTransactionCompleted, events.TransactionClosedPayload{QueueNumber: queueNumber})
	s.publish(ctx, events.EventQueueUpdated, nil)
	return txn, nil
}

// Cancel closes an entry as cancelled. Unlike Complete it leaves the rolling
// aggregates untouched.
func (s *QueueService) Cancel(ctx context.Context, queueNumber int, servedBy string) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	txn, err := s.close(ctx, queueNumber, servedBy, domain.TransactionCancelled, domain.StatusCancelled)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventTransactionCancelled, events.TransactionClosedPayload{QueueNumber: queueNumber})
	s.publish(ctx, events.EventQueueUpdated, nil)
	return txn, nil
}

// close snapshots the entry into a transaction record and marks the entry
// with its terminal status. The entry itself is kept as history.
func (s *QueueService) close(ctx context.Context, queueNumber int, servedBy string, txnStatus domain.TransactionStatus, entryStatus domain.QueueStatus) (*domain.Transaction, error) {
	entry, err := s.entries.GetByNumber(ctx, queueNumber)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	txn := &domain.Transaction{
		QueueNumber:     entry.QueueNumber,
		StudentName:     entry.StudentName,
		TransactionType: entry.PurposeText,
		JoinedAt:        entry.JoinedAt,
		CompletedAt:     now,
		WaitingTime:     int(now.Sub(entry.JoinedAt).Minutes()),
		Status:          txnStatus,
		ServedBy:        servedBy,
	}
	if err := s.transactions.Create(ctx, txn); err != nil {
		return nil, err
	}
	if err := s.entries.SetState(ctx, entry.QueueNumber, entryStatus, false); err != nil {
		return nil, err
	}
	return txn, nil
}

func (s *QueueService) publish(ctx context.Context, eventType events.EventType, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	})
}

func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}
