package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/queue-service/internal/domain"
)

// StatsRepository manages the singleton counters record. The queue counter
// lives in the store, not in process memory, so restarts never reuse numbers.
type StatsRepository interface {
	Get(ctx context.Context) (*domain.SystemStats, error)
	// NextQueueNumber atomically assigns the current counter value and
	// advances it. Two concurrent calls never receive the same number.
	NextQueueNumber(ctx context.Context) (int, error)
	IncrementTotalTransactions(ctx context.Context) error
	SetAvgWaitTime(ctx context.Context, avg float64) error
	SetAvgRating(ctx context.Context, avg float64) error
}

type statsRepository struct {
	pool *pgxpool.Pool
}

// NewStatsRepository instantiates repository.
func NewStatsRepository(pool *pgxpool.Pool) StatsRepository {
	return &statsRepository{pool: pool}
}

func (r *statsRepository) Get(ctx context.Context) (*domain.SystemStats, error) {
	const query = `
        SELECT id, queue_counter, last_reset, total_transactions, avg_wait_time, avg_rating
        FROM system_stats ORDER BY id LIMIT 1`
	var stats domain.SystemStats
	if err := r.pool.QueryRow(ctx, query).Scan(
		&stats.ID,
		&stats.QueueCounter,
		&stats.LastReset,
		&stats.TotalTransactions,
		&stats.AvgWaitTime,
		&stats.AvgRating,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &stats, nil
}

func (r *statsRepository) NextQueueNumber(ctx context.Context) (int, error) {
	const query = `UPDATE system_stats SET queue_counter = queue_counter + 1 RETURNING queue_counter - 1`
	var assigned int
	if err := r.pool.QueryRow(ctx, query).Scan(&assigned); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return assigned, nil
}

func (r *statsRepository) IncrementTotalTransactions(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `UPDATE system_stats SET total_transactions = total_transactions + 1`)
	return err
}

func (r *statsRepository) SetAvgWaitTime(ctx context.Context, avg float64) error {
	_, err := r.pool.Exec(ctx, `UPDATE system_stats SET avg_wait_time=$1`, avg)
	return err
}

func (r *statsRepository) SetAvgRating(ctx context.Context, avg float64) error {
	_, err := r.pool.Exec(ctx, `UPDATE system_stats SET avg_rating=$1`, avg)
	return err
}
