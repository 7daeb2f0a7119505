package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/queue-service/internal/domain"
)

// QueueRepository encapsulates queue entry persistence. Entries are soft
// closed via status, never deleted, so waiting queries filter by status.
type QueueRepository interface {
	Create(ctx context.Context, entry *domain.QueueEntry) error
	GetByNumber(ctx context.Context, queueNumber int) (*domain.QueueEntry, error)
	// Current returns the entry being served: status=called and is_current.
	Current(ctx context.Context) (*domain.QueueEntry, error)
	// AnyCurrent returns the entry flagged current regardless of status.
	AnyCurrent(ctx context.Context) (*domain.QueueEntry, error)
	FirstWaiting(ctx context.Context) (*domain.QueueEntry, error)
	ListWaiting(ctx context.Context) ([]domain.QueueEntry, error)
	CountWaiting(ctx context.Context) (int, error)
	// WaitingPosition counts waiting entries that joined at or before the
	// given instant, yielding the 1-indexed queue position.
	WaitingPosition(ctx context.Context, joinedAt time.Time) (int, error)
	SetState(ctx context.Context, queueNumber int, status domain.QueueStatus, isCurrent bool) error
}

type queueRepository struct {
	pool *pgxpool.Pool
}

// NewQueueRepository instantiates repository.
func NewQueueRepository(pool *pgxpool.Pool) QueueRepository {
	return &queueRepository{pool: pool}
}

const queueEntryColumns = `id, queue_number, student_name, purpose, purpose_text, joined_at, status, is_current`

func (r *queueRepository) Create(ctx context.Context, entry *domain.QueueEntry) error {
	const query = `
        INSERT INTO queue_entries (queue_number, student_name, purpose, purpose_text, joined_at, status, is_current)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		entry.QueueNumber,
		entry.StudentName,
		entry.Purpose,
		entry.PurposeText,
		entry.JoinedAt,
		entry.Status,
		entry.IsCurrent,
	).Scan(&entry.ID)
}

func (r *queueRepository) GetByNumber(ctx context.Context, queueNumber int) (*domain.QueueEntry, error) {
	const query = `SELECT ` + queueEntryColumns + ` FROM queue_entries WHERE queue_number=$1`
	return r.fetchSingle(ctx, query, queueNumber)
}

func (r *queueRepository) Current(ctx context.Context) (*domain.QueueEntry, error) {
	const query = `SELECT ` + queueEntryColumns + ` FROM queue_entries WHERE is_current AND status=$1 LIMIT 1`
	return r.fetchSingle(ctx, query, domain.StatusCalled)
}

func (r *queueRepository) AnyCurrent(ctx context.Context) (*domain.QueueEntry, error) {
	const query = `SELECT ` + queueEntryColumns + ` FROM queue_entries WHERE is_current LIMIT 1`
	return r.fetchSingle(ctx, query)
}

func (r *queueRepository) FirstWaiting(ctx context.Context) (*domain.QueueEntry, error) {
	const query = `SELECT ` + queueEntryColumns + ` FROM queue_entries WHERE status=$1 ORDER BY joined_at, id LIMIT 1`
	return r.fetchSingle(ctx, query, domain.StatusWaiting)
}

func (r *queueRepository) ListWaiting(ctx context.Context) ([]domain.QueueEntry, error) {
	const query = `SELECT ` + queueEntryColumns + ` FROM queue_entries WHERE status=$1 ORDER BY joined_at, id`
	rows, err := r.pool.Query(ctx, query, domain.StatusWaiting)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.QueueEntry
	for rows.Next() {
		entry, err := scanQueueEntry(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *entry)
	}
	return result, rows.Err()
}

func (r *queueRepository) CountWaiting(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM queue_entries WHERE status=$1`
	var count int
	err := r.pool.QueryRow(ctx, query, domain.StatusWaiting).Scan(&count)
	return count, err
}

func (r *queueRepository) WaitingPosition(ctx context.Context, joinedAt time.Time) (int, error) {
	const query = `SELECT COUNT(*) FROM queue_entries WHERE status=$1 AND joined_at<=$2`
	var count int
	err := r.pool.QueryRow(ctx, query, domain.StatusWaiting, joinedAt).Scan(&count)
	return count, err
}

func (r *queueRepository) SetState(ctx context.Context, queueNumber int, status domain.QueueStatus, isCurrent bool) error {
	const query = `UPDATE queue_entries SET status=$1, is_current=$2 WHERE queue_number=$3`
	cmd, err := r.pool.Exec(ctx, query, status, isCurrent, queueNumber)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *queueRepository) fetchSingle(ctx context.Context, query string, args ...any) (*domain.QueueEntry, error) {
	entry, err := scanQueueEntry(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return entry, nil
}

func scanQueueEntry(row pgx.Row) (*domain.QueueEntry, error) {
	var entry domain.QueueEntry
	if err := row.Scan(
		&entry.ID,
		&entry.QueueNumber,
		&entry.StudentName,
		&entry.Purpose,
		&entry.PurposeText,
		&entry.JoinedAt,
		&entry.Status,
		&entry.IsCurrent,
	); err != nil {
		return nil, err
	}
	return &entry, nil
}
