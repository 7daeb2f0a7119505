package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/queue-service/internal/domain"
)

// TransactionRepository stores immutable closure records.
type TransactionRepository interface {
	Create(ctx context.Context, txn *domain.Transaction) error
	// FirstByNumber returns the earliest closure record for a queue number.
	FirstByNumber(ctx context.Context, queueNumber int) (*domain.Transaction, error)
	ListAll(ctx context.Context) ([]domain.Transaction, error)
	ListCompleted(ctx context.Context) ([]domain.Transaction, error)
	Count(ctx context.Context) (int, error)
	CountCompletedBetween(ctx context.Context, from, to time.Time) (int, error)
}

type transactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository instantiates repository.
func NewTransactionRepository(pool *pgxpool.Pool) TransactionRepository {
	return &transactionRepository{pool: pool}
}

const transactionColumns = `id, queue_number, student_name, transaction_type, joined_at, completed_at, waiting_time, status, served_by`

func (r *transactionRepository) Create(ctx context.Context, txn *domain.Transaction) error {
	const query = `
        INSERT INTO transactions (queue_number, student_name, transaction_type, joined_at, completed_at, waiting_time, status, served_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		txn.QueueNumber,
		txn.StudentName,
		txn.TransactionType,
		txn.JoinedAt,
		txn.CompletedAt,
		txn.WaitingTime,
		txn.Status,
		txn.ServedBy,
	).Scan(&txn.ID)
}

func (r *transactionRepository) FirstByNumber(ctx context.Context, queueNumber int) (*domain.Transaction, error) {
	const query = `SELECT ` + transactionColumns + ` FROM transactions WHERE queue_number=$1 ORDER BY id LIMIT 1`
	var txn domain.Transaction
	if err := scanTransaction(r.pool.QueryRow(ctx, query, queueNumber), &txn); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &txn, nil
}

func (r *transactionRepository) ListAll(ctx context.Context) ([]domain.Transaction, error) {
	const query = `SELECT ` + transactionColumns + ` FROM transactions ORDER BY completed_at DESC`
	return r.list(ctx, query)
}

func (r *transactionRepository) ListCompleted(ctx context.Context) ([]domain.Transaction, error) {
	const query = `SELECT ` + transactionColumns + ` FROM transactions WHERE status=$1 ORDER BY completed_at DESC`
	return r.list(ctx, query, domain.TransactionCompleted)
}

func (r *transactionRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&count)
	return count, err
}

func (r *transactionRepository) CountCompletedBetween(ctx context.Context, from, to time.Time) (int, error) {
	const query = `SELECT COUNT(*) FROM transactions WHERE status=$1 AND completed_at>=$2 AND completed_at<$3`
	var count int
	err := r.pool.QueryRow(ctx, query, domain.TransactionCompleted, from, to).Scan(&count)
	return count, err
}

func (r *transactionRepository) list(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Transaction
	for rows.Next() {
		var txn domain.Transaction
		if err := scanTransaction(rows, &txn); err != nil {
			return nil, err
		}
		result = append(result, txn)
	}
	return result, rows.Err()
}

func scanTransaction(row pgx.Row, txn *domain.Transaction) error {
	return row.Scan(
		&txn.ID,
		&txn.QueueNumber,
		&txn.StudentName,
		&txn.TransactionType,
		&txn.JoinedAt,
		&txn.CompletedAt,
		&txn.WaitingTime,
		&txn.Status,
		&txn.ServedBy,
	)
}
