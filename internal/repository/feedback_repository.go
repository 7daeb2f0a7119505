package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/queue-service/internal/domain"
)

// FeedbackRepository stores post-transaction ratings.
type FeedbackRepository interface {
	Create(ctx context.Context, fb *domain.Feedback) error
	ListSubmitted(ctx context.Context) ([]domain.Feedback, error)
	CountSubmitted(ctx context.Context) (int, error)
}

type feedbackRepository struct {
	pool *pgxpool.Pool
}

// NewFeedbackRepository instantiates repository.
func NewFeedbackRepository(pool *pgxpool.Pool) FeedbackRepository {
	return &feedbackRepository{pool: pool}
}

func (r *feedbackRepository) Create(ctx context.Context, fb *domain.Feedback) error {
	const query = `
        INSERT INTO feedbacks (queue_number, rating, comments, status, transaction_type, submitted_at)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		fb.QueueNumber,
		fb.Rating,
		fb.Comments,
		fb.Status,
		fb.TransactionType,
		fb.SubmittedAt,
	).Scan(&fb.ID)
}

func (r *feedbackRepository) ListSubmitted(ctx context.Context) ([]domain.Feedback, error) {
	const query = `
        SELECT id, queue_number, rating, comments, status, transaction_type, submitted_at
        FROM feedbacks WHERE status=$1 ORDER BY submitted_at DESC`
	rows, err := r.pool.Query(ctx, query, domain.FeedbackSubmitted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFeedbacks(rows)
}

func (r *feedbackRepository) CountSubmitted(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM feedbacks WHERE status=$1`
	var count int
	err := r.pool.QueryRow(ctx, query, domain.FeedbackSubmitted).Scan(&count)
	return count, err
}

func scanFeedbacks(rows pgx.Rows) ([]domain.Feedback, error) {
	var result []domain.Feedback
	for rows.Next() {
		var fb domain.Feedback
		if err := rows.Scan(
			&fb.ID,
			&fb.QueueNumber,
			&fb.Rating,
			&fb.Comments,
			&fb.Status,
			&fb.TransactionType,
			&fb.SubmittedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, fb)
	}
	return result, rows.Err()
}
