package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/queue-service/internal/domain"
)

// AdminRepository stores operator accounts.
type AdminRepository interface {
	Create(ctx context.Context, admin *domain.Admin) error
	GetByID(ctx context.Context, id int64) (*domain.Admin, error)
	GetByUsername(ctx context.Context, username string) (*domain.Admin, error)
}

type adminRepository struct {
	pool *pgxpool.Pool
}

// NewAdminRepository instantiates repository.
func NewAdminRepository(pool *pgxpool.Pool) AdminRepository {
	return &adminRepository{pool: pool}
}

func (r *adminRepository) Create(ctx context.Context, admin *domain.Admin) error {
	const query = `
        INSERT INTO admins (username, password_hash, name)
        VALUES ($1,$2,$3)
        ON CONFLICT (username) DO NOTHING
        RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, query, admin.Username, admin.PasswordHash, admin.Name).
		Scan(&admin.ID, &admin.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		// already seeded
		return nil
	}
	return err
}

func (r *adminRepository) GetByID(ctx context.Context, id int64) (*domain.Admin, error) {
	const query = `SELECT id, username, password_hash, name, created_at FROM admins WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *adminRepository) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	const query = `SELECT id, username, password_hash, name, created_at FROM admins WHERE username=$1`
	return r.fetchSingle(ctx, query, username)
}

func (r *adminRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Admin, error) {
	var admin domain.Admin
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&admin.ID,
		&admin.Username,
		&admin.PasswordHash,
		&admin.Name,
		&admin.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &admin, nil
}
