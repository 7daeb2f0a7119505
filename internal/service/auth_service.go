package service

import (
	"context"
	"errors"
	"time"

	"github.com/spec-kit/queue-service/internal/auth"
	"github.com/spec-kit/queue-service/internal/config"
	"github.com/spec-kit/queue-service/internal/domain"
	"github.com/spec-kit/queue-service/internal/repository"
	apperrors "github.com/spec-kit/queue-service/pkg/util/errorutil"
)

// AuthService authenticates operator accounts. This is plumbing around the
// queue, not a hardened identity system.
type AuthService struct {
	admins repository.AdminRepository
	tokens *auth.TokenManager
	cfg    config.AuthConfig
}

// LoginResult carries a signed session token.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Admin     *domain.Admin
}

// NewAuthService constructs the service.
func NewAuthService(cfg config.AuthConfig, admins repository.AdminRepository) *AuthService {
	return &AuthService{
		admins: admins,
		tokens: auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		cfg:    cfg,
	}
}

// TokenManager exposes the manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

// Login verifies credentials and issues a token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	admin, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, err
	}
	if err := auth.ComparePassword(admin.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.tokens.GenerateToken(admin.ID, admin.Username, admin.Name)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: expiresAt, Admin: admin}, nil
}

// EnsureDefaultAdmin seeds the bootstrap operator account on first run.
func (s *AuthService) EnsureDefaultAdmin(ctx context.Context, username, password, name string) error {
	_, err := s.admins.GetByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	hash, err := auth.HashPassword(password, s.cfg.BcryptCost)
	if err != nil {
		return err
	}
	return s.admins.Create(ctx, &domain.Admin{
		Username:     username,
		PasswordHash: hash,
		Name:         name,
	})
}
