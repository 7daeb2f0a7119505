package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/queue-service/internal/api/dto"
	"github.com/spec-kit/queue-service/internal/auth"
	"github.com/spec-kit/queue-service/internal/service"
	apperrors "github.com/spec-kit/queue-service/pkg/util/errorutil"
)

// AuthHandler manages operator session endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password required", nil)
	}

	result, err := h.auth.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(dto.LoginResponse{
		Success:   true,
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		Admin:     dto.AdminSummary{Name: result.Admin.Name},
	})
}

// Logout POST /api/auth/logout. Sessions are stateless tokens; the client
// discards the token and the server just acknowledges.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true})
}

// Check GET /api/auth/check (operator only).
func (h *AuthHandler) Check(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Admin == nil {
		return c.JSON(fiber.Map{"authenticated": false})
	}
	return c.JSON(fiber.Map{
		"authenticated": true,
		"admin":         dto.AdminSummary{Name: principal.Admin.Name},
	})
}
