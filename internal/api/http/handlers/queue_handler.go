package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/queue-service/internal/api/dto"
	"github.com/spec-kit/queue-service/internal/auth"
	"github.com/spec-kit/queue-service/internal/domain"
	"github.com/spec-kit/queue-service/internal/repository"
	"github.com/spec-kit/queue-service/internal/service"
	apperrors "github.com/spec-kit/queue-service/pkg/util/errorutil"
)

// QueueHandler manages queue endpoints for students and operators.
type QueueHandler struct {
	queue *service.QueueService
}

// NewQueueHandler constructs handler.
func NewQueueHandler(queue *service.QueueService) *QueueHandler {
	return &QueueHandler{queue: queue}
}

// Join POST /api/queue/join.
func (h *QueueHandler) Join(c *fiber.Ctx) error {
	var req dto.JoinRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.queue.Join(c.Context(), service.JoinInput{
		Purpose:     req.Purpose,
		PurposeText: req.PurposeText,
		StudentName: req.StudentName,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.JoinResponse{
		Success:     true,
		QueueNumber: result.QueueNumber,
		Position:    result.Position,
	})
}

// Current GET /api/queue/current.
func (h *QueueHandler) Current(c *fiber.Ctx) error {
	view, err := h.queue.CurrentView(c.Context())
	if err != nil {
		return err
	}

	queue := make([]dto.StudentSummary, 0, len(view.Waiting))
	for i := range view.Waiting {
		queue = append(queue, studentSummary(&view.Waiting[i]))
	}

	resp := dto.CurrentQueueResponse{
		Queue:        queue,
		QueueCounter: view.NextQueueNumber,
	}
	if view.Current != nil {
		summary := studentSummary(view.Current)
		resp.CurrentStudent = &summary
	}
	return c.JSON(resp)
}

// CallNext POST /api/queue/call-next (operator only).
func (h *QueueHandler) CallNext(c *fiber.Ctx) error {
	entry, err := h.queue.CallNext(c.Context())
	if err != nil {
		if errors.Is(err, service.ErrEmptyQueue) {
			return c.JSON(dto.CallNextResponse{Success: false, Error: "No students in queue"})
		}
		return err
	}
	summary := studentSummary(entry)
	return c.JSON(dto.CallNextResponse{Success: true, Student: &summary})
}

// Complete POST /api/queue/complete (operator only).
func (h *QueueHandler) Complete(c *fiber.Ctx) error {
	return h.closeEntry(c, h.queue.Complete)
}

// Cancel POST /api/queue/cancel (operator only).
func (h *QueueHandler) Cancel(c *fiber.Ctx) error {
	return h.closeEntry(c, h.queue.Cancel)
}

// Status GET /api/student/status/:queueNumber.
func (h *QueueHandler) Status(c *fiber.Ctx) error {
	queueNumber, err := strconv.Atoi(c.Params("queueNumber"))
	if err != nil {
		return apperrors.NewValidationError("invalid queue number", nil)
	}

	view, err := h.queue.Status(c.Context(), queueNumber)
	if err != nil {
		return err
	}
	if !view.Active {
		return c.JSON(fiber.Map{"status": view.Status})
	}
	return c.JSON(dto.StatusResponse{
		Status:    view.Status,
		Position:  view.Position,
		WaitTime:  view.WaitTime,
		IsCurrent: view.IsCurrent,
	})
}

func (h *QueueHandler) closeEntry(c *fiber.Ctx, closer func(ctx context.Context, queueNumber int, servedBy string) (*domain.Transaction, error)) error {
	var req dto.CloseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	servedBy := "Admin"
	if principal, ok := auth.PrincipalFromContext(c); ok && principal.Admin != nil {
		servedBy = principal.Admin.Username
	}

	if _, err := closer(c.Context(), req.QueueNumber, servedBy); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("student", map[string]any{"queueNumber": req.QueueNumber})
		}
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

func studentSummary(entry *domain.QueueEntry) dto.StudentSummary {
	return dto.StudentSummary{
		Number:      entry.QueueNumber,
		PurposeText: entry.PurposeText,
		StudentName: entry.StudentName,
	}
}
