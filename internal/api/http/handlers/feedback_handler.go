package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/queue-service/internal/api/dto"
	"github.com/spec-kit/queue-service/internal/service"
	apperrors "github.com/spec-kit/queue-service/pkg/util/errorutil"
)

// FeedbackHandler manages rating endpoints.
type FeedbackHandler struct {
	feedback *service.FeedbackService
}

// NewFeedbackHandler constructs handler.
func NewFeedbackHandler(feedback *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback}
}

// Submit POST /api/feedback/submit.
func (h *FeedbackHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitFeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	err := h.feedback.Submit(c.Context(), service.FeedbackInput{
		QueueNumber:     req.QueueNumber,
		Rating:          req.Rating,
		Comments:        req.Comments,
		TransactionType: req.TransactionType,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

// Skip POST /api/feedback/skip.
func (h *FeedbackHandler) Skip(c *fiber.Ctx) error {
	var req dto.SkipFeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if err := h.feedback.Skip(c.Context(), req.QueueNumber, req.TransactionType); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

// ListAll GET /api/feedback/all (operator only).
func (h *FeedbackHandler) ListAll(c *fiber.Ctx) error {
	feedbacks, err := h.feedback.ListSubmitted(c.Context())
	if err != nil {
		return err
	}

	items := make([]dto.FeedbackItem, 0, len(feedbacks))
	for _, fb := range feedbacks {
		items = append(items, dto.FeedbackItem{
			QueueNumber:     fb.QueueNumber,
			Rating:          fb.Rating,
			Comments:        fb.Comments,
			TransactionType: fb.TransactionType,
			SubmittedAt:     fb.SubmittedAt.Format(time.RFC3339),
		})
	}
	return c.JSON(items)
}
