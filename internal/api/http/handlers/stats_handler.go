package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/queue-service/internal/api/dto"
	"github.com/spec-kit/queue-service/internal/service"
)

// StatsHandler serves read-only aggregates.
type StatsHandler struct {
	stats *service.StatsService
}

// NewStatsHandler constructs handler.
func NewStatsHandler(stats *service.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// Overview GET /api/stats.
func (h *StatsHandler) Overview(c *fiber.Ctx) error {
	view, err := h.stats.Overview(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.StatsResponse{
		ServedToday:       view.ServedToday,
		AvgWaitTime:       view.AvgWaitTime,
		WaitingStudents:   view.WaitingStudents,
		TotalTransactions: view.TotalTransactions,
		AvgRating:         view.AvgRating,
		FeedbackCount:     view.FeedbackCount,
	})
}

// Transactions GET /api/transactions (operator only).
func (h *StatsHandler) Transactions(c *fiber.Ctx) error {
	transactions, err := h.stats.Transactions(c.Context())
	if err != nil {
		return err
	}

	items := make([]dto.TransactionItem, 0, len(transactions))
	for _, txn := range transactions {
		items = append(items, dto.TransactionItem{
			Date:            txn.CompletedAt.Format("2006-01-02"),
			QueueNumber:     txn.QueueNumber,
			StudentName:     txn.StudentName,
			TransactionType: txn.TransactionType,
			WaitingTime:     txn.WaitingTime,
			Status:          string(txn.Status),
		})
	}
	return c.JSON(items)
}
