// Package handler provides HTTP handlers for the API.
package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"smart-queue-service/internal/app/service"
	"smart-queue-service/internal/transport/httpserver/dto"
	"smart-queue-service/internal/validator"
)

// QueueHandler handles ranked-queue and stats HTTP requests.
type QueueHandler struct {
	ranking   *service.RankingService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewQueueHandler creates a new QueueHandler.
func NewQueueHandler(ranking *service.RankingService, v *validator.Validator, logger *zap.Logger) *QueueHandler {
	return &QueueHandler{
		ranking:   ranking,
		validator: v,
		logger:    logger,
	}
}

// GetQueue handles GET /api/v1/queue
func (h *QueueHandler) GetQueue(c *fiber.Ctx) error {
	var req dto.QueueRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid query parameters",
			Code:  "INVALID_PARAMS",
		})
	}

	if err := h.validator.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: err,
		})
	}

	ranked, slot, err := h.ranking.TopVideos(c.Context(), req.ToQueueParams())
	if err != nil {
		h.logger.Error("queue ranking failed", zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "ranking failed",
			Code:  "INTERNAL_ERROR",
		})
	}

	return c.JSON(dto.FromRankedVideos(slot, ranked))
}

// GetStats handles GET /api/v1/stats
func (h *QueueHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.ranking.Stats(c.Context())
	if err != nil {
		h.logger.Error("stats computation failed", zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "stats computation failed",
			Code:  "INTERNAL_ERROR",
		})
	}

	return c.JSON(stats)
}
