package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"smart-queue-service/internal/app/service"
	"smart-queue-service/internal/domain"
	"smart-queue-service/internal/transport/httpserver/dto"
	"smart-queue-service/internal/validator"
)

// VideoHandler handles per-video and playlist scoring HTTP requests.
type VideoHandler struct {
	scoring   *service.ScoringService
	ranking   *service.RankingService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewVideoHandler creates a new VideoHandler.
func NewVideoHandler(scoring *service.ScoringService, ranking *service.RankingService, v *validator.Validator, logger *zap.Logger) *VideoHandler {
	return &VideoHandler{
		scoring:   scoring,
		ranking:   ranking,
		validator: v,
		logger:    logger,
	}
}

// GetVideo handles GET /api/v1/videos/:id
func (h *VideoHandler) GetVideo(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "id is required",
			Code:  "MISSING_ID",
		})
	}

	rec, err := h.scoring.GetVideo(c.Context(), id)
	if err != nil {
		h.logger.Error("get video failed", zap.String("id", id), zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "failed to load video",
			Code:  "INTERNAL_ERROR",
		})
	}

	if rec == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "video not found",
			Code:  "NOT_FOUND",
		})
	}

	return c.JSON(dto.FromVideoRecord(id, rec))
}

// UpdateMetadata handles PUT /api/v1/videos/:id/metadata
func (h *VideoHandler) UpdateMetadata(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "id is required",
			Code:  "MISSING_ID",
		})
	}

	var req dto.UpdateMetadataRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_BODY",
		})
	}

	if err := h.validator.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: err,
		})
	}

	if err := h.scoring.UpdateMetadata(c.Context(), req.ToDomain(id)); err != nil {
		h.logger.Error("metadata update failed", zap.String("id", id), zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "metadata update failed",
			Code:  "INTERNAL_ERROR",
		})
	}

	rec, err := h.scoring.GetVideo(c.Context(), id)
	if err != nil || rec == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}

	return c.JSON(dto.FromVideoRecord(id, rec))
}

// RecordPlay handles POST /api/v1/videos/:id/plays
func (h *VideoHandler) RecordPlay(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "id is required",
			Code:  "MISSING_ID",
		})
	}

	var req dto.PlayEventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_BODY",
		})
	}

	if err := h.validator.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: err,
		})
	}

	slot := domain.SlotName(req.TimeSlot)
	if slot == "" {
		slot = h.ranking.CurrentSlot()
	}

	known, err := h.scoring.RecordPlayEvent(c.Context(), id, slot, req.ToDomain())
	if err != nil {
		h.logger.Error("play event failed", zap.String("id", id), zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "play event failed",
			Code:  "INTERNAL_ERROR",
		})
	}

	if !known {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "video not found",
			Code:  "NOT_FOUND",
		})
	}

	rec, err := h.scoring.GetVideo(c.Context(), id)
	if err != nil || rec == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}

	return c.JSON(dto.FromVideoRecord(id, rec))
}

// RecordPlaylistSample handles POST /api/v1/playlists/:id/samples
func (h *VideoHandler) RecordPlaylistSample(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "id is required",
			Code:  "MISSING_ID",
		})
	}

	var req dto.PlaylistSampleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_BODY",
		})
	}

	if err := h.validator.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: err,
		})
	}

	if err := h.scoring.RecordPlaylistSample(c.Context(), id, req.Name, req.ViewerChange); err != nil {
		h.logger.Error("playlist sample failed", zap.String("id", id), zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "playlist sample failed",
			Code:  "INTERNAL_ERROR",
		})
	}

	return c.SendStatus(fiber.StatusAccepted)
}
