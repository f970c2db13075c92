package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"smart-queue-service/internal/app/service"
	"smart-queue-service/internal/transport/httpserver/dto"
)

// AdminHandler handles admin-related HTTP requests.
type AdminHandler struct {
	refreshService *service.RefreshService
	logger         *zap.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(refreshSvc *service.RefreshService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		refreshService: refreshSvc,
		logger:         logger,
	}
}

// RefreshAll handles POST /api/v1/admin/refresh
func (h *AdminHandler) RefreshAll(c *fiber.Ctx) error {
	h.logger.Info("manual refresh triggered")

	results := h.refreshService.RefreshAll(c.Context())

	return c.JSON(dto.FromRefreshResults(results))
}

// RefreshSource handles POST /api/v1/admin/refresh/:source
func (h *AdminHandler) RefreshSource(c *fiber.Ctx) error {
	sourceName := c.Params("source")
	if sourceName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "source name is required",
			Code:  "MISSING_SOURCE",
		})
	}

	h.logger.Info("manual source refresh triggered", zap.String("source", sourceName))

	result, err := h.refreshService.RefreshSource(c.Context(), sourceName)
	if err != nil {
		if result.Source == "" {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: "source not found",
				Code:  "SOURCE_NOT_FOUND",
			})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
			Code:  "REFRESH_FAILED",
		})
	}

	return c.JSON(dto.RefreshResultResponse{
		Source:   result.Source,
		Videos:   result.Videos,
		Duration: result.Duration.String(),
	})
}

// GetSources handles GET /api/v1/admin/sources
func (h *AdminHandler) GetSources(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"sources": h.refreshService.SourceNames(),
		"healthy": h.refreshService.HealthySources(c.Context()),
	})
}
