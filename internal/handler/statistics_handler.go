package handler

import (
	"go-stock-management/internal/service"

	"github.com/gofiber/fiber/v2"
)

type StatisticsHandler struct {
	service service.StatisticsService
}

func NewStatisticsHandler(s service.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{service: s}
}

func (h *StatisticsHandler) GetStatistics(c *fiber.Ctx) error {
	stats, err := h.service.GetStatistics(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}
