package handlers

import (
	"github.com/campuspulse/mental-pulse-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	analyticsService *services.AnalyticsService
}

func NewAdminHandler(analyticsService *services.AnalyticsService) *AdminHandler {
	return &AdminHandler{analyticsService: analyticsService}
}

func (h *AdminHandler) Overview(c *fiber.Ctx) error {
	resp, err := h.analyticsService.Overview()
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(resp)
}

func (h *AdminHandler) Heatmap(c *fiber.Ctx) error {
	resp, err := h.analyticsService.Heatmap(c.QueryInt("days", 7))
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(resp)
}
