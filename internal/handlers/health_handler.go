package handlers

import (
	"time"

	"github.com/campuspulse/mental-pulse-backend/internal/database"
	"github.com/campuspulse/mental-pulse-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

const version = "1.0.0"

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Check reports service liveness. A failing database ping degrades the
// payload and the status code; the endpoint itself stays reachable.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	status := "ok"
	dbStatus := "ok"
	code := fiber.StatusOK
	if err := database.Ping(); err != nil {
		status = "degraded"
		dbStatus = "unhealthy: " + err.Error()
		code = fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(dto.HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
		Version:   version,
	})
}
