package handlers

import (
	"errors"

	"github.com/campuspulse/mental-pulse-backend/internal/authn"
	"github.com/campuspulse/mental-pulse-backend/internal/dto"
	"github.com/campuspulse/mental-pulse-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CrisisHandler struct {
	crisisService *services.CrisisService
}

func NewCrisisHandler(crisisService *services.CrisisService) *CrisisHandler {
	return &CrisisHandler{crisisService: crisisService}
}

// CreateAlert accepts an alert from any authenticated active user and echoes
// the stored record back unredacted.
func (h *CrisisHandler) CreateAlert(c *fiber.Ctx) error {
	user, err := authn.CurrentUser(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.CreateAlertRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if details := dto.Validate(&req); details != nil {
		return validationJSON(c, details)
	}

	alert, err := h.crisisService.CreateAlert(user, &req)
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Crisis alert created successfully",
		"alert": dto.AlertResponse{
			ID:            alert.ID,
			AreaOfConcern: alert.AreaOfConcern,
			Description:   alert.Description,
			Timestamp:     alert.Timestamp,
			IsResolved:    alert.IsResolved,
			ResolvedAt:    alert.ResolvedAt,
		},
	})
}

// ListAlerts is the admin triage view: filtered page plus global statistics.
func (h *CrisisHandler) ListAlerts(c *fiber.Ctx) error {
	resp, err := h.crisisService.ListAlerts(
		c.Query("status"),
		c.QueryInt("page", 1),
		c.QueryInt("limit", 20),
	)
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(resp)
}

// UpdateAlert resolves or reopens an alert. The acting admin's name is echoed
// in the response but never stored.
func (h *CrisisHandler) UpdateAlert(c *fiber.Ctx) error {
	admin, err := authn.CurrentUser(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.UpdateAlertRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if details := dto.Validate(&req); details != nil {
		return validationJSON(c, details)
	}

	alertID, err := uuid.Parse(req.AlertID)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid alert_id")
	}

	alert, err := h.crisisService.SetResolved(alertID, *req.IsResolved)
	if err != nil {
		if errors.Is(err, services.ErrAlertNotFound) {
			return errorJSON(c, fiber.StatusNotFound, err.Error())
		}
		return errorJSON(c, fiber.StatusInternalServerError, "Internal server error")
	}

	message := "Crisis alert reopened successfully"
	if alert.IsResolved {
		message = "Crisis alert resolved successfully"
	}

	return c.JSON(dto.UpdateAlertResponse{
		Message: message,
		Alert: dto.ResolvedAlertView{
			ID:            alert.ID,
			AreaOfConcern: alert.AreaOfConcern,
			Description:   alert.Description,
			IsResolved:    alert.IsResolved,
			ResolvedAt:    alert.ResolvedAt,
			ResolvedBy:    admin.FullName,
		},
	})
}
