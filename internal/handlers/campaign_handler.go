package handlers

import (
	"errors"

	"github.com/campuspulse/mental-pulse-backend/internal/authn"
	"github.com/campuspulse/mental-pulse-backend/internal/dto"
	"github.com/campuspulse/mental-pulse-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CampaignHandler struct {
	campaignService *services.CampaignService
}

func NewCampaignHandler(campaignService *services.CampaignService) *CampaignHandler {
	return &CampaignHandler{campaignService: campaignService}
}

func (h *CampaignHandler) CreateCampaign(c *fiber.Ctx) error {
	var req dto.CreateCampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if details := dto.Validate(&req); details != nil {
		return validationJSON(c, details)
	}

	campaign, err := h.campaignService.CreateCampaign(&req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidDate) {
			return errorJSON(c, fiber.StatusBadRequest, err.Error())
		}
		return errorJSON(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Campaign created successfully",
		"campaign": campaign,
	})
}

func (h *CampaignHandler) ListCampaigns(c *fiber.Ctx) error {
	user, err := authn.CurrentUser(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	filters := dto.CampaignFilters{
		Status:     c.Query("status"),
		Department: c.Query("department"),
	}

	resp, err := h.campaignService.ListCampaigns(user.IsAdmin(), filters, c.QueryInt("page", 1), c.QueryInt("limit", 10))
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(resp)
}

func (h *CampaignHandler) UpdateCampaign(c *fiber.Ctx) error {
	campaignID, err := uuid.Parse(c.Params("campaignId"))
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid campaign ID")
	}

	var req dto.UpdateCampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if details := dto.Validate(&req); details != nil {
		return validationJSON(c, details)
	}

	campaign, err := h.campaignService.UpdateCampaign(campaignID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCampaignNotFound):
			return errorJSON(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrInvalidDate):
			return errorJSON(c, fiber.StatusBadRequest, err.Error())
		default:
			return errorJSON(c, fiber.StatusInternalServerError, "Internal server error")
		}
	}

	return c.JSON(fiber.Map{
		"message":  "Campaign updated successfully",
		"campaign": campaign,
	})
}
