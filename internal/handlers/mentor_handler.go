package handlers

import (
	"errors"

	"github.com/campuspulse/mental-pulse-backend/internal/authn"
	"github.com/campuspulse/mental-pulse-backend/internal/dto"
	"github.com/campuspulse/mental-pulse-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type MentorHandler struct {
	mentorService *services.MentorService
}

func NewMentorHandler(mentorService *services.MentorService) *MentorHandler {
	return &MentorHandler{mentorService: mentorService}
}

func (h *MentorHandler) ListMentors(c *fiber.Ctx) error {
	filters := dto.MentorFilters{
		Department: c.Query("department"),
		Specialty:  c.Query("specialty"),
		Available:  c.Query("available"),
	}

	resp, err := h.mentorService.ListMentors(filters, c.QueryInt("page", 1), c.QueryInt("limit", 10))
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(resp)
}

func (h *MentorHandler) GetMentor(c *fiber.Ctx) error {
	user, err := authn.CurrentUser(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	mentorID, err := uuid.Parse(c.Params("mentorId"))
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid mentor ID")
	}

	mentor, err := h.mentorService.GetMentor(mentorID, user.ID)
	if err != nil {
		if errors.Is(err, services.ErrMentorNotFound) {
			return errorJSON(c, fiber.StatusNotFound, err.Error())
		}
		return errorJSON(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(fiber.Map{"mentor": mentor})
}

func (h *MentorHandler) CreateProfile(c *fiber.Ctx) error {
	user, err := authn.CurrentUser(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.MentorProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if details := dto.Validate(&req); details != nil {
		return validationJSON(c, details)
	}

	profile, err := h.mentorService.CreateProfile(user, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotMentor):
			return errorJSON(c, fiber.StatusForbidden, err.Error())
		case errors.Is(err, services.ErrProfileExists):
			return errorJSON(c, fiber.StatusConflict, err.Error())
		default:
			return errorJSON(c, fiber.StatusInternalServerError, "Internal server error")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Mentor profile created successfully",
		"profile": profile,
	})
}

func (h *MentorHandler) UpdateProfile(c *fiber.Ctx) error {
	user, err := authn.CurrentUser(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.UpdateMentorProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if details := dto.Validate(&req); details != nil {
		return validationJSON(c, details)
	}

	profile, err := h.mentorService.UpdateProfile(user, &req)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			return errorJSON(c, fiber.StatusNotFound, err.Error())
		}
		return errorJSON(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(fiber.Map{
		"message": "Mentor profile updated successfully",
		"profile": profile,
	})
}
