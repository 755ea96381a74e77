package handlers

import (
	"github.com/campuspulse/mental-pulse-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

func errorJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: message})
}

func validationJSON(c *fiber.Ctx, details []dto.FieldError) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{
		Error: true, Message: "Validation failed", Details: details,
	})
}
