package handlers

import (
	"errors"

	"github.com/campuspulse/mental-pulse-backend/internal/authn"
	"github.com/campuspulse/mental-pulse-backend/internal/dto"
	"github.com/campuspulse/mental-pulse-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ChatHandler struct {
	chatService *services.ChatService
}

func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	user, err := authn.CurrentUser(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if details := dto.Validate(&req); details != nil {
		return validationJSON(c, details)
	}

	resp, err := h.chatService.SendMessage(c.Context(), user.ID, &req)
	if err != nil {
		var rejected *services.ContentRejectedError
		if errors.As(err, &rejected) {
			return errorJSON(c, fiber.StatusBadRequest, rejected.Message)
		}
		return errorJSON(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(resp)
}

func (h *ChatHandler) ListSessions(c *fiber.Ctx) error {
	user, err := authn.CurrentUser(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	sessionID, err := optionalSessionID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid session_id")
	}

	resp, err := h.chatService.ListSessions(user.ID, sessionID)
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(resp)
}

func (h *ChatHandler) ClearSessions(c *fiber.Ctx) error {
	user, err := authn.CurrentUser(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	sessionID, err := optionalSessionID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid session_id")
	}

	if err := h.chatService.ClearSessions(user.ID, sessionID); err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(fiber.Map{"message": "Chat history cleared successfully"})
}

func optionalSessionID(c *fiber.Ctx) (*uuid.UUID, error) {
	raw := c.Query("session_id")
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
