package handlers

import (
	"errors"

	"github.com/campuspulse/mental-pulse-backend/internal/authn"
	"github.com/campuspulse/mental-pulse-backend/internal/dto"
	"github.com/campuspulse/mental-pulse-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ConnectionHandler struct {
	connectionService *services.ConnectionService
}

func NewConnectionHandler(connectionService *services.ConnectionService) *ConnectionHandler {
	return &ConnectionHandler{connectionService: connectionService}
}

func (h *ConnectionHandler) RequestConnection(c *fiber.Ctx) error {
	user, err := authn.CurrentUser(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.ConnectionRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if details := dto.Validate(&req); details != nil {
		return validationJSON(c, details)
	}

	mentorID, err := uuid.Parse(req.MentorID)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid mentor_id")
	}

	connection, err := h.connectionService.RequestConnection(user, mentorID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOnlyStudents):
			return errorJSON(c, fiber.StatusForbidden, err.Error())
		case errors.Is(err, services.ErrMentorNotFound):
			return errorJSON(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrMentorUnavailable):
			return errorJSON(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrConnectionExists):
			return errorJSON(c, fiber.StatusConflict, err.Error())
		default:
			return errorJSON(c, fiber.StatusInternalServerError, "Internal server error")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Connection request sent successfully",
		"connection": connection,
	})
}

func (h *ConnectionHandler) ListConnections(c *fiber.Ctx) error {
	user, err := authn.CurrentUser(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	resp, err := h.connectionService.ListConnections(user, c.Query("status"), c.QueryInt("page", 1), c.QueryInt("limit", 10))
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(resp)
}

func (h *ConnectionHandler) GetConnection(c *fiber.Ctx) error {
	user, err := authn.CurrentUser(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	connectionID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid connection ID")
	}

	connection, err := h.connectionService.GetConnection(user, connectionID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrConnectionNotFound):
			return errorJSON(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrConnectionForbidden):
			return errorJSON(c, fiber.StatusForbidden, err.Error())
		default:
			return errorJSON(c, fiber.StatusInternalServerError, "Internal server error")
		}
	}

	return c.JSON(fiber.Map{"connection": connection})
}

func (h *ConnectionHandler) DecideConnection(c *fiber.Ctx) error {
	user, err := authn.CurrentUser(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	connectionID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid connection ID")
	}

	var req dto.UpdateConnectionRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if details := dto.Validate(&req); details != nil {
		return validationJSON(c, details)
	}

	connection, err := h.connectionService.Decide(user, connectionID, req.Action)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrConnectionNotFound):
			return errorJSON(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrNotConnectionMentor):
			return errorJSON(c, fiber.StatusForbidden, err.Error())
		case errors.Is(err, services.ErrConnectionSettled):
			return errorJSON(c, fiber.StatusBadRequest, err.Error())
		default:
			return errorJSON(c, fiber.StatusInternalServerError, "Internal server error")
		}
	}

	return c.JSON(fiber.Map{
		"message":    "Connection request " + req.Action + "ed successfully",
		"connection": connection,
	})
}
