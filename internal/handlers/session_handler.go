package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/taskmate/taskmate-backend/internal/dto"
	"github.com/taskmate/taskmate-backend/internal/services"
	"github.com/taskmate/taskmate-backend/internal/session"
)

type SessionHandler struct {
	sessions *services.SessionService
}

func NewSessionHandler(sessions *services.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Describe reports the gate state for the caller. The route is public: a
// request without a valid token is simply unauthenticated, not an error.
func (h *SessionHandler) Describe(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		userID = uuid.Nil
	}

	resp, err := h.sessions.Describe(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to resolve session state",
		})
	}

	return c.JSON(resp)
}
