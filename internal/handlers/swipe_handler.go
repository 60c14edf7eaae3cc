package handlers

import (
	"github.com/filipinasabroad/abroad-backend/internal/dto"
	"github.com/filipinasabroad/abroad-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SwipeHandler struct {
	swipes *services.SwipeService
}

func NewSwipeHandler(swipes *services.SwipeService) *SwipeHandler {
	return &SwipeHandler{swipes: swipes}
}

// Record handles guest swipes. Identity is the X-Device-ID header; a profile
// is created on the fly for unseen devices.
func (h *SwipeHandler) Record(c *fiber.Ctx) error {
	deviceID := c.Get("X-Device-ID")
	if deviceID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "X-Device-ID header is required"})
	}

	var req dto.SwipeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}
	if req.ProgramID == uuid.Nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "program_id is required"})
	}

	swipe, err := h.swipes.Record(deviceID, req.ProgramID, req.Direction)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"ok": true, "swipe": swipe})
}
