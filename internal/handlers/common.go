package handlers

import (
	"errors"

	"github.com/filipinasabroad/abroad-backend/internal/dto"
	"github.com/filipinasabroad/abroad-backend/internal/middleware"
	"github.com/filipinasabroad/abroad-backend/internal/models"
	"github.com/filipinasabroad/abroad-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// currentProfile resolves the caller's UserProfile from the JWT, creating the
// profile on first contact the same way the auth callbacks do.
func currentProfile(profiles *services.ProfileService, c *fiber.Ctx) (*models.UserProfile, error) {
	userID, err := middleware.UserID(c)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	profile, err := profiles.EnsureForUser(userID, middleware.UserEmail(c), "")
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// fail translates service errors into the response taxonomy. Ownership
// failures arrive as ErrNotFound and stay 404.
func fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: "Not found"})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: true, Message: "Forbidden"})
	case errors.Is(err, services.ErrInvalid):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
	case errors.Is(err, services.ErrUpstream):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Error: true, Message: "The assistant is temporarily unavailable. Please try again."})
	default:
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Error: true, Message: fe.Message})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Internal server error"})
	}
}
