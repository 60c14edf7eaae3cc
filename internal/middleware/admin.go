package middleware

import (
	"github.com/filipinasabroad/abroad-backend/internal/config"
	"github.com/filipinasabroad/abroad-backend/internal/dto"
	"github.com/filipinasabroad/abroad-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminRequired gates admin-only routes. It accepts either an email on the
// configured allow-list or a profile holding the ADMIN role. Role failures
// are 403, distinct from the ownership-as-404 convention in the services.
func AdminRequired(db *gorm.DB, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := UserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		if cfg.IsAdminEmail(UserEmail(c)) {
			return c.Next()
		}

		var profile models.UserProfile
		if err := db.Where("user_id = ?", userID).First(&profile).Error; err == nil && profile.IsAdmin() {
			return c.Next()
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Admin access required",
		})
	}
}
