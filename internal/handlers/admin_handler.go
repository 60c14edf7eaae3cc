package handlers

import (
	"github.com/filipinasabroad/abroad-backend/internal/dto"
	"github.com/filipinasabroad/abroad-backend/internal/export"
	"github.com/filipinasabroad/abroad-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// AdminHandler serves the dashboard endpoints. Routes mounting it must be
// wrapped in the admin middleware; handlers here do not re-check the role.
type AdminHandler struct {
	applications *services.ApplicationService
	profiles     *services.ProfileService
}

func NewAdminHandler(applications *services.ApplicationService, profiles *services.ProfileService) *AdminHandler {
	return &AdminHandler{applications: applications, profiles: profiles}
}

func (h *AdminHandler) ListApplications(c *fiber.Ctx) error {
	filter := dto.ApplicationFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", 20),
	}
	if raw := c.Query("user_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid user_id"})
		}
		filter.UserID = &id
	}

	apps, pagination, counts, err := h.applications.AdminList(&filter)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"applications":  apps,
		"pagination":    pagination,
		"status_counts": counts,
	})
}

func (h *AdminHandler) UpdateApplication(c *fiber.Ctx) error {
	var req dto.UpdateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}
	if req.ApplicationID == uuid.Nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "application_id is required"})
	}

	app, err := h.applications.AdminUpdate(&req)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"application": app})
}

// DownloadApplication renders any user's application; the paywall does not
// apply to dashboard exports.
func (h *AdminHandler) DownloadApplication(c *fiber.Ctx) error {
	applicationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid application ID"})
	}

	app, err := h.applications.Get(applicationID)
	if err != nil {
		return fail(c, err)
	}

	html, err := export.RenderApplication(app)
	if err != nil {
		return fail(c, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+export.Filename("application", app.Program.Title)+`"`)
	return c.Send(html)
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, pagination, stats, err := h.profiles.AdminList(
		c.Query("search"),
		c.QueryInt("page", 1),
		c.QueryInt("limit", 20),
	)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"users":      users,
		"pagination": pagination,
		"stats":      stats,
	})
}

func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	var req dto.AdminUpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}
	if req.UserProfileID == uuid.Nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "user_profile_id is required"})
	}

	profile, err := h.profiles.AdminUpdate(&req)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"user": profile})
}
