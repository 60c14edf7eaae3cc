package handlers

import (
	"github.com/filipinasabroad/abroad-backend/internal/config"
	"github.com/filipinasabroad/abroad-backend/internal/dto"
	"github.com/filipinasabroad/abroad-backend/internal/export"
	"github.com/filipinasabroad/abroad-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ApplicationHandler struct {
	applications *services.ApplicationService
	profiles     *services.ProfileService
	cfg          *config.Config
}

func NewApplicationHandler(applications *services.ApplicationService, profiles *services.ProfileService, cfg *config.Config) *ApplicationHandler {
	return &ApplicationHandler{applications: applications, profiles: profiles, cfg: cfg}
}

func (h *ApplicationHandler) List(c *fiber.Ctx) error {
	profile, err := currentProfile(h.profiles, c)
	if err != nil {
		return fail(c, err)
	}

	apps, err := h.applications.ListForUser(profile.ID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"applications": apps})
}

// Save upserts an application for (caller, program); a right-swiped or
// explicitly saved program lands here with status SAVED.
func (h *ApplicationHandler) Save(c *fiber.Ctx) error {
	profile, err := currentProfile(h.profiles, c)
	if err != nil {
		return fail(c, err)
	}

	var req dto.SaveApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}
	if req.ProgramID == uuid.Nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "program_id is required"})
	}

	app, err := h.applications.Save(profile.ID, &req)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"application": app})
}

func (h *ApplicationHandler) Update(c *fiber.Ctx) error {
	profile, err := currentProfile(h.profiles, c)
	if err != nil {
		return fail(c, err)
	}

	var req dto.UpdateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}
	if req.ApplicationID == uuid.Nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "application_id is required"})
	}

	app, err := h.applications.Update(profile.ID, &req)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"application": app})
}

func (h *ApplicationHandler) Delete(c *fiber.Ctx) error {
	profile, err := currentProfile(h.profiles, c)
	if err != nil {
		return fail(c, err)
	}

	applicationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid application ID"})
	}

	if err := h.applications.Delete(profile.ID, applicationID); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}

// Download renders the caller's application as an HTML document, gated by the
// paywall for non-admin users.
func (h *ApplicationHandler) Download(c *fiber.Ctx) error {
	profile, err := currentProfile(h.profiles, c)
	if err != nil {
		return fail(c, err)
	}

	applicationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid application ID"})
	}

	app, err := h.applications.GetOwned(profile.ID, applicationID)
	if err != nil {
		return fail(c, err)
	}

	if !services.HasDownloadAccess(profile) {
		return c.Status(fiber.StatusPaymentRequired).JSON(dto.PaymentRequiredResponse{
			Error:           true,
			Message:         "Please purchase a download or upgrade to Premium to download your application.",
			RequiresPayment: true,
			Prices:          h.prices(),
		})
	}

	html, err := export.RenderApplication(app)
	if err != nil {
		return fail(c, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+export.Filename("my-application", app.Program.Title)+`"`)
	return c.Send(html)
}

// CheckAccess reports download access without performing the download.
func (h *ApplicationHandler) CheckAccess(c *fiber.Ctx) error {
	profile, err := currentProfile(h.profiles, c)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(dto.AccessResponse{
		HasAccess:          services.HasDownloadAccess(profile),
		SubscriptionStatus: profile.SubscriptionStatus,
		Prices:             h.prices(),
	})
}

func (h *ApplicationHandler) prices() dto.Prices {
	return dto.Prices{
		SingleDownload: h.cfg.PriceSingleDownload,
		Premium:        h.cfg.PricePremium,
	}
}
