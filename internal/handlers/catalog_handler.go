package handlers

import (
	"github.com/filipinasabroad/abroad-backend/internal/dto"
	"github.com/filipinasabroad/abroad-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	catalog  *services.CatalogService
	profiles *services.ProfileService
}

func NewCatalogHandler(catalog *services.CatalogService, profiles *services.ProfileService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, profiles: profiles}
}

func (h *CatalogHandler) ListPrograms(c *fiber.Ctx) error {
	programs, pagination, err := h.catalog.ListPrograms(
		c.Query("country"),
		c.Query("degree_level"),
		c.QueryInt("page", 1),
		c.QueryInt("limit", 20),
	)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"programs":   programs,
		"pagination": pagination,
	})
}

func (h *CatalogHandler) ListAccommodations(c *fiber.Ctx) error {
	items, err := h.catalog.ListAccommodations(c.Query("city"), c.Query("country"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"accommodations": items})
}

func (h *CatalogHandler) ListVisaRequirements(c *fiber.Ctx) error {
	nationality := c.Query("nationality")
	if nationality == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "nationality is required"})
	}

	items, err := h.catalog.ListVisaRequirements(nationality)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"visa_requirements": items})
}

func (h *CatalogHandler) CreateReferral(c *fiber.Ctx) error {
	profile, err := currentProfile(h.profiles, c)
	if err != nil {
		return fail(c, err)
	}

	var req dto.ReferralRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	referral, err := h.catalog.CreateReferral(profile.ID, req.AccommodationID)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"referral": referral})
}

func (h *CatalogHandler) ListReferrals(c *fiber.Ctx) error {
	profile, err := currentProfile(h.profiles, c)
	if err != nil {
		return fail(c, err)
	}

	items, err := h.catalog.ListReferrals(profile.ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"referrals": items})
}
