package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bursa-register/internal/domain"
)

// CatalogHandler serves the static picker data.
type CatalogHandler struct {
	variant domain.Variant
}

// NewCatalogHandler creates a catalog handler for the configured flow.
func NewCatalogHandler(variant domain.Variant) *CatalogHandler {
	return &CatalogHandler{variant: variant}
}

// Categories lists the business categories.
func (h *CatalogHandler) Categories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"categories": domain.Categories})
}

// PriceTiers lists the price tiers in ascending order.
func (h *CatalogHandler) PriceTiers(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"priceTiers": domain.PriceTiers})
}

// DefaultOperatingHours returns the week a new draft starts with.
func (h *CatalogHandler) DefaultOperatingHours(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"operatingHours": domain.DefaultOperatingHours()})
}

// Variant describes the active flow.
func (h *CatalogHandler) Variant(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"variant": h.variant})
}
