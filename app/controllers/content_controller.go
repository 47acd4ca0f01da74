package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/LenaVoss/lenavoss-web/app/repository"
)

// Public read endpoints feeding the site frontend.

func HandleEventList(c *fiber.Ctx) error {
	events, err := repository.GetGlobalRepositories().Event.ListActive()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "failed to load events")
	}
	return c.JSON(fiber.Map{"events": events})
}

func HandleProductList(c *fiber.Ctx) error {
	products, err := repository.GetGlobalRepositories().Product.ListActive()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "failed to load products")
	}
	return c.JSON(fiber.Map{"products": products})
}

func HandleGalleryList(c *fiber.Ctx) error {
	images, err := repository.GetGlobalRepositories().Gallery.List()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "failed to load gallery")
	}
	return c.JSON(fiber.Map{"images": images})
}

func HandlePressKit(c *fiber.Ctx) error {
	images, err := repository.GetGlobalRepositories().Gallery.ListPressKit()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "failed to load press kit")
	}
	return c.JSON(fiber.Map{"images": images})
}
