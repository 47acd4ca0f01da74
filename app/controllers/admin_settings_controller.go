package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/LenaVoss/lenavoss-web/app/models"
	"github.com/LenaVoss/lenavoss-web/internal/pkg/audit"
	"github.com/LenaVoss/lenavoss-web/internal/pkg/database"
	"github.com/LenaVoss/lenavoss-web/internal/pkg/usercontext"
)

// HandleAdminSettingsGet returns the current site and notification settings.
func HandleAdminSettingsGet(c *fiber.Ctx) error {
	return c.JSON(models.GetAppSettings())
}

// HandleAdminSettingsUpdate validates and persists new settings. The
// in-memory copy is swapped atomically on success.
func HandleAdminSettingsUpdate(c *fiber.Ctx) error {
	var settings models.AppSettings
	if err := c.BodyParser(&settings); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_request", "could not parse request body")
	}

	if err := models.SaveSettings(database.GetDB(), &settings); err != nil {
		log.Printf("settings update failed: %v", err)
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}

	getAudit().Record(usercontext.GetUsername(c), audit.ActionSettingsUpdate,
		"updated site settings", auditCtx(c)...)

	return c.JSON(models.GetAppSettings())
}
