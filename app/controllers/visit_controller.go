package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/LenaVoss/lenavoss-web/app/models"
)

// HandleTrackVisit records an anonymized page visit. The endpoint
// always answers 200; tracking must never break the public page.
func HandleTrackVisit(c *fiber.Ctx) error {
	if !models.GetAppSettings().VisitTrackingActive {
		return c.JSON(fiber.Map{"success": true})
	}

	ip := GetClientIP(c)
	userAgent := c.Get("User-Agent")

	// Geolocation can take up to its full timeout; do not make the
	// visitor wait on it.
	go getTracker().RecordVisit(ip, userAgent)

	return c.JSON(fiber.Map{"success": true})
}
