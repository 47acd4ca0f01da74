package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/LenaVoss/lenavoss-web/app/repository"
)

// HandleAdminDashboard aggregates the numbers shown on the admin
// landing page.
func HandleAdminDashboard(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	subscribers, err := repos.Subscriber.Count()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "failed to load dashboard")
	}
	messages, err := repos.Message.Count()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "failed to load dashboard")
	}
	unread, err := repos.Message.CountUnread()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "failed to load dashboard")
	}
	events, err := repos.Event.Count()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "failed to load dashboard")
	}
	visits, err := repos.VisitorLog.Count()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "failed to load dashboard")
	}

	return c.JSON(fiber.Map{
		"subscribers":     subscribers,
		"messages":        messages,
		"unread_messages": unread,
		"events":          events,
		"visits":          visits,
	})
}

// HandleAdminVisitorStats returns distinct-visitor aggregates grouped by
// location. Defaults to the last 30 days; from/to accept RFC 3339.
func HandleAdminVisitorStats(c *fiber.Ctx) error {
	end := time.Now()
	start := end.AddDate(0, 0, -30)

	if raw := c.Query("from"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			start = t
		}
	}
	if raw := c.Query("to"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			end = t
		}
	}

	stats, err := repository.GetGlobalRepositories().VisitorLog.DistinctVisitorStats(start, end)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "failed to load visitor stats")
	}

	return c.JSON(fiber.Map{
		"from":  start,
		"to":    end,
		"stats": stats,
	})
}
