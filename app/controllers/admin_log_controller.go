package controllers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/LenaVoss/lenavoss-web/app/repository"
	"github.com/LenaVoss/lenavoss-web/internal/pkg/usercontext"
)

// HandleAdminLogList returns a filtered page of audit entries.
// Filters: level, action (substring), user (substring), from, to
// (RFC 3339), offset, limit.
func HandleAdminLogList(c *fiber.Ctx) error {
	offset, limit := parsePagination(c)
	filter := repository.LogFilter{
		Level:          c.Query("level"),
		ActionContains: c.Query("action"),
		UserContains:   c.Query("user"),
		Offset:         offset,
		Limit:          limit,
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			filter.From = &t
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			filter.To = &t
		}
	}

	entries, total, err := getAudit().List(filter)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "failed to load logs")
	}

	return c.JSON(fiber.Map{"logs": entries, "total": total})
}

// HandleAdminLogCounts returns the per-level entry counts.
func HandleAdminLogCounts(c *fiber.Ctx) error {
	counts, err := getAudit().CountByLevel()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "failed to count logs")
	}
	return c.JSON(counts)
}

// HandleAdminLogClear wipes the audit log, either entirely or only
// entries older than ?older_than_days=N. The wipe itself is recorded.
func HandleAdminLogClear(c *fiber.Ctx) error {
	username := usercontext.GetUsername(c)

	var (
		deleted int64
		err     error
	)
	if raw := c.Query("older_than_days"); raw != "" {
		days, convErr := strconv.Atoi(raw)
		if convErr != nil || days < 1 {
			return jsonError(c, fiber.StatusBadRequest, "invalid_request", "older_than_days must be a positive number")
		}
		deleted, err = getAudit().ClearOlderThan(username, days)
	} else {
		deleted, err = getAudit().ClearAll(username)
	}
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "failed to clear logs")
	}

	return c.JSON(fiber.Map{"success": true, "deleted": deleted})
}
