package controllers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/LenaVoss/lenavoss-web/app/models"
	"github.com/LenaVoss/lenavoss-web/app/repository"
	"github.com/LenaVoss/lenavoss-web/internal/pkg/audit"
	"github.com/LenaVoss/lenavoss-web/internal/pkg/usercontext"
)

// HandleAdminSubscriberList returns a page of subscribers.
func HandleAdminSubscriberList(c *fiber.Ctx) error {
	offset, limit := parsePagination(c)
	repos := repository.GetGlobalRepositories()

	subs, err := repos.Subscriber.List(offset, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "failed to load subscribers")
	}
	total, err := repos.Subscriber.Count()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "failed to count subscribers")
	}

	return c.JSON(fiber.Map{"subscribers": subs, "total": total})
}

// HandleAdminSubscriberExport streams the full subscriber list as CSV.
// Exports are audited because they move personal data out of the system.
func HandleAdminSubscriberExport(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	var all []models.Subscriber
	const page = 500
	for offset := 0; ; offset += page {
		batch, err := repos.Subscriber.List(offset, page)
		if err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_error", "failed to load subscribers")
		}
		all = append(all, batch...)
		if len(batch) < page {
			break
		}
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	_ = w.Write([]string{"email", "active", "event_alerts", "country", "city", "joined_at", "unsubscribed_at"})
	for _, sub := range all {
		country, city := "", ""
		if sub.Country != nil {
			country = *sub.Country
		}
		if sub.City != nil {
			city = *sub.City
		}
		unsubscribedAt := ""
		if sub.UnsubscribedAt != nil {
			unsubscribedAt = sub.UnsubscribedAt.Format(time.RFC3339)
		}
		_ = w.Write([]string{
			sub.Email,
			strconv.FormatBool(sub.IsActive),
			strconv.FormatBool(sub.ReceiveEventAlerts),
			country,
			city,
			sub.JoinedAt.Format(time.RFC3339),
			unsubscribedAt,
		})
	}
	w.Flush()

	getAudit().Record(usercontext.GetUsername(c), audit.ActionSubscriberExport,
		fmt.Sprintf("exported %d subscribers as CSV", len(all)),
		append(auditCtx(c), audit.WithLevel(models.LOG_LEVEL_WARN))...)

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="subscribers.csv"`)
	return c.SendString(sb.String())
}

// HandleAdminSubscriberDelete hard-deletes one subscriber.
func HandleAdminSubscriberDelete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_id", "invalid subscriber id")
	}

	repos := repository.GetGlobalRepositories()
	sub, err := repos.Subscriber.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "subscriber not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "failed to load subscriber")
	}

	if err := repos.Subscriber.Delete(id); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "failed to delete subscriber")
	}

	getAudit().Record(usercontext.GetUsername(c), audit.ActionSubscriberDelete,
		fmt.Sprintf("hard-deleted subscriber %d (%s)", sub.ID, sub.Email),
		append(auditCtx(c), audit.WithLevel(models.LOG_LEVEL_WARN))...)

	return c.JSON(fiber.Map{"success": true})
}
