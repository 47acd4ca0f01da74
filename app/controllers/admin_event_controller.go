package controllers

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/LenaVoss/lenavoss-web/app/models"
	"github.com/LenaVoss/lenavoss-web/app/repository"
	"github.com/LenaVoss/lenavoss-web/internal/pkg/audit"
	"github.com/LenaVoss/lenavoss-web/internal/pkg/notify"
	"github.com/LenaVoss/lenavoss-web/internal/pkg/usercontext"
)

type eventRequest struct {
	Title        string    `json:"title" form:"title"`
	Description  string    `json:"description" form:"description"`
	Location     string    `json:"location" form:"location"`
	Date         time.Time `json:"date" form:"date"`
	TicketURL    string    `json:"ticket_url" form:"ticket_url"`
	IsSoldOut    bool      `json:"is_sold_out" form:"is_sold_out"`
	AutoSoldOut  bool      `json:"auto_sold_out" form:"auto_sold_out"`
	AutoReminder bool      `json:"auto_reminder" form:"auto_reminder"`
	IsActive     bool      `json:"is_active" form:"is_active"`
}

func (r *eventRequest) apply(event *models.Event) {
	event.Title = r.Title
	event.Description = r.Description
	event.Location = r.Location
	event.Date = r.Date
	event.TicketURL = r.TicketURL
	event.IsSoldOut = r.IsSoldOut
	event.AutoSoldOut = r.AutoSoldOut
	event.AutoReminder = r.AutoReminder
	event.IsActive = r.IsActive
}

func auditCtx(c *fiber.Ctx) []audit.Option {
	return []audit.Option{
		audit.WithActor(usercontext.GetUserID(c)),
		audit.WithRequest(GetClientIP(c), c.Get("User-Agent")),
	}
}

// HandleAdminEventList returns a page of events, newest first.
func HandleAdminEventList(c *fiber.Ctx) error {
	offset, limit := parsePagination(c)
	repos := repository.GetGlobalRepositories()

	events, err := repos.Event.List(offset, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "failed to load events")
	}
	total, err := repos.Event.Count()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "failed to count events")
	}

	return c.JSON(fiber.Map{"events": events, "total": total})
}

func HandleAdminEventCreate(c *fiber.Ctx) error {
	var req eventRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_request", "could not parse request body")
	}

	event := &models.Event{AutoSoldOut: true, AutoReminder: true, IsActive: true}
	req.apply(event)

	if err := event.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}

	if err := repository.GetGlobalRepositories().Event.Create(event); err != nil {
		log.Printf("event create failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "failed to create event")
	}

	getAudit().Record(usercontext.GetUsername(c), audit.ActionEventCreate,
		fmt.Sprintf("created event %d (%s)", event.ID, event.Title), auditCtx(c)...)

	return c.Status(fiber.StatusCreated).JSON(event)
}

// HandleAdminEventUpdate saves an event and runs the sold-out observer
// against the before/after pair. A triggered notification is queued,
// not awaited.
func HandleAdminEventUpdate(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_id", "invalid event id")
	}

	repos := repository.GetGlobalRepositories()
	event, err := repos.Event.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "event not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "failed to load event")
	}

	var req eventRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_request", "could not parse request body")
	}

	before := *event
	req.apply(event)

	if err := event.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}

	if err := repos.Event.Update(event); err != nil {
		log.Printf("event update failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "failed to update event")
	}

	notified := notify.ObserveEventUpdate(getDispatcher(), &before, event)

	getAudit().Record(usercontext.GetUsername(c), audit.ActionEventUpdate,
		fmt.Sprintf("updated event %d (%s)", event.ID, event.Title), auditCtx(c)...)

	resp := fiber.Map{"event": event}
	if notified {
		resp["notified"] = "queued"
	}
	return c.JSON(resp)
}

func HandleAdminEventDelete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_id", "invalid event id")
	}

	repos := repository.GetGlobalRepositories()
	event, err := repos.Event.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "event not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "failed to load event")
	}

	if err := repos.Event.Delete(id); err != nil {
		log.Printf("event delete failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "failed to delete event")
	}

	getAudit().Record(usercontext.GetUsername(c), audit.ActionEventDelete,
		fmt.Sprintf("deleted event %d (%s)", event.ID, event.Title), auditCtx(c)...)

	return c.JSON(fiber.Map{"success": true})
}

// HandleAdminEventAnnounce sends the announcement batch for one event.
func HandleAdminEventAnnounce(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_id", "invalid event id")
	}

	event, err := repository.GetGlobalRepositories().Event.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "event not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "failed to load event")
	}

	result := getDispatcher().Send(notify.KindAnnouncement, event)

	getAudit().Record(usercontext.GetUsername(c), audit.ActionEventAnnounce,
		fmt.Sprintf("announced event %d (%s) to %d recipients", event.ID, event.Title, result.RecipientCount),
		auditCtx(c)...)

	return c.JSON(result)
}

// HandleAdminEventImageUpload attaches an uploaded image to an event.
func HandleAdminEventImageUpload(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_id", "invalid event id")
	}

	repos := repository.GetGlobalRepositories()
	event, err := repos.Event.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "event not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "failed to load event")
	}

	imageURL, _, err := storeImage(c, "events")
	if err != nil {
		if errors.Is(err, errStorageUnavailable) {
			return jsonError(c, fiber.StatusServiceUnavailable, "storage_unavailable", err.Error())
		}
		return jsonError(c, fiber.StatusBadRequest, "upload_failed", err.Error())
	}

	event.ImagePath = imageURL
	if err := repos.Event.Update(event); err != nil {
		log.Printf("event image update failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "failed to save event image")
	}

	getAudit().Record(usercontext.GetUsername(c), audit.ActionEventUpdate,
		fmt.Sprintf("uploaded image for event %d", event.ID), auditCtx(c)...)

	return c.JSON(fiber.Map{"image_path": imageURL})
}
