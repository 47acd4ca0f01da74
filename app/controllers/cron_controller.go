package controllers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/LenaVoss/lenavoss-web/app/repository"
	"github.com/LenaVoss/lenavoss-web/internal/pkg/notify"
)

type reminderResult struct {
	EventID        uint   `json:"event_id"`
	Title          string `json:"title"`
	Success        bool   `json:"success"`
	RecipientCount int    `json:"recipient_count"`
	Error          string `json:"error,omitempty"`
}

// HandleEventReminders is the scheduler-triggered reminder sweep. It
// dispatches the reminder batch for every eligible event dated exactly
// one week out. The scheduler is expected to call this once per day;
// there is no persisted dedupe marker.
func HandleEventReminders(c *fiber.Ctx) error {
	start, end := notify.ReminderWindow(time.Now())

	events, err := repository.GetGlobalRepositories().Event.ReminderCandidates(start, end)
	if err != nil {
		log.Printf("reminder sweep failed to load events: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "failed to load events")
	}

	results := make([]reminderResult, 0, len(events))
	for i := range events {
		event := &events[i]
		r := getDispatcher().Send(notify.KindReminder, event)
		results = append(results, reminderResult{
			EventID:        event.ID,
			Title:          event.Title,
			Success:        r.Success,
			RecipientCount: r.RecipientCount,
			Error:          r.Error,
		})
	}

	return c.JSON(fiber.Map{
		"window_start": notify.FormatSweepDate(start),
		"window_end":   notify.FormatSweepDate(end),
		"processed":    len(results),
		"results":      results,
	})
}
