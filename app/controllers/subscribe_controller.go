package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/LenaVoss/lenavoss-web/app/models"
	"github.com/LenaVoss/lenavoss-web/internal/pkg/ratelimit"
	"github.com/LenaVoss/lenavoss-web/internal/pkg/subscription"
)

type subscribeRequest struct {
	Email              string `json:"email" form:"email"`
	ReceiveEventAlerts *bool  `json:"receiveEventAlerts" form:"receiveEventAlerts"`
	EventAlerts        *bool  `json:"event_alerts" form:"event_alerts"`
	Honey              string `json:"_honey" form:"_honey"`
	Website            string `json:"website" form:"website"`
}

func (r *subscribeRequest) wantAlerts() bool {
	if r.ReceiveEventAlerts != nil {
		return *r.ReceiveEventAlerts
	}
	if r.EventAlerts != nil {
		return *r.EventAlerts
	}
	return true
}

// HandleSubscribe creates or updates a newsletter signup. Event alerts
// default to on when the field is absent. A trapped honeypot gets the
// same success response as a fresh signup, with nothing persisted.
func HandleSubscribe(c *fiber.Ctx) error {
	var req subscribeRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_request", "could not parse request body")
	}

	wantAlerts := req.wantAlerts()

	if req.Honey != "" || req.Website != "" {
		return c.JSON(fiber.Map{
			"success":            true,
			"updated":            false,
			"reactivated":        false,
			"eventAlertsEnabled": wantAlerts,
			"message":            "Thanks for subscribing!",
		})
	}

	ip := GetClientIP(c)
	email := models.NormalizeEmail(req.Email)

	if !subscription.ValidEmail(email) {
		return jsonError(c, fiber.StatusBadRequest, "invalid_email", "please enter a valid email address")
	}

	limiter := getFormLimiter()
	if !limiter.Allow(email) || !limiter.Allow(ratelimit.IPKey(ip)) {
		return jsonError(c, fiber.StatusTooManyRequests, "too_many_requests", "too many submissions, please try again later")
	}

	loc := resolveLocation(ip)
	result, err := getSubscriptionService().Subscribe(req.Email, wantAlerts, loc, ip)
	if err != nil {
		if errors.Is(err, subscription.ErrInvalidEmail) {
			return jsonError(c, fiber.StatusBadRequest, "invalid_email", "please enter a valid email address")
		}
		log.Printf("subscribe failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "something went wrong")
	}

	message := "Thanks for subscribing!"
	switch {
	case result.Reactivated:
		message = "Welcome back! Your subscription is active again."
	case result.Updated:
		message = "Your preferences have been updated."
	}

	return c.JSON(fiber.Map{
		"success":            true,
		"updated":            result.Updated,
		"reactivated":        result.Reactivated,
		"eventAlertsEnabled": result.EventAlertsEnabled,
		"message":            message,
	})
}

// HandleUnsubscribePage shows the confirm form, or the terminal page
// when the token is invalid or already used.
func HandleUnsubscribePage(c *fiber.Ctx) error {
	token := c.Params("token")

	sub, err := getSubscriptionService().Lookup(token)
	if err != nil {
		return c.Render("unsubscribe", fiber.Map{
			"State": "invalid",
			"Title": models.GetAppSettings().SiteTitle,
		})
	}
	if !sub.IsActive {
		return c.Render("unsubscribe", fiber.Map{
			"State": "already",
			"Title": models.GetAppSettings().SiteTitle,
		})
	}

	return c.Render("unsubscribe", fiber.Map{
		"State": "confirm",
		"Title": models.GetAppSettings().SiteTitle,
		"Email": sub.Email,
		"Token": token,
	})
}

// HandleUnsubscribeSubmit performs the unsubscribe with an optional
// free-text reason.
func HandleUnsubscribeSubmit(c *fiber.Ctx) error {
	token := c.Params("token")
	reason := c.FormValue("reason")

	_, err := getSubscriptionService().Unsubscribe(token, reason)
	switch {
	case errors.Is(err, subscription.ErrInvalidToken):
		return c.Render("unsubscribe", fiber.Map{
			"State": "invalid",
			"Title": models.GetAppSettings().SiteTitle,
		})
	case errors.Is(err, subscription.ErrAlreadyUnsubscribed):
		return c.Render("unsubscribe", fiber.Map{
			"State": "already",
			"Title": models.GetAppSettings().SiteTitle,
		})
	case err != nil:
		log.Printf("unsubscribe failed: %v", err)
		return c.Render("unsubscribe", fiber.Map{
			"State": "error",
			"Title": models.GetAppSettings().SiteTitle,
		})
	}

	return c.Render("unsubscribe", fiber.Map{
		"State": "done",
		"Title": models.GetAppSettings().SiteTitle,
	})
}
