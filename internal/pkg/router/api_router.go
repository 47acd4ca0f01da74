package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/LenaVoss/lenavoss-web/app/controllers"
	"github.com/LenaVoss/lenavoss-web/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api")

	// Form intake
	api.Post("/contact", controllers.HandleContactSubmit)
	api.Post("/subscribe", controllers.HandleSubscribe)
	api.Post("/track-visit", controllers.HandleTrackVisit)

	// Public site content
	api.Get("/events", controllers.HandleEventList)
	api.Get("/products", controllers.HandleProductList)
	api.Get("/gallery", controllers.HandleGalleryList)
	api.Get("/gallery/press-kit", controllers.HandlePressKit)

	// Scheduler hooks
	cron := app.Group("/cron", middleware.CronAuthMiddleware())
	cron.Get("/event-reminders", controllers.HandleEventReminders)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
