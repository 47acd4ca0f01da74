package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/LenaVoss/lenavoss-web/app/controllers"
	"github.com/LenaVoss/lenavoss-web/internal/pkg/middleware"
)

func (h HttpRouter) registerAdminRoutes(app *fiber.App) {
	// Login/logout live outside the guarded group
	app.Get("/admin/login", controllers.HandleAdminLogin)
	app.Post("/admin/login", controllers.HandleAdminLogin)
	app.Post("/admin/logout", controllers.HandleAdminLogout)

	// The dashboard entry redirects browsers to the login page; all
	// other admin routes are data endpoints and answer 401 JSON.
	app.Get("/admin", middleware.RequireAdmin, controllers.HandleAdminDashboard)

	adminGroup := app.Group("/admin", middleware.RequireAdminAPI)
	adminGroup.Get("/visitor-stats", controllers.HandleAdminVisitorStats)

	// Event management
	adminGroup.Get("/events", controllers.HandleAdminEventList)
	adminGroup.Post("/events", controllers.HandleAdminEventCreate)
	adminGroup.Put("/events/:id", controllers.HandleAdminEventUpdate)
	adminGroup.Delete("/events/:id", controllers.HandleAdminEventDelete)
	adminGroup.Post("/events/:id/announce", controllers.HandleAdminEventAnnounce)
	adminGroup.Post("/events/:id/image", controllers.HandleAdminEventImageUpload)

	// Contact messages
	adminGroup.Get("/messages", controllers.HandleAdminMessageList)
	adminGroup.Post("/messages/:id/toggle-read", controllers.HandleAdminMessageToggleRead)
	adminGroup.Post("/messages/:id/reply", controllers.HandleAdminMessageReply)
	adminGroup.Delete("/messages/:id", controllers.HandleAdminMessageDelete)

	// Subscribers
	adminGroup.Get("/subscribers", controllers.HandleAdminSubscriberList)
	adminGroup.Get("/subscribers/export", controllers.HandleAdminSubscriberExport)
	adminGroup.Delete("/subscribers/:id", controllers.HandleAdminSubscriberDelete)

	// Audit log
	adminGroup.Get("/logs", controllers.HandleAdminLogList)
	adminGroup.Get("/logs/counts", controllers.HandleAdminLogCounts)
	adminGroup.Post("/logs/clear", controllers.HandleAdminLogClear)

	// Settings
	adminGroup.Get("/settings", controllers.HandleAdminSettingsGet)
	adminGroup.Put("/settings", controllers.HandleAdminSettingsUpdate)

	// Merch
	adminGroup.Get("/products", controllers.HandleAdminProductList)
	adminGroup.Post("/products", controllers.HandleAdminProductCreate)
	adminGroup.Put("/products/:id", controllers.HandleAdminProductUpdate)
	adminGroup.Delete("/products/:id", controllers.HandleAdminProductDelete)
	adminGroup.Post("/products/:id/image", controllers.HandleAdminProductImageUpload)

	// Gallery
	adminGroup.Get("/gallery", controllers.HandleAdminGalleryList)
	adminGroup.Post("/gallery", controllers.HandleAdminGalleryUpload)
	adminGroup.Put("/gallery/:id", controllers.HandleAdminGalleryUpdate)
	adminGroup.Delete("/gallery/:id", controllers.HandleAdminGalleryDelete)
}
