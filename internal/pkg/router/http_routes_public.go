package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/LenaVoss/lenavoss-web/app/controllers"
)

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	// Unsubscribe flow is server-rendered; the token comes from the
	// link embedded in every notification mail.
	app.Get("/unsubscribe/:token", controllers.HandleUnsubscribePage)
	app.Post("/unsubscribe/:token", controllers.HandleUnsubscribeSubmit)
}
