package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/LenaVoss/lenavoss-web/internal/pkg/usercontext"
)

// RequireAdmin ensures a logged-in admin session; redirects to the login
// page otherwise.
func RequireAdmin(c *fiber.Ctx) error {
	v := c.Locals(usercontext.KeyFromProtected)
	loggedIn := false
	if b, ok := v.(bool); ok {
		loggedIn = b
	}
	if !loggedIn {
		return c.Redirect("/admin/login", fiber.StatusSeeOther)
	}
	if isAdmin, ok := c.Locals(usercontext.KeyIsAdmin).(bool); !ok || !isAdmin {
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	return c.Next()
}

// RequireAdminAPI ensures a logged-in admin for JSON routes and returns
// 401 instead of a redirect.
func RequireAdminAPI(c *fiber.Ctx) error {
	if !usercontext.IsAdmin(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "admin login required",
		})
	}
	return c.Next()
}
