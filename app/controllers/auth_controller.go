package controllers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/LenaVoss/lenavoss-web/app/models"
	"github.com/LenaVoss/lenavoss-web/app/repository"
	"github.com/LenaVoss/lenavoss-web/internal/pkg/audit"
	"github.com/LenaVoss/lenavoss-web/internal/pkg/session"
	"github.com/LenaVoss/lenavoss-web/internal/pkg/usercontext"
)

// HandleAdminLogin renders the login form and processes submissions.
// Failed attempts are answered with one generic message and audited.
func HandleAdminLogin(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		return c.Render("admin_login", fiber.Map{
			"Title": models.GetAppSettings().SiteTitle,
			"Flash": flash.Get(c),
		})
	}

	email := c.FormValue("email")
	password := c.FormValue("password")
	ip := GetClientIP(c)
	userAgent := c.Get("User-Agent")

	fm := fiber.Map{"type": "error", "message": "There is a problem with the login process"}

	user, err := repository.GetGlobalRepositories().User.GetByEmail(email)
	if err != nil {
		getAudit().Record(email, audit.ActionLoginFailed, "unknown account",
			audit.WithLevel(models.LOG_LEVEL_WARN), audit.WithRequest(ip, userAgent))
		return flash.WithError(c, fm).Redirect("/admin/login")
	}

	if !user.CheckPassword(password) || !user.IsActive() {
		getAudit().Record(user.Name, audit.ActionLoginFailed, "wrong password or inactive account",
			audit.WithLevel(models.LOG_LEVEL_WARN), audit.WithActor(user.ID), audit.WithRequest(ip, userAgent))
		return flash.WithError(c, fm).Redirect("/admin/login")
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)
		return flash.WithError(c, fm).Redirect("/admin/login")
	}

	sess.Set(usercontext.AuthKey, true)
	sess.Set(usercontext.KeyUserID, user.ID)
	sess.Set(usercontext.KeyUsername, user.Name)
	sess.Set(usercontext.KeyIsAdmin, user.Role == models.ROLE_ADMIN)

	if err := sess.Save(); err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)
		return flash.WithError(c, fm).Redirect("/admin/login")
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := repository.GetGlobalRepositories().User.Update(user); err != nil {
		// Login still succeeds, the timestamp is informational
		fmt.Printf("failed to update last login for user %d: %v\n", user.ID, err)
	}

	getAudit().Record(user.Name, audit.ActionLogin, "admin login",
		audit.WithActor(user.ID), audit.WithRequest(ip, userAgent))

	fm = fiber.Map{"type": "success", "message": "Welcome back!"}
	return flash.WithSuccess(c, fm).Redirect("/admin")
}

// HandleAdminLogout destroys the session and records the logout.
func HandleAdminLogout(c *fiber.Ctx) error {
	username := usercontext.GetUsername(c)
	userID := usercontext.GetUserID(c)

	sess, err := session.GetSessionStore().Get(c)
	if err == nil {
		if err := sess.Destroy(); err != nil {
			fm := fiber.Map{"type": "error", "message": fmt.Sprintf("something went wrong: %s", err)}
			return flash.WithError(c, fm).Redirect("/admin/login")
		}
	}

	if username != "" {
		getAudit().Record(username, audit.ActionLogout, "admin logout",
			audit.WithActor(userID), audit.WithRequest(GetClientIP(c), c.Get("User-Agent")))
	}

	c.Locals(usercontext.KeyFromProtected, false)

	fm := fiber.Map{"type": "success", "message": "Logged out."}
	return flash.WithSuccess(c, fm).Redirect("/admin/login")
}
