package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/LenaVoss/lenavoss-web/internal/pkg/contact"
)

type contactRequest struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Message string `json:"message" form:"message"`
	Honey   string `json:"_honey" form:"_honey"`
	Website string `json:"website" form:"website"`
}

// HandleContactSubmit runs the contact intake pipeline. A trapped
// honeypot gets the same success response as a real submission.
func HandleContactSubmit(c *fiber.Ctx) error {
	var req contactRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_request", "could not parse request body")
	}

	_, err := getContactPipeline().Submit(contact.Submission{
		Name:    req.Name,
		Email:   req.Email,
		Body:    req.Message,
		Honey:   req.Honey,
		Website: req.Website,
		IP:      GetClientIP(c),
	})
	if err != nil {
		code := contact.Code(err)
		switch code {
		case "too_many_requests":
			return jsonError(c, fiber.StatusTooManyRequests, code, "too many submissions, please try again later")
		case "internal_error":
			log.Printf("contact submission failed: %v", err)
			return jsonError(c, fiber.StatusInternalServerError, code, "something went wrong")
		default:
			return jsonError(c, fiber.StatusBadRequest, code, "please check your input")
		}
	}

	return c.JSON(fiber.Map{"success": true})
}
