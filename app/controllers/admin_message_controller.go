package controllers

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/LenaVoss/lenavoss-web/app/repository"
	"github.com/LenaVoss/lenavoss-web/internal/pkg/audit"
	"github.com/LenaVoss/lenavoss-web/internal/pkg/usercontext"
)

// HandleAdminMessageList returns a page of contact messages plus the
// unread badge count.
func HandleAdminMessageList(c *fiber.Ctx) error {
	offset, limit := parsePagination(c)
	repos := repository.GetGlobalRepositories()

	messages, err := repos.Message.List(offset, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "failed to load messages")
	}
	total, err := repos.Message.Count()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "failed to count messages")
	}
	unread, err := repos.Message.CountUnread()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "failed to count messages")
	}

	return c.JSON(fiber.Map{"messages": messages, "total": total, "unread": unread})
}

// HandleAdminMessageToggleRead flips the read flag.
func HandleAdminMessageToggleRead(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_id", "invalid message id")
	}

	repos := repository.GetGlobalRepositories()
	msg, err := repos.Message.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "message not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "failed to load message")
	}

	msg.IsRead = !msg.IsRead
	if err := repos.Message.Update(msg); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "failed to update message")
	}

	getAudit().Record(usercontext.GetUsername(c), audit.ActionMessageRead,
		fmt.Sprintf("marked message %d as read=%t", msg.ID, msg.IsRead), auditCtx(c)...)

	return c.JSON(msg)
}

type replyRequest struct {
	Subject string `json:"subject" form:"subject"`
	Body    string `json:"body" form:"body"`
}

// HandleAdminMessageReply sends a mail reply to a contact message and
// stamps the message as replied.
func HandleAdminMessageReply(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_id", "invalid message id")
	}

	var req replyRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_request", "could not parse request body")
	}
	if strings.TrimSpace(req.Body) == "" {
		return jsonError(c, fiber.StatusBadRequest, "invalid_reply", "reply text must not be empty")
	}

	repos := repository.GetGlobalRepositories()
	msg, err := repos.Message.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "message not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "failed to load message")
	}

	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		subject = "Re: your message"
	}

	if err := getDispatcher().SendReply(msg, subject, req.Body); err != nil {
		log.Printf("reply to message %d failed: %v", msg.ID, err)
		return jsonError(c, fiber.StatusBadGateway, "send_failed", "failed to send the reply")
	}

	now := time.Now()
	msg.Replied = true
	msg.RepliedAt = &now
	msg.ReplyText = &req.Body
	msg.IsRead = true
	if err := repos.Message.Update(msg); err != nil {
		log.Printf("failed to stamp reply on message %d: %v", msg.ID, err)
	}

	getAudit().Record(usercontext.GetUsername(c), audit.ActionMessageReply,
		fmt.Sprintf("replied to message %d (%s)", msg.ID, msg.Email), auditCtx(c)...)

	return c.JSON(msg)
}

func HandleAdminMessageDelete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_id", "invalid message id")
	}

	if err := repository.GetGlobalRepositories().Message.Delete(id); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "failed to delete message")
	}

	getAudit().Record(usercontext.GetUsername(c), audit.ActionMessageDelete,
		fmt.Sprintf("deleted message %d", id), auditCtx(c)...)

	return c.JSON(fiber.Map{"success": true})
}
