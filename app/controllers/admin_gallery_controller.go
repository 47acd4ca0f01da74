package controllers

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/LenaVoss/lenavoss-web/app/models"
	"github.com/LenaVoss/lenavoss-web/app/repository"
	"github.com/LenaVoss/lenavoss-web/internal/pkg/audit"
	"github.com/LenaVoss/lenavoss-web/internal/pkg/usercontext"
)

func HandleAdminGalleryList(c *fiber.Ctx) error {
	images, err := repository.GetGlobalRepositories().Gallery.List()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "failed to load gallery")
	}
	return c.JSON(fiber.Map{"images": images})
}

// HandleAdminGalleryUpload stores a new gallery image. Metadata comes
// from the multipart form alongside the file.
func HandleAdminGalleryUpload(c *fiber.Ctx) error {
	imageURL, thumbURL, err := storeImage(c, "gallery")
	if err != nil {
		if errors.Is(err, errStorageUnavailable) {
			return jsonError(c, fiber.StatusServiceUnavailable, "storage_unavailable", err.Error())
		}
		return jsonError(c, fiber.StatusBadRequest, "upload_failed", err.Error())
	}

	isPressKit, _ := strconv.ParseBool(c.FormValue("is_press_kit", "false"))
	sortOrder, _ := strconv.Atoi(c.FormValue("sort_order", "0"))

	image := &models.GalleryImage{
		Title:         c.FormValue("title"),
		Credit:        c.FormValue("credit"),
		ImagePath:     imageURL,
		ThumbnailPath: thumbURL,
		IsPressKit:    isPressKit,
		SortOrder:     sortOrder,
	}
	if err := repository.GetGlobalRepositories().Gallery.Create(image); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "failed to save gallery image")
	}

	getAudit().Record(usercontext.GetUsername(c), audit.ActionGalleryUpload,
		fmt.Sprintf("uploaded gallery image %d (%s)", image.ID, image.Title), auditCtx(c)...)

	return c.Status(fiber.StatusCreated).JSON(image)
}

type galleryUpdateRequest struct {
	Title      string `json:"title" form:"title"`
	Credit     string `json:"credit" form:"credit"`
	IsPressKit bool   `json:"is_press_kit" form:"is_press_kit"`
	SortOrder  int    `json:"sort_order" form:"sort_order"`
}

func HandleAdminGalleryUpdate(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_id", "invalid image id")
	}

	repos := repository.GetGlobalRepositories()
	image, err := repos.Gallery.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "image not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "failed to load image")
	}

	var req galleryUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_request", "could not parse request body")
	}

	image.Title = req.Title
	image.Credit = req.Credit
	image.IsPressKit = req.IsPressKit
	image.SortOrder = req.SortOrder

	if err := repos.Gallery.Update(image); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "failed to update image")
	}

	getAudit().Record(usercontext.GetUsername(c), audit.ActionGalleryUpdate,
		fmt.Sprintf("updated gallery image %d (%s)", image.ID, image.Title), auditCtx(c)...)

	return c.JSON(image)
}

func HandleAdminGalleryDelete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_id", "invalid image id")
	}

	repos := repository.GetGlobalRepositories()
	image, err := repos.Gallery.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "image not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "failed to load image")
	}

	if err := repos.Gallery.Delete(id); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "failed to delete image")
	}

	// Remove the stored objects best-effort; the DB row is already gone.
	if client := getStorage(); client != nil {
		ctx := c.UserContext()
		for _, url := range []string{image.ImagePath, image.ThumbnailPath} {
			if err := client.DeleteByURL(ctx, url); err != nil {
				log.Printf("failed to remove stored object %s: %v", url, err)
			}
		}
	}

	getAudit().Record(usercontext.GetUsername(c), audit.ActionGalleryDelete,
		fmt.Sprintf("deleted gallery image %d", id), auditCtx(c)...)

	return c.JSON(fiber.Map{"success": true})
}
