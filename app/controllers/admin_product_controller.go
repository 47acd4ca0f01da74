package controllers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/LenaVoss/lenavoss-web/app/models"
	"github.com/LenaVoss/lenavoss-web/app/repository"
	"github.com/LenaVoss/lenavoss-web/internal/pkg/audit"
	"github.com/LenaVoss/lenavoss-web/internal/pkg/usercontext"
)

type productRequest struct {
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
	PriceCents  int64  `json:"price_cents" form:"price_cents"`
	Currency    string `json:"currency" form:"currency"`
	ShopURL     string `json:"shop_url" form:"shop_url"`
	IsActive    bool   `json:"is_active" form:"is_active"`
	SortOrder   int    `json:"sort_order" form:"sort_order"`
}

func (r *productRequest) apply(p *models.Product) {
	p.Name = r.Name
	p.Description = r.Description
	p.PriceCents = r.PriceCents
	if r.Currency != "" {
		p.Currency = r.Currency
	}
	p.ShopURL = r.ShopURL
	p.IsActive = r.IsActive
	p.SortOrder = r.SortOrder
}

func HandleAdminProductList(c *fiber.Ctx) error {
	offset, limit := parsePagination(c)

	products, err := repository.GetGlobalRepositories().Product.List(offset, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "failed to load products")
	}
	return c.JSON(fiber.Map{"products": products})
}

func HandleAdminProductCreate(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_request", "could not parse request body")
	}
	if strings.TrimSpace(req.Name) == "" {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", "name is required")
	}

	product := &models.Product{Currency: "EUR", IsActive: true}
	req.apply(product)

	if err := repository.GetGlobalRepositories().Product.Create(product); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "failed to create product")
	}

	getAudit().Record(usercontext.GetUsername(c), audit.ActionProductCreate,
		fmt.Sprintf("created product %d (%s)", product.ID, product.Name), auditCtx(c)...)

	return c.Status(fiber.StatusCreated).JSON(product)
}

func HandleAdminProductUpdate(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_id", "invalid product id")
	}

	repos := repository.GetGlobalRepositories()
	product, err := repos.Product.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "product not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "failed to load product")
	}

	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_request", "could not parse request body")
	}
	if strings.TrimSpace(req.Name) == "" {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", "name is required")
	}
	req.apply(product)

	if err := repos.Product.Update(product); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "failed to update product")
	}

	getAudit().Record(usercontext.GetUsername(c), audit.ActionProductUpdate,
		fmt.Sprintf("updated product %d (%s)", product.ID, product.Name), auditCtx(c)...)

	return c.JSON(product)
}

func HandleAdminProductDelete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_id", "invalid product id")
	}

	if err := repository.GetGlobalRepositories().Product.Delete(id); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "failed to delete product")
	}

	getAudit().Record(usercontext.GetUsername(c), audit.ActionProductDelete,
		fmt.Sprintf("deleted product %d", id), auditCtx(c)...)

	return c.JSON(fiber.Map{"success": true})
}

// HandleAdminProductImageUpload attaches an uploaded image to a product.
func HandleAdminProductImageUpload(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_id", "invalid product id")
	}

	repos := repository.GetGlobalRepositories()
	product, err := repos.Product.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "product not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "failed to load product")
	}

	imageURL, _, err := storeImage(c, "products")
	if err != nil {
		if errors.Is(err, errStorageUnavailable) {
			return jsonError(c, fiber.StatusServiceUnavailable, "storage_unavailable", err.Error())
		}
		return jsonError(c, fiber.StatusBadRequest, "upload_failed", err.Error())
	}

	product.ImagePath = imageURL
	if err := repos.Product.Update(product); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "failed to save product image")
	}

	getAudit().Record(usercontext.GetUsername(c), audit.ActionProductUpdate,
		fmt.Sprintf("uploaded image for product %d", product.ID), auditCtx(c)...)

	return c.JSON(fiber.Map{"image_path": imageURL})
}
