package controllers

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/LenaVoss/lenavoss-web/internal/pkg/upload"
)

var errStorageUnavailable = errors.New("object storage is not configured")

// storeImage reads the multipart "image" field, validates it, uploads
// the original plus a JPEG thumbnail and returns both public URLs.
func storeImage(c *fiber.Ctx, section string) (imageURL, thumbURL string, err error) {
	client := getStorage()
	if client == nil {
		return "", "", errStorageUnavailable
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return "", "", errors.New("image file is required")
	}
	if fileHeader.Size > upload.MaxImageSize {
		return "", "", fmt.Errorf("image exceeds the %d MB limit", upload.MaxImageSize/(1024*1024))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", "", fmt.Errorf("failed to read upload: %w", err)
	}

	contentType, err := upload.ValidateImageBySniff(fileHeader.Filename, data)
	if err != nil {
		return "", "", err
	}

	thumb, err := upload.Thumbnail(data)
	if err != nil {
		return "", "", err
	}

	now := time.Now()
	id := uuid.NewString()
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	cfg := client.Config()

	imageKey := cfg.ObjectKey(section, id, ext, now.Year(), int(now.Month()))
	thumbKey := cfg.ObjectKey(section, id+"_thumb", ".jpg", now.Year(), int(now.Month()))

	ctx := c.UserContext()
	imageURL, err = client.Upload(ctx, imageKey, data, contentType)
	if err != nil {
		return "", "", err
	}
	thumbURL, err = client.Upload(ctx, thumbKey, thumb, "image/jpeg")
	if err != nil {
		return "", "", err
	}

	return imageURL, thumbURL, nil
}
