package storage

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/LenaVoss/lenavoss-web/internal/pkg/env"
)

// Config holds the object storage settings for uploaded media. An empty
// endpoint targets AWS proper; S3-compatible services (Backblaze B2,
// MinIO) set one.
type Config struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	BucketName      string
	EndpointURL     string
	PublicBaseURL   string
	Enabled         bool
}

// LoadConfig loads object storage configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{
		AccessKeyID:     env.GetEnv("S3_ACCESS_KEY_ID", ""),
		SecretAccessKey: env.GetEnv("S3_SECRET_ACCESS_KEY", ""),
		Region:          env.GetEnv("S3_REGION", "eu-central-1"),
		BucketName:      env.GetEnv("S3_BUCKET_NAME", ""),
		EndpointURL:     env.GetEnv("S3_ENDPOINT_URL", ""),
		PublicBaseURL:   env.GetEnv("S3_PUBLIC_BASE_URL", ""),
		Enabled:         env.GetEnv("S3_STORAGE_ENABLED", "false") == "true",
	}

	if config.Enabled {
		if config.AccessKeyID == "" {
			return nil, errors.New("S3_ACCESS_KEY_ID is required when object storage is enabled")
		}
		if config.SecretAccessKey == "" {
			return nil, errors.New("S3_SECRET_ACCESS_KEY is required when object storage is enabled")
		}
		if config.BucketName == "" {
			return nil, errors.New("S3_BUCKET_NAME is required when object storage is enabled")
		}
	}

	return config, nil
}

// IsEnabled returns true if object storage is enabled
func (c *Config) IsEnabled() bool {
	return c.Enabled
}

// ObjectKey generates a standardized object key for an uploaded media file.
// Format: media/<section>/YYYY/MM/<id><ext>
func (c *Config) ObjectKey(section, id, fileExtension string, year, month int) string {
	return fmt.Sprintf("media/%s/%04d/%02d/%s%s", section, year, month, id, fileExtension)
}

func appEnv() string {
	return env.GetEnv("APP_ENV", "dev")
}

// PublicURL returns the browser-facing URL for an object key.
func (c *Config) PublicURL(objectKey string) string {
	if c.PublicBaseURL != "" {
		return strings.TrimRight(c.PublicBaseURL, "/") + "/" + objectKey
	}
	if c.EndpointURL != "" {
		return strings.TrimRight(c.EndpointURL, "/") + path.Join("/", c.BucketName, objectKey)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.BucketName, c.Region, objectKey)
}

// ObjectKeyFromURL is the inverse of PublicURL. It returns the object
// key for a stored public URL, or "" when the URL does not belong to
// this bucket (for example after the public base URL was changed).
func (c *Config) ObjectKeyFromURL(url string) string {
	prefixes := []string{
		fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", c.BucketName, c.Region),
	}
	if c.PublicBaseURL != "" {
		prefixes = append(prefixes, strings.TrimRight(c.PublicBaseURL, "/")+"/")
	}
	if c.EndpointURL != "" {
		prefixes = append(prefixes, strings.TrimRight(c.EndpointURL, "/")+"/"+c.BucketName+"/")
	}

	for _, prefix := range prefixes {
		if strings.HasPrefix(url, prefix) {
			return strings.TrimPrefix(url, prefix)
		}
	}
	return ""
}
