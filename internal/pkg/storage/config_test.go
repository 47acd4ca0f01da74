package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectKeyLayout(t *testing.T) {
	cfg := &Config{}

	key := cfg.ObjectKey("events", "abc-123", ".png", 2025, 7)
	assert.Equal(t, "media/events/2025/07/abc-123.png", key)
}

func TestPublicURLPrefersPublicBase(t *testing.T) {
	cfg := &Config{
		PublicBaseURL: "https://cdn.lenavoss.example/",
		EndpointURL:   "https://s3.example.com",
		BucketName:    "media",
	}

	assert.Equal(t, "https://cdn.lenavoss.example/media/events/2025/07/a.png",
		cfg.PublicURL("media/events/2025/07/a.png"))
}

func TestPublicURLPathStyleForCustomEndpoint(t *testing.T) {
	cfg := &Config{
		EndpointURL: "https://s3.example.com",
		BucketName:  "media",
	}

	assert.Equal(t, "https://s3.example.com/media/a.png", cfg.PublicURL("a.png"))
}

func TestPublicURLDefaultsToAWS(t *testing.T) {
	cfg := &Config{
		BucketName: "media",
		Region:     "eu-central-1",
	}

	assert.Equal(t, "https://media.s3.eu-central-1.amazonaws.com/a.png", cfg.PublicURL("a.png"))
}

func TestObjectKeyFromURLRoundTrips(t *testing.T) {
	cases := []Config{
		{PublicBaseURL: "https://cdn.lenavoss.example", BucketName: "media", Region: "eu-central-1"},
		{EndpointURL: "https://s3.example.com", BucketName: "media", Region: "eu-central-1"},
		{BucketName: "media", Region: "eu-central-1"},
	}

	for _, cfg := range cases {
		key := "media/gallery/2025/07/abc.png"
		assert.Equal(t, key, cfg.ObjectKeyFromURL(cfg.PublicURL(key)))
	}
}

func TestObjectKeyFromURLForeignURLIsEmpty(t *testing.T) {
	cfg := &Config{BucketName: "media", Region: "eu-central-1"}

	assert.Equal(t, "", cfg.ObjectKeyFromURL("https://elsewhere.example/a.png"))
}
