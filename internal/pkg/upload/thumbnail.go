package upload

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

// ThumbnailWidth is the pixel width of gallery and event thumbnails.
// Height follows the aspect ratio.
const ThumbnailWidth = 480

// Thumbnail decodes the uploaded image and returns a resized JPEG. Images
// narrower than the target width are re-encoded but not upscaled.
func Thumbnail(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	if img.Bounds().Dx() > ThumbnailWidth {
		img = imaging.Resize(img, ThumbnailWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(82)); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
