package upload

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height)))
	require.NoError(t, err)
	return buf.Bytes()
}

func TestValidateImageBySniffAcceptsPNG(t *testing.T) {
	head := pngBytes(t, 4, 4)

	mime, err := ValidateImageBySniff("cover.png", head)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)
}

func TestValidateImageBySniffRejectsUnknownExtension(t *testing.T) {
	_, err := ValidateImageBySniff("cover.pdf", pngBytes(t, 4, 4))
	assert.Error(t, err)
}

func TestValidateImageBySniffRejectsHTMLPayload(t *testing.T) {
	_, err := ValidateImageBySniff("cover.png", []byte("<!DOCTYPE html><html><body>x</body></html>"))
	assert.Error(t, err)
}

func TestValidateImageBySniffRejectsSVG(t *testing.T) {
	_, err := ValidateImageBySniff("logo.jpg", []byte(`<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg"></svg>`))
	assert.Error(t, err)
}

func TestThumbnailResizesWideImage(t *testing.T) {
	data := pngBytes(t, ThumbnailWidth*2, 400)

	out, err := Thumbnail(data)
	require.NoError(t, err)

	img, _, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, ThumbnailWidth, img.Bounds().Dx())
}

func TestThumbnailKeepsSmallImageWidth(t *testing.T) {
	data := pngBytes(t, 100, 80)

	out, err := Thumbnail(data)
	require.NoError(t, err)

	img, _, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
}
