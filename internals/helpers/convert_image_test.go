package helper

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngFixture(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 100, A: 255})
		}
	}
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func TestNormalizeDocumentImage_ReencodesToWebP(t *testing.T) {
	data, mime := NormalizeDocumentImage(pngFixture(t, 32, 32), "image/png")

	assert.Equal(t, "image/webp", mime)
	assert.NotEmpty(t, data)
}

func TestNormalizeDocumentImage_ResizesWideScans(t *testing.T) {
	data, mime := NormalizeDocumentImage(pngFixture(t, 2400, 40), "image/png")

	require.Equal(t, "image/webp", mime)
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.LessOrEqual(t, cfg.Width, 1600)
}

func TestNormalizeDocumentImage_PassesThroughNonImages(t *testing.T) {
	raw := []byte("%PDF-1.7 bukan gambar")

	data, mime := NormalizeDocumentImage(raw, "application/pdf")

	assert.Equal(t, raw, data)
	assert.Equal(t, "application/pdf", mime)
}
