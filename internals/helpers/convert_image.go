package helper

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

const (
	maxDocumentWidth = 1600
	webpQuality      = 80
)

// NormalizeDocumentImage mengecilkan scan dokumen dan re-encode ke WebP
// sebelum dikirim inline ke reviewer AI, supaya ukuran request terkendali.
// Payload yang bukan gambar (mis. PDF) dikembalikan apa adanya.
func NormalizeDocumentImage(data []byte, contentType string) ([]byte, string) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return data, contentType
	}

	if img.Bounds().Dx() > maxDocumentWidth {
		img = imaging.Resize(img, maxDocumentWidth, 0, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Lossless: false, Quality: webpQuality}); err != nil {
		return data, contentType
	}
	return buf.Bytes(), "image/webp"
}
