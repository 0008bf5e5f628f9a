package s3

import (
	"bytes"
	"fmt"
	"image"
	"net/http"

	"github.com/disintegration/imaging"

	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/listing/domain"
)

const (
	MaxImageWidth  = 1200
	MaxImageHeight = 800
	// MaxSourcePixels caps the declared frame size of an upload. The header is
	// checked before any pixel data is decoded.
	MaxSourcePixels = 50_000_000
	// autoQuality is the JPEG quality used for every stored image.
	autoQuality = 82
)

// payload is what actually goes to the bucket.
type payload struct {
	data        []byte
	contentType string
}

// prepare bounds images to MaxImageWidth x MaxImageHeight and re-encodes
// them as JPEG. Other kinds are stored as sent. Files that are not a
// decodable image, or whose frame exceeds MaxSourcePixels, are validation
// errors.
func prepare(data []byte, kind domain.ResourceKind) (payload, error) {
	if kind != domain.ResourceImage {
		return payload{data: data, contentType: http.DetectContentType(data)}, nil
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return payload{}, fmt.Errorf("%w: unsupported image format", domain.ErrValidation)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxSourcePixels {
		return payload{}, fmt.Errorf("%w: %s image of %dx%d exceeds %d pixels",
			domain.ErrValidation, format, cfg.Width, cfg.Height, MaxSourcePixels)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return payload{}, fmt.Errorf("%w: corrupt %s image", domain.ErrValidation, format)
	}
	img = bound(img)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(autoQuality)); err != nil {
		return payload{}, fmt.Errorf("encode image: %w", err)
	}
	return payload{data: buf.Bytes(), contentType: "image/jpeg"}, nil
}

// bound shrinks img to fit the limits, keeping its aspect ratio. Smaller
// images are returned unchanged.
func bound(img image.Image) image.Image {
	b := img.Bounds()
	if b.Dx() <= MaxImageWidth && b.Dy() <= MaxImageHeight {
		return img
	}
	return imaging.Fit(img, MaxImageWidth, MaxImageHeight, imaging.Lanczos)
}
