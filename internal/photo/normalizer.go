// Package photo turns uploaded images into a single stored encoding.
package photo

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	DefaultQuality = 90

	// Decoding limits, checked from the image header before any pixel
	// buffer is allocated.
	MaxSide   = 10_000
	MaxPixels = 40_000_000
)

var ErrInvalidImage = errors.New("invalid image")

// Normalizer decodes any registered image format and re-encodes it as JPEG.
type Normalizer struct {
	quality int
}

func NewNormalizer(quality int) *Normalizer {
	if quality < 1 || quality > 100 {
		quality = DefaultQuality
	}
	return &Normalizer{quality: quality}
}

func (n *Normalizer) Normalize(raw []byte) ([]byte, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidImage)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidImage, err)
	}
	if err := checkDimensions(cfg); err != nil {
		return nil, err
	}

	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidImage, err)
	}

	// JPEG has no alpha channel; flatten onto white instead of black.
	if format == "png" || format == "gif" || format == "webp" {
		img = flatten(img)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: n.quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}

	return buf.Bytes(), nil
}

func checkDimensions(cfg image.Config) error {
	w, h := cfg.Width, cfg.Height
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: empty dimensions %dx%d", ErrInvalidImage, w, h)
	}
	if w > MaxSide || h > MaxSide || w*h > MaxPixels {
		return fmt.Errorf("%w: dimensions %dx%d exceed the limit", ErrInvalidImage, w, h)
	}
	return nil
}

func flatten(src image.Image) image.Image {
	bounds := src.Bounds()
	dst := image.NewRGBA(bounds)
	draw.Draw(dst, bounds, image.White, image.Point{}, draw.Src)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Over)
	return dst
}
