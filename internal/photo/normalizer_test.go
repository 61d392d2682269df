package photo

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeGrayPNG(t *testing.T, w, h int) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func encodePNG(t *testing.T) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.NRGBA{R: 200, G: 10, B: 10, A: uint8(x * 32)})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestNormalize_PNGBecomesJPEG(t *testing.T) {
	out, err := NewNormalizer(DefaultQuality).Normalize(encodePNG(t))
	require.NoError(t, err)

	img, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, image.Rect(0, 0, 8, 8), img.Bounds())
}

func TestNormalize_JPEGStaysDecodable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewGray(image.Rect(0, 0, 4, 4)), nil))

	out, err := NewNormalizer(50).Normalize(buf.Bytes())
	require.NoError(t, err)

	_, err = jpeg.Decode(bytes.NewReader(out))
	assert.NoError(t, err)
}

func TestNormalize_Failures(t *testing.T) {
	n := NewNormalizer(0)

	for name, raw := range map[string][]byte{
		"empty":         nil,
		"garbage":       []byte("definitely not an image"),
		"truncated png": encodePNG(t)[:20],
		"too wide":      encodeGrayPNG(t, MaxSide+1, 1),
		"too tall":      encodeGrayPNG(t, 1, MaxSide+1),
	} {
		t.Run(name, func(t *testing.T) {
			out, err := n.Normalize(raw)
			assert.ErrorIs(t, err, ErrInvalidImage)
			assert.Nil(t, out)
		})
	}
}

func TestCheckDimensions(t *testing.T) {
	tests := []struct {
		name  string
		w, h  int
		valid bool
	}{
		{name: "small", w: 640, h: 480, valid: true},
		{name: "largest side", w: MaxSide, h: 100, valid: true},
		{name: "pixel budget", w: 8000, h: 5000, valid: true},
		{name: "over pixel budget", w: 7000, h: 7000},
		{name: "over side", w: 12000, h: 12000},
		{name: "zero", w: 0, h: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkDimensions(image.Config{Width: tt.w, Height: tt.h})
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidImage)
		})
	}
}
