package ocr

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpautz/crossword-times/internal/model"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func solidImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: 240, G: 240, B: 240, A: 255})
		}
	}
	return img
}

// noiseImage compresses poorly, which makes it easy to exceed the upload cap
func noiseImage(width, height int) image.Image {
	rng := rand.New(rand.NewSource(1))
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{
				R: uint8(rng.Intn(256)),
				G: uint8(rng.Intn(256)),
				B: uint8(rng.Intn(256)),
				A: 255,
			})
		}
	}
	return img
}

func TestDetectFormat(t *testing.T) {
	data := encodePNG(t, solidImage(10, 10))

	format, err := DetectFormat(data)
	require.NoError(t, err)
	assert.Equal(t, FormatPNG, format)
}

func TestDetectFormatJPEG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, solidImage(10, 10), nil))

	format, err := DetectFormat(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, FormatJPEG, format)
}

func TestDetectFormatRejectsNonImage(t *testing.T) {
	_, err := DetectFormat([]byte("just some text, not an image"))
	assert.ErrorIs(t, err, model.ErrUnsupportedImage)
}

func TestPrepareSmallImagePassesThrough(t *testing.T) {
	data := encodePNG(t, solidImage(200, 100))

	input, err := Prepare(data)
	require.NoError(t, err)
	assert.Equal(t, FormatPNG, input.Format)
	assert.Equal(t, data, input.Image)
}

func TestPrepareShrinksOversizedImage(t *testing.T) {
	data := encodePNG(t, noiseImage(1200, 1200))
	require.Greater(t, len(data), maxUploadBytes, "fixture must exceed the upload cap")

	input, err := Prepare(data)
	require.NoError(t, err)
	assert.Equal(t, FormatJPEG, input.Format)
	assert.Less(t, len(input.Image), len(data))

	img, err := jpeg.Decode(bytes.NewReader(input.Image))
	require.NoError(t, err)
	assert.LessOrEqual(t, img.Bounds().Dx(), maxImageWidth)
}

func TestPrepareRejectsNonImage(t *testing.T) {
	_, err := Prepare([]byte{0x00, 0x01, 0x02, 0x03})
	assert.ErrorIs(t, err, model.ErrUnsupportedImage)
}
