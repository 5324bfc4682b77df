package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // Register PNG decoder
	"net/http"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp" // Register BMP decoder

	"github.com/mpautz/crossword-times/internal/model"
)

const (
	// maxUploadBytes is the largest payload remote providers accept on free
	// plans; anything bigger is recompressed before dispatch.
	maxUploadBytes = 1 << 20

	maxImageWidth = 1000 // px - sufficient for text recognition
	jpegQuality   = 75   // balance between quality and size
)

// DetectFormat sniffs the image content type from the payload's leading
// bytes. Screenshots arrive as JPEG, PNG or BMP; everything else is rejected.
func DetectFormat(data []byte) (Format, error) {
	contentType := http.DetectContentType(data)
	switch contentType {
	case "image/jpeg":
		return FormatJPEG, nil
	case "image/png":
		return FormatPNG, nil
	case "image/bmp":
		return FormatBMP, nil
	default:
		return "", fmt.Errorf("%w: %s", model.ErrUnsupportedImage, contentType)
	}
}

// Prepare validates data as a supported image and shrinks oversized uploads
// so providers accept them. Payloads within the upload cap pass through
// untouched; larger ones are resized to at most maxImageWidth wide and
// re-encoded as JPEG, which preserves text readability while cutting size.
func Prepare(data []byte) (Input, error) {
	format, err := DetectFormat(data)
	if err != nil {
		return Input{}, err
	}
	if len(data) <= maxUploadBytes {
		return Input{Image: data, Format: format}, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Input{}, fmt.Errorf("%w: decode: %v", model.ErrUnsupportedImage, err)
	}
	if img.Bounds().Dx() > maxImageWidth {
		img = imaging.Resize(img, maxImageWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return Input{}, fmt.Errorf("encode jpeg: %w", err)
	}
	return Input{Image: buf.Bytes(), Format: FormatJPEG}, nil
}
