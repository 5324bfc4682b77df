package ocr

import "context"

// Format identifies the content type of an input image.
type Format string

const (
	FormatJPEG Format = "image/jpeg"
	FormatPNG  Format = "image/png"
	FormatBMP  Format = "image/bmp"
)

// Input is a single prepared image submitted for text extraction.
type Input struct {
	// Image is the encoded image payload in the format declared by Format.
	Image []byte
	// Format declares the image content type (e.g. image/png).
	Format Format
}

// Engine is the provider contract: one image in, raw text out. Implementations
// must not retain the input after returning.
type Engine interface {
	Name() string
	ExtractText(ctx context.Context, input Input) (string, error)
}
