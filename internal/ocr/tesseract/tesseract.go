package tesseract

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"

	"github.com/mpautz/crossword-times/internal/model"
	"github.com/mpautz/crossword-times/internal/ocr"
)

// Engine implements ocr.Engine with a local Tesseract install via gosseract.
// A fresh client is created per call; gosseract clients are not safe for
// concurrent use.
type Engine struct {
	clientFactory func() *gosseract.Client
}

// New creates a Tesseract-backed engine
func New() *Engine {
	return &Engine{clientFactory: gosseract.NewClient}
}

// Name returns the engine identifier
func (e *Engine) Name() string {
	return "tesseract"
}

// ExtractText runs local recognition on the input image
func (e *Engine) ExtractText(ctx context.Context, input ocr.Input) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	c := e.clientFactory()
	defer c.Close()

	if err := c.SetImageFromBytes(input.Image); err != nil {
		return "", fmt.Errorf("%w: set image: %v", model.ErrOCRFailed, err)
	}
	if err := c.SetLanguage("eng"); err != nil {
		return "", fmt.Errorf("%w: set language: %v", model.ErrOCRFailed, err)
	}
	// Keep column gaps so a player's time stays on the same line as the name
	if err := c.SetVariable(gosseract.SettableVariable("preserve_interword_spaces"), "1"); err != nil {
		return "", fmt.Errorf("%w: set variable: %v", model.ErrOCRFailed, err)
	}

	text, err := c.Text()
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrOCRFailed, err)
	}
	return text, nil
}

var _ ocr.Engine = (*Engine)(nil)
