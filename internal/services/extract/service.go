package extract

import (
	"context"
	"log/slog"

	"github.com/mpautz/crossword-times/internal/model"
	"github.com/mpautz/crossword-times/internal/ocr"
	"github.com/mpautz/crossword-times/internal/services/parser"
)

// Extraction is the outcome of running recognition over one screenshot
type Extraction struct {
	// RawText is the full recognized text, kept for review and debugging
	RawText string
	// Times holds the per-player times found in RawText
	Times model.ExtractedTimes
}

// Service turns screenshots into per-player solve times
type Service struct {
	engine ocr.Engine
	parser parser.ServiceInterface
	logger *slog.Logger
}

// NewService creates a new extraction service. A nil engine means no OCR
// provider is configured; extraction then fails with ErrOCRNotConfigured
// while the rest of the app stays usable.
func NewService(engine ocr.Engine, parserService parser.ServiceInterface, logger *slog.Logger) *Service {
	return &Service{
		engine: engine,
		parser: parserService,
		logger: logger,
	}
}

// ExtractFromImage validates and prepares the image, runs the engine and
// parses times out of the recognized text. Recognized text with no parseable
// times is not an error: the caller gets the raw text and an empty map.
func (s *Service) ExtractFromImage(ctx context.Context, data []byte) (*Extraction, error) {
	if s.engine == nil {
		return nil, model.ErrOCRNotConfigured
	}

	input, err := ocr.Prepare(data)
	if err != nil {
		return nil, err
	}

	text, err := s.engine.ExtractText(ctx, input)
	if err != nil {
		s.logger.Error("text extraction failed",
			slog.String("engine", s.engine.Name()),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	times := s.parser.ParseTimes(text)

	s.logger.Info("image processed",
		slog.String("engine", s.engine.Name()),
		slog.Int("text_length", len(text)),
		slog.Int("times_found", len(times)),
	)

	return &Extraction{
		RawText: text,
		Times:   times,
	}, nil
}

// Interface for dependency injection
type ServiceInterface interface {
	ExtractFromImage(ctx context.Context, data []byte) (*Extraction, error)
}

var _ ServiceInterface = (*Service)(nil)
