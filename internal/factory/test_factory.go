package factory

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/mpautz/crossword-times/internal/dependencies/mocks"
	"github.com/mpautz/crossword-times/internal/model"
	"github.com/mpautz/crossword-times/internal/ocr"
	"github.com/mpautz/crossword-times/internal/storage/memory"
)

// StubEngine is a controllable OCR engine for tests: it records the last
// input and returns canned text or a canned error.
type StubEngine struct {
	Text      string
	Err       error
	LastInput ocr.Input
}

func (s *StubEngine) Name() string {
	return "stub"
}

func (s *StubEngine) ExtractText(ctx context.Context, input ocr.Input) (string, error) {
	s.LastInput = input
	if s.Err != nil {
		return "", s.Err
	}
	return s.Text, nil
}

var _ ocr.Engine = (*StubEngine)(nil)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
	OCRStub   *StubEngine
	MemStore  *memory.Storage
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	stub := &StubEngine{}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	app := newWithDependencies(store, stub, model.DefaultRoster, mockClock, logger)

	return &TestApp{
		App:       app,
		MockClock: mockClock,
		OCRStub:   stub,
		MemStore:  store,
	}
}
