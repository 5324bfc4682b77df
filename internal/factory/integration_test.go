package factory

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mpautz/crossword-times/internal/model"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

func (s *IntegrationSuite) screenshot() []byte {
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for x := 0; x < 32; x++ {
		for y := 0; y < 32; y++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	s.Require().NoError(png.Encode(&buf, img))
	return buf.Bytes()
}

// Test: full flow from screenshot to saved record to recent view
func (s *IntegrationSuite) TestExtractReviewSubmitFlow() {
	s.app.OCRStub.Text = "Mini leaderboard\nMerrick: 3.45\nMoi - 4.50\nSidney 5.1\n"

	// Step 1: Extract times from the screenshot
	extraction, err := s.app.ExtractService.ExtractFromImage(s.ctx, s.screenshot())
	s.Require().NoError(err)
	s.Equal("3.45", extraction.Times["Merrick"])
	s.Equal("4.5", extraction.Times["Moi"])
	s.Equal("5.1", extraction.Times["Sidney"])

	// Step 2: User reviews and corrects one value before submitting
	times := map[string]string{}
	for name, value := range extraction.Times {
		times[name] = value
	}
	times["Moi"] = "4.25"

	record, err := s.app.RecordController.Submit(s.ctx, s.app.RecordController.Today(), times)
	s.Require().NoError(err)
	s.Equal(1, record.ID)
	s.Equal("2025-03-01", record.Date)
	s.Equal("4.25", record.Times["Moi"])

	// Step 3: The record shows up in the recent view
	records, err := s.app.RecordController.GetRecentRecords(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(records, 1)
	s.Equal(record.ID, records[0].ID)
	s.Equal("4.25", records[0].Times["Moi"])
}

// Test: dash and equals forms survive the whole pipeline untouched
func (s *IntegrationSuite) TestAlternateFormsRoundTrip() {
	s.app.OCRStub.Text = "Leaderboard\nMerrick - 1.23\nVy = 4.56"

	extraction, err := s.app.ExtractService.ExtractFromImage(s.ctx, s.screenshot())
	s.Require().NoError(err)
	s.Equal(model.ExtractedTimes{"Merrick": "1.23", "Vy": "4.56"}, extraction.Times)

	record, err := s.app.RecordController.Submit(s.ctx, "2024-01-01", extraction.Times)
	s.Require().NoError(err)
	s.Equal(1, record.ID)
	s.Equal("2024-01-01", record.Date)
	s.Equal("2025-03-01T12:00:00Z", record.CreatedAt)
	s.Len(record.Times, 2)
}

// Test: manual entry without any screenshot
func (s *IntegrationSuite) TestManualEntryFlow() {
	record, err := s.app.RecordController.Submit(s.ctx, "2025-03-01", map[string]string{
		"Lauren": "2.75",
		"Vy":     "",
	})
	s.Require().NoError(err)
	s.Len(record.Times, 1)
	s.Equal("2.75", record.Times["Lauren"])
}

// Test: successive submissions get successive IDs with timestamps from the clock
func (s *IntegrationSuite) TestSubmissionSequence() {
	first, err := s.app.RecordController.Submit(s.ctx, "2025-03-01", map[string]string{"Chris": "6.0"})
	s.Require().NoError(err)

	s.app.MockClock.Advance(24 * time.Hour)

	second, err := s.app.RecordController.Submit(s.ctx, "2025-03-02", map[string]string{"Chris": "5.5"})
	s.Require().NoError(err)

	s.Equal(1, first.ID)
	s.Equal(2, second.ID)
	s.Equal("2025-03-01T12:00:00Z", first.CreatedAt)
	s.Equal("2025-03-02T12:00:00Z", second.CreatedAt)
}

// Test: OCR failure leaves the store untouched
func (s *IntegrationSuite) TestExtractionFailureSavesNothing() {
	s.app.OCRStub.Err = model.ErrOCRFailed

	_, err := s.app.ExtractService.ExtractFromImage(s.ctx, s.screenshot())
	s.ErrorIs(err, model.ErrOCRFailed)

	records, err := s.app.RecordController.GetRecentRecords(s.ctx, 10)
	s.Require().NoError(err)
	s.Empty(records)
}

// Test: factory defaults
func (s *IntegrationSuite) TestNewDefaults() {
	app, err := New(Config{})
	s.Require().NoError(err)

	s.NotNil(app.Storage, "memory storage should be the default")
	s.Nil(app.OCREngine, "ocrspace without a key should leave the engine unset")
	s.Equal(model.DefaultRoster, app.Roster)
}

func (s *IntegrationSuite) TestNewRejectsUnknownStorageType() {
	_, err := New(Config{StorageType: "cassandra"})
	s.Error(err)
}

func (s *IntegrationSuite) TestNewRejectsUnknownOCRProvider() {
	_, err := New(Config{OCRProvider: "clippy"})
	s.Error(err)
}
