package extract

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mpautz/crossword-times/internal/model"
	"github.com/mpautz/crossword-times/internal/ocr"
	"github.com/mpautz/crossword-times/internal/services/parser"
	"github.com/mpautz/crossword-times/internal/testutil"
)

// fakeEngine returns canned text or a canned error
type fakeEngine struct {
	text      string
	err       error
	lastInput ocr.Input
}

func (f *fakeEngine) Name() string {
	return "fake"
}

func (f *fakeEngine) ExtractText(ctx context.Context, input ocr.Input) (string, error) {
	f.lastInput = input
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type ServiceSuite struct {
	suite.Suite
	engine  *fakeEngine
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.engine = &fakeEngine{}
	s.service = NewService(s.engine, parser.New(model.DefaultRoster), testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) pngImage() []byte {
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	for x := 0; x < 20; x++ {
		for y := 0; y < 20; y++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	s.Require().NoError(png.Encode(&buf, img))
	return buf.Bytes()
}

func (s *ServiceSuite) TestExtractFromImage() {
	s.engine.text = "Mini results\nMerrick: 3.45\nMoi - 4.5\n"

	extraction, err := s.service.ExtractFromImage(s.ctx, s.pngImage())
	s.Require().NoError(err)

	s.Equal(s.engine.text, extraction.RawText)
	s.Equal("3.45", extraction.Times["Merrick"])
	s.Equal("4.5", extraction.Times["Moi"])
	s.Len(extraction.Times, 2)

	s.Equal(ocr.FormatPNG, s.engine.lastInput.Format)
	s.NotEmpty(s.engine.lastInput.Image)
}

func (s *ServiceSuite) TestExtractFromImageNoTimesFound() {
	s.engine.text = "nothing recognizable here"

	extraction, err := s.service.ExtractFromImage(s.ctx, s.pngImage())
	s.Require().NoError(err)

	s.Equal("nothing recognizable here", extraction.RawText)
	s.Empty(extraction.Times)
}

func (s *ServiceSuite) TestExtractFromImageEngineFailure() {
	s.engine.err = model.ErrOCRFailed

	_, err := s.service.ExtractFromImage(s.ctx, s.pngImage())
	s.ErrorIs(err, model.ErrOCRFailed)
}

func (s *ServiceSuite) TestExtractFromImageRejectsNonImage() {
	_, err := s.service.ExtractFromImage(s.ctx, []byte("definitely not an image"))
	s.ErrorIs(err, model.ErrUnsupportedImage)
}

func (s *ServiceSuite) TestExtractFromImageNoEngine() {
	service := NewService(nil, parser.New(model.DefaultRoster), testutil.NopLogger())

	_, err := service.ExtractFromImage(s.ctx, s.pngImage())
	s.ErrorIs(err, model.ErrOCRNotConfigured)
}
