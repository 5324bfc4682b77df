package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/mpautz/crossword-times/internal/model"
	"github.com/mpautz/crossword-times/internal/ocr"
)

const modelName = "gemini-2.5-flash"

// transcribePrompt asks for a verbatim transcription so the downstream parser
// sees text shaped like any other OCR output.
const transcribePrompt = `Transcribe all text visible in this image exactly as written, line by line.
Output the raw text only, with no commentary and no formatting.`

// Engine implements ocr.Engine using Gemini as a vision transcriber
type Engine struct {
	genModel *genai.GenerativeModel
}

// New creates a Gemini-backed engine
func New(ctx context.Context, apiKey string) (*Engine, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: gemini api key", model.ErrOCRNotConfigured)
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	genModel := client.GenerativeModel(modelName)
	genModel.ResponseMIMEType = "text/plain"
	// Low temperature: transcription should be deterministic
	genModel.SetTemperature(0.1)

	return &Engine{genModel: genModel}, nil
}

// Name returns the engine identifier
func (e *Engine) Name() string {
	return "gemini"
}

// ExtractText asks the model to transcribe the image verbatim
func (e *Engine) ExtractText(ctx context.Context, input ocr.Input) (string, error) {
	parts := []genai.Part{
		genai.ImageData(strings.TrimPrefix(string(input.Format), "image/"), input.Image),
		genai.Text(transcribePrompt),
	}

	resp, err := e.genModel.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrOCRFailed, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty response", model.ErrOCRFailed)
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("%w: unexpected response part", model.ErrOCRFailed)
	}
	return string(text), nil
}

var _ ocr.Engine = (*Engine)(nil)
