package ocrspace

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mpautz/crossword-times/internal/model"
	"github.com/mpautz/crossword-times/internal/ocr"
)

// DefaultBaseURL is the public OCR.space parse endpoint
const DefaultBaseURL = "https://api.ocr.space/parse/image"

const requestTimeout = 30 * time.Second

// Config holds the settings for the OCR.space client
type Config struct {
	// BaseURL overrides the parse endpoint, mainly for tests
	BaseURL string
	APIKey  string
}

// Client implements ocr.Engine against the OCR.space HTTP API. Images are
// submitted inline as base64 data URIs with table layout analysis enabled,
// which suits leaderboard screenshots.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New creates an OCR.space client from config
func New(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// Name returns the engine identifier
func (c *Client) Name() string {
	return "ocrspace"
}

// parseResponse is the subset of the OCR.space response the client reads
type parseResponse struct {
	ParsedResults []struct {
		ParsedText string `json:"ParsedText"`
	} `json:"ParsedResults"`
	OCRExitCode           int          `json:"OCRExitCode"`
	IsErroredOnProcessing bool         `json:"IsErroredOnProcessing"`
	ErrorMessage          errorMessage `json:"ErrorMessage"`
}

// errorMessage tolerates the two shapes the API uses: a bare string and a
// list of strings.
type errorMessage []string

func (m *errorMessage) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*m = errorMessage{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*m = many
	return nil
}

// ExtractText submits the image for recognition and returns the parsed text
// of all result pages concatenated in order.
func (c *Client) ExtractText(ctx context.Context, input ocr.Input) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("%w: ocrspace api key", model.ErrOCRNotConfigured)
	}

	encoded := base64.StdEncoding.EncodeToString(input.Image)
	form := url.Values{}
	form.Set("apikey", c.apiKey)
	form.Set("base64Image", fmt.Sprintf("data:%s;base64,%s", input.Format, encoded))
	form.Set("language", "eng")
	form.Set("scale", "true")
	form.Set("isTable", "true")
	form.Set("OCREngine", "2")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", model.ErrOCRFailed, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrOCRFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: unexpected status %d", model.ErrOCRFailed, resp.StatusCode)
	}

	var parsed parseResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", model.ErrOCRFailed, err)
	}

	// Exit code 1 is the only success state
	if parsed.OCRExitCode != 1 {
		reason := strings.Join(parsed.ErrorMessage, "; ")
		if reason == "" {
			reason = fmt.Sprintf("exit code %d", parsed.OCRExitCode)
		}
		return "", fmt.Errorf("%w: %s", model.ErrOCRFailed, reason)
	}

	var text strings.Builder
	for _, result := range parsed.ParsedResults {
		text.WriteString(result.ParsedText)
	}
	return text.String(), nil
}

var _ ocr.Engine = (*Client)(nil)
