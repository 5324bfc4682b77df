package handler

import (
	"io"
	"net/http"

	"github.com/mpautz/crossword-times/internal/api/response"
	"github.com/mpautz/crossword-times/internal/services/extract"
)

// maxUploadBytes caps extract request bodies. Screenshots are far smaller;
// the OCR layer downscales anything over its provider's payload cap.
const maxUploadBytes = 10 << 20

// ExtractHandler handles image extraction endpoints
type ExtractHandler struct {
	extractService *extract.Service
}

// NewExtractHandler creates a new extract handler
func NewExtractHandler(extractService *extract.Service) *ExtractHandler {
	return &ExtractHandler{
		extractService: extractService,
	}
}

// Extract handles POST /api/v1/extract
// Accepts a multipart form with an "image" file and returns the recognized
// text plus the per-player times found in it. Nothing is persisted.
func (h *ExtractHandler) Extract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, _, err := r.FormFile("image")
	if err != nil {
		WriteError(w, NewInvalidRequestError("an image file upload is required"))
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		WriteError(w, NewInvalidRequestError("could not read the uploaded image"))
		return
	}

	extraction, err := h.extractService.ExtractFromImage(r.Context(), data)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ExtractionFromModel(extraction))
}
