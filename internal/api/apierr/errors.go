package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mpautz/crossword-times/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInvalidTime        = "INVALID_TIME"
	CodeInvalidDate        = "INVALID_DATE"
	CodeEmptySubmission    = "EMPTY_SUBMISSION"
	CodeUnsupportedImage   = "UNSUPPORTED_IMAGE"
	CodeRecordNotFound     = "RECORD_NOT_FOUND"
	CodeOCRNotConfigured   = "OCR_NOT_CONFIGURED"
	CodeStoreNotConfigured = "STORE_NOT_CONFIGURED"
	CodeOCRFailed          = "OCR_FAILED"
	CodeStoreFailed        = "STORE_FAILED"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrInvalidTime):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidTime, "Times must be positive decimal numbers"}}
	case errors.Is(err, model.ErrInvalidDate):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidDate, "Date must be in YYYY-MM-DD format"}}
	case errors.Is(err, model.ErrEmptySubmission):
		return &httpError{http.StatusBadRequest, APIError{CodeEmptySubmission, "At least one player time is required"}}
	case errors.Is(err, model.ErrUnsupportedImage):
		return &httpError{http.StatusUnsupportedMediaType, APIError{CodeUnsupportedImage, "Image must be JPEG, PNG or BMP"}}
	case errors.Is(err, model.ErrRecordNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeRecordNotFound, "Record not found"}}
	case errors.Is(err, model.ErrOCRNotConfigured):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeOCRNotConfigured, "Image extraction is not configured"}}
	case errors.Is(err, model.ErrStoreNotConfigured):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeStoreNotConfigured, "Record storage is not configured"}}
	case errors.Is(err, model.ErrOCRFailed):
		return &httpError{http.StatusBadGateway, APIError{CodeOCRFailed, "Image extraction failed"}}
	case errors.Is(err, model.ErrStoreFailed):
		return &httpError{http.StatusBadGateway, APIError{CodeStoreFailed, "Record storage failed"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
