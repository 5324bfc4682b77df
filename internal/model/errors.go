package model

import "errors"

// Common errors used across the application
var (
	// Submission errors
	ErrInvalidTime     = errors.New("time is not a valid number")
	ErrInvalidDate     = errors.New("date is not in YYYY-MM-DD form")
	ErrEmptySubmission = errors.New("submission contains no player times")

	// Image errors
	ErrUnsupportedImage = errors.New("unsupported image format")

	// OCR errors
	ErrOCRNotConfigured = errors.New("ocr provider is not configured")
	ErrOCRFailed        = errors.New("ocr extraction failed")

	// Store errors
	ErrStoreNotConfigured = errors.New("store is not configured")
	ErrStoreFailed        = errors.New("store request failed")
	ErrRecordNotFound     = errors.New("record not found")
)
