package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/mpautz/crossword-times/internal/model"
	"github.com/mpautz/crossword-times/internal/services/extract"
	"github.com/mpautz/crossword-times/internal/services/record"
	"github.com/mpautz/crossword-times/internal/web/middleware"
	"github.com/mpautz/crossword-times/internal/web/templates"
)

// maxUploadBytes caps screenshot uploads. Screenshots are far smaller; the
// OCR layer downscales anything over its provider's payload cap.
const maxUploadBytes = 10 << 20

// EntryHandler handles screenshot processing and record submission
type EntryHandler struct {
	extractService *extract.Service
	records        *record.Controller
	roster         model.Roster
}

// NewEntryHandler creates a new EntryHandler
func NewEntryHandler(extractService *extract.Service, records *record.Controller, roster model.Roster) *EntryHandler {
	return &EntryHandler{
		extractService: extractService,
		records:        records,
		roster:         roster,
	}
}

// Process handles a screenshot upload: runs extraction and renders the
// review page with the recognized times filled in. A provider failure still
// renders the review page, just with empty times, so the day's entry can be
// completed by hand.
func (h *EntryHandler) Process(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, _, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		middleware.SetFlash(w, "error", "Choose a screenshot to upload first")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err != nil {
		middleware.SetFlash(w, "error", "Could not read the uploaded screenshot")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	defer func() { _ = file.Close() }()

	date := r.FormValue("date")
	if date == "" {
		date = h.records.Today()
	}

	data, err := io.ReadAll(file)
	if err != nil {
		middleware.SetFlash(w, "error", "Could not read the uploaded screenshot")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	reviewData := templates.ReviewData{
		PageData: templates.PageData{
			Title: "Review",
		},
		Date:   date,
		Roster: h.roster,
		Times:  map[string]string{},
	}

	extraction, err := h.extractService.ExtractFromImage(r.Context(), data)
	switch {
	case errors.Is(err, model.ErrUnsupportedImage):
		middleware.SetFlash(w, "error", "That file is not a supported image; upload a jpg, png or bmp")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	case errors.Is(err, model.ErrOCRNotConfigured):
		middleware.SetFlash(w, "error", "Image extraction is not configured; enter the times manually")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	case err != nil:
		// Extraction failed but the day still needs an entry: fall through
		// to an empty review grid
		reviewData.Warning = "Could not read times from the screenshot; fill them in manually"
	default:
		reviewData.RawText = extraction.RawText
		reviewData.Times = extraction.Times
		if len(extraction.Times) == 0 {
			reviewData.Warning = "No times were found in the screenshot; fill them in manually"
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.Review(w, reviewData); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// Submit handles the review and manual entry forms: one time field per
// roster player, blank fields skipped
func (h *EntryHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.SetFlash(w, "error", "Invalid form data")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	date := r.FormValue("date")
	times := make(map[string]string, len(h.roster))
	for _, name := range h.roster {
		times[name] = r.FormValue("time_" + name)
	}

	rec, err := h.records.Submit(r.Context(), date, times)
	if err != nil {
		middleware.SetFlash(w, "error", submitErrorMessage(err))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	middleware.SetFlash(w, "success", fmt.Sprintf("Saved record %d for %s", rec.ID, rec.Date))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func submitErrorMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrInvalidDate):
		return "Enter the date as YYYY-MM-DD"
	case errors.Is(err, model.ErrInvalidTime):
		return "Times must be positive numbers like 3.45"
	case errors.Is(err, model.ErrEmptySubmission):
		return "Enter at least one player's time"
	case errors.Is(err, model.ErrStoreNotConfigured):
		return "Record storage is not configured, the entry was not saved"
	default:
		return "Could not save the record"
	}
}
