package handler

import (
	"errors"
	"net/http"

	"github.com/mpautz/crossword-times/internal/model"
	"github.com/mpautz/crossword-times/internal/services/record"
	"github.com/mpautz/crossword-times/internal/web/middleware"
	"github.com/mpautz/crossword-times/internal/web/templates"
)

// HomeHandler handles the home page
type HomeHandler struct {
	records         *record.Controller
	roster          model.Roster
	storeConfigured bool
	ocrConfigured   bool
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(records *record.Controller, roster model.Roster, storeConfigured, ocrConfigured bool) *HomeHandler {
	return &HomeHandler{
		records:         records,
		roster:          roster,
		storeConfigured: storeConfigured,
		ocrConfigured:   ocrConfigured,
	}
}

// Home renders the home page: upload form, manual entry form and the
// recent-entries table. Missing backends show as warnings, not errors, so
// the page stays usable for whatever is still configured.
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	flash := middleware.GetFlash(r.Context())

	data := templates.HomeData{
		PageData: templates.PageData{
			Title: "Home",
			Flash: flash,
		},
		Today:           h.records.Today(),
		Roster:          h.roster,
		StoreConfigured: h.storeConfigured,
		OCRConfigured:   h.ocrConfigured,
	}

	recs, err := h.records.GetRecentRecords(r.Context(), 0)
	switch {
	case errors.Is(err, model.ErrStoreNotConfigured):
		// The storage warning banner already covers this
	case err != nil:
		data.RecentError = "Could not load recent entries"
	default:
		data.Recent = templates.RecentRowsFromRecords(recs, h.roster)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.Home(w, data); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
