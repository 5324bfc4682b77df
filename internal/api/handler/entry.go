package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/mpautz/crossword-times/internal/api/request"
	"github.com/mpautz/crossword-times/internal/api/response"
	"github.com/mpautz/crossword-times/internal/services/record"
)

// EntryHandler handles leaderboard entry endpoints
type EntryHandler struct {
	records *record.Controller
}

// NewEntryHandler creates a new entry handler
func NewEntryHandler(records *record.Controller) *EntryHandler {
	return &EntryHandler{
		records: records,
	}
}

// Create handles POST /api/v1/entries
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Date == "" {
		WriteError(w, NewInvalidRequestError("date is required"))
		return
	}

	rec, err := h.records.Submit(r.Context(), req.Date, req.Times)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.EntryFromModel(rec))
}

// List handles GET /api/v1/entries
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			WriteError(w, NewInvalidRequestError("limit must be a positive integer"))
			return
		}
		limit = n
	}

	records, err := h.records.GetRecentRecords(r.Context(), limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.EntryListFromModel(records))
}
