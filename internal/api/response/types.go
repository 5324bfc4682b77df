package response

import (
	"github.com/mpautz/crossword-times/internal/model"
	"github.com/mpautz/crossword-times/internal/services/extract"
)

// Entry represents a saved record in API responses
type Entry struct {
	ID        int               `json:"id"`
	Date      string            `json:"date"`
	CreatedAt string            `json:"created_at"`
	Times     map[string]string `json:"times"`
}

// EntryFromModel converts a model.Record to a response Entry
func EntryFromModel(rec *model.Record) Entry {
	times := make(map[string]string, len(rec.Times))
	for name, value := range rec.Times {
		times[name] = value
	}
	return Entry{
		ID:        rec.ID,
		Date:      rec.Date,
		CreatedAt: rec.CreatedAt,
		Times:     times,
	}
}

// EntryList is the response for listing recent entries
type EntryList struct {
	Entries []Entry `json:"entries"`
}

// EntryListFromModel converts a slice of model.Record
// A nil slice becomes an empty list, never null
func EntryListFromModel(recs []*model.Record) EntryList {
	entries := make([]Entry, len(recs))
	for i, rec := range recs {
		entries[i] = EntryFromModel(rec)
	}
	return EntryList{Entries: entries}
}

// Extraction is the response for running recognition over an image
type Extraction struct {
	RawText string            `json:"raw_text"`
	Times   map[string]string `json:"times"`
}

// ExtractionFromModel converts an extract.Extraction
func ExtractionFromModel(ex *extract.Extraction) Extraction {
	times := make(map[string]string, len(ex.Times))
	for name, value := range ex.Times {
		times[name] = value
	}
	return Extraction{
		RawText: ex.RawText,
		Times:   times,
	}
}
