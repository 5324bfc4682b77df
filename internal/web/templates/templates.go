package templates

import (
	"embed"
	"html/template"
	"io"

	"github.com/mpautz/crossword-times/internal/model"
)

//go:embed *.gohtml
var files embed.FS

var (
	home   = template.Must(template.ParseFS(files, "layout.gohtml", "home.gohtml"))
	review = template.Must(template.ParseFS(files, "layout.gohtml", "review.gohtml"))
)

// FlashMessage is a one-shot notice carried across a redirect
type FlashMessage struct {
	Type    string
	Message string
}

// PageData holds fields shared by all pages
type PageData struct {
	Title string
	Flash *FlashMessage
}

// RecentRow is one saved record flattened for the recent-entries table:
// one cell per roster player, empty when the player has no time that day
type RecentRow struct {
	ID    int
	Date  string
	Cells []string
}

// RecentRowsFromRecords flattens records against the roster column order
func RecentRowsFromRecords(records []*model.Record, roster model.Roster) []RecentRow {
	rows := make([]RecentRow, len(records))
	for i, rec := range records {
		cells := make([]string, len(roster))
		for j, name := range roster {
			cells[j] = rec.Times[name]
		}
		rows[i] = RecentRow{
			ID:    rec.ID,
			Date:  rec.Date,
			Cells: cells,
		}
	}
	return rows
}

// HomeData is the view model for the home page
type HomeData struct {
	PageData
	Today           string
	Roster          model.Roster
	Recent          []RecentRow
	RecentError     string
	StoreConfigured bool
	OCRConfigured   bool
}

// ReviewData is the view model for the extraction review page
type ReviewData struct {
	PageData
	Date    string
	RawText string
	Roster  model.Roster
	Times   map[string]string
	Warning string
}

// Home renders the home page
func Home(w io.Writer, data HomeData) error {
	return home.ExecuteTemplate(w, "layout", data)
}

// Review renders the extraction review page
func Review(w io.Writer, data ReviewData) error {
	return review.ExecuteTemplate(w, "layout", data)
}
