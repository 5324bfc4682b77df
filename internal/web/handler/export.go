package handler

import (
	"net/http"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/mpautz/crossword-times/internal/model"
	"github.com/mpautz/crossword-times/internal/services/record"
	"github.com/mpautz/crossword-times/internal/web/middleware"
)

// exportLimit is how many records the spreadsheet download includes
const exportLimit = 100

// ExportHandler serves recent entries as a spreadsheet
type ExportHandler struct {
	records *record.Controller
	roster  model.Roster
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(records *record.Controller, roster model.Roster) *ExportHandler {
	return &ExportHandler{
		records: records,
		roster:  roster,
	}
}

// Export handles GET /export.xlsx
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	recs, err := h.records.GetRecentRecords(r.Context(), exportLimit)
	if err != nil {
		middleware.SetFlash(w, "error", "Could not load entries for export")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	buf, err := h.buildWorkbook(recs)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="crossword-times.xlsx"`)
	_, _ = w.Write(buf)
}

func (h *ExportHandler) buildWorkbook(recs []*model.Record) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := "Times"
	_, _ = f.NewSheet(sheet)
	_ = f.DeleteSheet("Sheet1")

	headers := append([]string{"ID", "Date", "Created"}, h.roster...)
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, header)
	}

	for i, rec := range recs {
		row := i + 2
		cell, _ := excelize.CoordinatesToCellName(1, row)
		_ = f.SetCellValue(sheet, cell, rec.ID)
		cell, _ = excelize.CoordinatesToCellName(2, row)
		_ = f.SetCellValue(sheet, cell, rec.Date)
		cell, _ = excelize.CoordinatesToCellName(3, row)
		_ = f.SetCellValue(sheet, cell, rec.CreatedAt)

		for j, name := range h.roster {
			cell, _ = excelize.CoordinatesToCellName(j+4, row)
			_ = f.SetCellValue(sheet, cell, timeCell(rec.Times[name]))
		}
	}

	_ = f.SetColWidth(sheet, "B", "C", 20)

	out, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// timeCell writes times as numbers where possible so the spreadsheet can
// sort and average them
func timeCell(value string) any {
	if value == "" {
		return ""
	}
	if parsed, err := strconv.ParseFloat(value, 64); err == nil {
		return parsed
	}
	return value
}
