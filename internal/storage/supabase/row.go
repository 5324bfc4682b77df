package supabase

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/mpautz/crossword-times/internal/model"
)

// Rows in the crossword_times table are flat: fixed id, date and created_at
// columns plus one text column per roster player. encodeRow and decodeRow
// translate between that shape and model.Record.

func encodeRow(record *model.Record) map[string]any {
	row := make(map[string]any, len(record.Times)+3)
	row["id"] = record.ID
	row["date"] = record.Date
	row["created_at"] = record.CreatedAt
	for name, value := range record.Times {
		row[name] = value
	}
	return row
}

func decodeRow(raw map[string]json.RawMessage) (*model.Record, error) {
	record := &model.Record{Times: make(model.ExtractedTimes)}

	for column, value := range raw {
		switch column {
		case "id":
			id, err := decodeID(value)
			if err != nil {
				return nil, err
			}
			record.ID = id
		case "date":
			record.Date = decodeText(value)
		case "created_at":
			record.CreatedAt = decodeText(value)
		default:
			// Any other column is a player; null means no time that day
			if text := decodeText(value); text != "" {
				record.Times[column] = text
			}
		}
	}
	return record, nil
}

// decodeID tolerates both number and string forms of the id column
func decodeID(raw json.RawMessage) (int, error) {
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strconv.Atoi(s)
	}
	return 0, fmt.Errorf("unrecognized id value %s", raw)
}

// decodeText renders a JSON scalar as a string, with null becoming ""
func decodeText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return model.NormalizeTime(f)
	}
	return ""
}
