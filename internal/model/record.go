package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the calendar-date form used throughout: YYYY-MM-DD.
const DateLayout = "2006-01-02"

// ExtractedTimes maps a roster player name to a solve time rendered as a
// decimal string. Times stay strings end to end so that a value survives the
// round trip through the store byte for byte.
type ExtractedTimes map[string]string

// Clone returns a copy of the map, or nil for a nil receiver.
func (t ExtractedTimes) Clone() ExtractedTimes {
	if t == nil {
		return nil
	}
	out := make(ExtractedTimes, len(t))
	for name, v := range t {
		out[name] = v
	}
	return out
}

// Record is one persisted leaderboard row: the date the puzzle was solved
// plus the times of every player who appeared in the submission. Players
// absent from Times have no time recorded for that date.
type Record struct {
	ID        int            `json:"id"`
	Date      string         `json:"date"`
	CreatedAt string         `json:"created_at"`
	Times     ExtractedTimes `json:"times,omitempty"`
}

// NextID is the identifier rule for new records: one past the current
// maximum, or 1 when the store holds no records yet.
func NextID(maxID int, found bool) int {
	if !found {
		return 1
	}
	return maxID + 1
}

// ValidateTime checks a user-supplied solve time. A valid time parses as a
// finite, non-negative decimal number.
func ValidateTime(value string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTime, value)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("%w: %q", ErrInvalidTime, value)
	}
	return nil
}

// NormalizeTime renders a parsed solve time in canonical decimal form, with
// no trailing zeros: 3.50 becomes 3.5, 7.0 becomes 7.
func NormalizeTime(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ValidateDate checks that value is a real calendar date in YYYY-MM-DD form.
func ValidateDate(value string) error {
	if _, err := time.Parse(DateLayout, value); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return nil
}
