package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Entry:
		o.printEntry(v)
	case EntryList:
		o.printEntryList(v)
	case Extraction:
		o.printExtraction(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Entry response type (matches API)
type Entry struct {
	ID        int               `json:"id"`
	Date      string            `json:"date"`
	CreatedAt string            `json:"created_at"`
	Times     map[string]string `json:"times"`
}

// EntryList response type
type EntryList struct {
	Entries []Entry `json:"entries"`
}

// Extraction response type
type Extraction struct {
	RawText string            `json:"raw_text"`
	Times   map[string]string `json:"times"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printEntry(e Entry) {
	fmt.Printf("Record %d (%s)\n", e.ID, e.Date)
	if e.CreatedAt != "" {
		fmt.Printf("Created: %s\n", e.CreatedAt)
	}
	if len(e.Times) > 0 {
		fmt.Println("Times:")
		for _, name := range sortedNames(e.Times) {
			fmt.Printf("  %s: %s\n", name, e.Times[name])
		}
	}
}

func (o *Output) printEntryList(l EntryList) {
	if len(l.Entries) == 0 {
		fmt.Println("No entries")
		return
	}
	fmt.Printf("Entries (%d):\n", len(l.Entries))
	for _, e := range l.Entries {
		fmt.Printf("  #%d %s - %s\n", e.ID, e.Date, formatTimes(e.Times))
	}
}

func (o *Output) printExtraction(x Extraction) {
	if x.RawText != "" {
		fmt.Println("Recognized text:")
		for _, line := range strings.Split(strings.TrimRight(x.RawText, "\n"), "\n") {
			fmt.Printf("  %s\n", line)
		}
	}
	if len(x.Times) == 0 {
		fmt.Println("No times found")
		return
	}
	fmt.Println("Times:")
	for _, name := range sortedNames(x.Times) {
		fmt.Printf("  %s: %s\n", name, x.Times[name])
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}

func sortedNames(times map[string]string) []string {
	names := make([]string, 0, len(times))
	for name := range times {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func formatTimes(times map[string]string) string {
	parts := make([]string, 0, len(times))
	for _, name := range sortedNames(times) {
		parts = append(parts, fmt.Sprintf("%s=%s", name, times[name]))
	}
	return strings.Join(parts, " ")
}
