package parser

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/mpautz/crossword-times/internal/model"
)

// timeCapture matches a decimal solve time like 3.45. Whole numbers without
// a decimal point are deliberately not matched: bare integers in OCR text
// are usually dates, ranks or noise.
const timeCapture = `(\d+\.\d+)`

// DefaultTemplates are the recognized "name, then time" layouts, tried in
// order per player. Each template is a regexp fragment with a single %s slot
// for the quoted player name. The first template whose capture converts to a
// number wins; later templates are not consulted for that player.
var DefaultTemplates = []string{
	`%s:\s*` + timeCapture,
	`%s\s*-\s*` + timeCapture,
	`%s\s+` + timeCapture,
	`%s's time:\s*` + timeCapture,
	`%s\s*=\s*` + timeCapture,
}

// Service extracts per-player solve times from free-form OCR text
type Service struct {
	roster   model.Roster
	patterns map[string][]*regexp.Regexp
}

// New creates a parser for the given roster using DefaultTemplates
func New(roster model.Roster) *Service {
	s, err := NewWithTemplates(roster, DefaultTemplates)
	if err != nil {
		// DefaultTemplates are static and known to compile
		panic(err)
	}
	return s
}

// NewWithTemplates creates a parser with a custom template list. Templates
// are compiled once per roster name, case-insensitively, with the name
// quoted so punctuation in names is matched literally.
func NewWithTemplates(roster model.Roster, templates []string) (*Service, error) {
	patterns := make(map[string][]*regexp.Regexp, len(roster))
	for _, name := range roster {
		quoted := regexp.QuoteMeta(name)
		compiled := make([]*regexp.Regexp, 0, len(templates))
		for _, tmpl := range templates {
			re, err := regexp.Compile(`(?i)` + fmt.Sprintf(tmpl, quoted))
			if err != nil {
				return nil, fmt.Errorf("compiling template %q for %q: %w", tmpl, name, err)
			}
			compiled = append(compiled, re)
		}
		patterns[name] = compiled
	}
	return &Service{
		roster:   roster,
		patterns: patterns,
	}, nil
}

// Roster returns the roster this parser was built for
func (s *Service) Roster() model.Roster {
	return s.roster
}

// ParseTimes scans text for each roster player's solve time. Players with no
// recognizable time are simply absent from the result; a nil or empty text
// yields an empty map, never an error.
func (s *Service) ParseTimes(text string) model.ExtractedTimes {
	times := make(model.ExtractedTimes)
	for _, name := range s.roster {
		if value, ok := s.parsePlayer(name, text); ok {
			times[name] = value
		}
	}
	return times
}

// parsePlayer tries each template in order and returns the first capture
// that converts to a number, normalized to minimal decimal form.
func (s *Service) parsePlayer(name, text string) (string, bool) {
	for _, re := range s.patterns[name] {
		match := re.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		value, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			// Treat an unconvertible capture like a non-match and keep going
			continue
		}
		return model.NormalizeTime(value), true
	}
	return "", false
}

// Interface for dependency injection
type ServiceInterface interface {
	Roster() model.Roster
	ParseTimes(text string) model.ExtractedTimes
}

var _ ServiceInterface = (*Service)(nil)
