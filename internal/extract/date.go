package extract

import (
	"regexp"

	"github.com/rkabir/floodlens/internal/model"
	"github.com/rkabir/floodlens/internal/ner"
)

// Temporal prepositions anchor the event date ("on August 21") and keep the
// publication date out of the result. Scans the whole text independently of
// recognizer spans.
var eventDatePattern = regexp.MustCompile(`(?:on|since|from|during)\s+([A-Z][a-z]+\s+\d{1,2}(?:,?\s+\d{4})?)`)

// EventDateResolver picks the most likely event-occurrence date from an
// article, preferring preposition-anchored dates over bare date mentions.
type EventDateResolver struct{}

// NewEventDateResolver creates a new event date resolver
func NewEventDateResolver() *EventDateResolver {
	return &EventDateResolver{}
}

// Resolve returns the first preposition-anchored date in the text. If none
// exists, the first recognizer date span is returned annotated
// "(estimated)". With no dates at all the result is the no-date sentinel.
// Output stays a natural-language substring, never a parsed calendar value.
func (r *EventDateResolver) Resolve(dates []ner.Span, text string) string {
	if len(text) > maxScanBytes {
		text = text[:maxScanBytes]
	}

	if m := eventDatePattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}

	if len(dates) > 0 {
		return dates[0].Text + " (estimated)"
	}

	return model.SentinelNoDate
}
