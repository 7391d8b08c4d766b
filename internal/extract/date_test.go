package extract

import (
	"testing"

	"github.com/rkabir/floodlens/internal/model"
	"github.com/rkabir/floodlens/internal/ner"
)

func TestEventDateResolver_PrepositionAnchored(t *testing.T) {
	resolver := NewEventDateResolver()

	tests := []struct {
		text string
		want string
	}{
		{"The embankment collapsed on August 21 after days of rain.", "August 21"},
		{"Villages have been under water since August 18, 2024 according to officials.", "August 18, 2024"},
		{"The river has been rising from July 30 onwards.", "July 30"},
		{"Evacuations continued during September 2 in the north.", "September 2"},
	}

	for _, tt := range tests {
		if got := resolver.Resolve(nil, tt.text); got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestEventDateResolver_FirstAnchoredMatchWins(t *testing.T) {
	resolver := NewEventDateResolver()

	got := resolver.Resolve(nil, "Rain fell on August 10. More rain is expected on August 15.")
	if got != "August 10" {
		t.Errorf("Resolve = %q, want %q", got, "August 10")
	}
}

func TestEventDateResolver_FallbackToRecognizerDate(t *testing.T) {
	resolver := NewEventDateResolver()

	dates := []ner.Span{
		{Text: "last Tuesday", Label: ner.LabelDate},
		{Text: "August 30", Label: ner.LabelDate},
	}

	got := resolver.Resolve(dates, "The area remained flooded, officials said.")
	if got != "last Tuesday (estimated)" {
		t.Errorf("Resolve = %q, want %q", got, "last Tuesday (estimated)")
	}
}

func TestEventDateResolver_NoDateSentinel(t *testing.T) {
	resolver := NewEventDateResolver()

	got := resolver.Resolve(nil, "The area remained flooded, officials said.")
	if got != model.SentinelNoDate {
		t.Errorf("Resolve = %q, want %q", got, model.SentinelNoDate)
	}
}

func TestEventDateResolver_PatternIndependentOfSpans(t *testing.T) {
	resolver := NewEventDateResolver()

	// An anchored date in the text wins even when recognizer spans exist
	dates := []ner.Span{{Text: "Sunday", Label: ner.LabelDate}}
	got := resolver.Resolve(dates, "Floodwater entered the town on August 21.")
	if got != "August 21" {
		t.Errorf("Resolve = %q, want %q", got, "August 21")
	}
}
