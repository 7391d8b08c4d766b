package ner

import (
	"reflect"
	"strings"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"Kazipur upazila flooded.", []string{"Kazipur", "upazila", "flooded", "."}},
		{"the sub-district of Sadar", []string{"the", "sub-district", "of", "Sadar"}},
		{"Sirajganj, Tangail, and Bogra", []string{"Sirajganj", ",", "Tangail", ",", "and", "Bogra"}},
		{"", nil},
	}

	for _, tt := range tests {
		if got := Tokenize(tt.text); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestDocument_Context(t *testing.T) {
	text := "Early this morning officials said the river at Kazipur upazila rose sharply and kept rising"
	doc := &Document{Tokens: Tokenize(text)}

	start, end, ok := alignSpan(doc.Tokens, "Kazipur")
	if !ok {
		t.Fatal("span not aligned")
	}
	span := Span{Text: "Kazipur", Label: LabelPlace, Start: start, End: end}

	window := doc.Context(span, 5)
	if !strings.Contains(window, "upazila") {
		t.Errorf("window %q should contain the following keyword", window)
	}
	if strings.Contains(window, "morning") {
		t.Errorf("window %q extends too far left", window)
	}
}

func TestDocument_ContextClamped(t *testing.T) {
	doc := &Document{Tokens: Tokenize("Bogra district flooded")}
	span := Span{Text: "Bogra", Label: LabelPlace, Start: 0, End: 1}

	// Window extends past both ends; clamps to the whole document
	window := doc.Context(span, 10)
	if window != "Bogra district flooded" {
		t.Errorf("window = %q, want the full document", window)
	}
}

func TestDocument_PlacesAndDates(t *testing.T) {
	doc := &Document{
		Tokens: Tokenize("Rain hit Bogra on August 21"),
		Spans: []Span{
			{Text: "Bogra", Label: LabelPlace, Start: 2, End: 3},
			{Text: "August 21", Label: LabelDate, Start: 4, End: 6},
		},
	}

	if places := doc.Places(); len(places) != 1 || places[0].Text != "Bogra" {
		t.Errorf("Places() = %v", places)
	}
	if dates := doc.Dates(); len(dates) != 1 || dates[0].Text != "August 21" {
		t.Errorf("Dates() = %v", dates)
	}
}

func TestAlignSpan(t *testing.T) {
	tokens := Tokenize("Water entered Cox Bazar district near Cox Bazar town")

	start, end, ok := alignSpan(tokens, "Cox Bazar")
	if !ok {
		t.Fatal("expected alignment")
	}
	// First occurrence wins
	if start != 2 || end != 4 {
		t.Errorf("aligned to [%d,%d), want [2,4)", start, end)
	}

	if _, _, ok := alignSpan(tokens, "Dhaka"); ok {
		t.Error("expected no alignment for absent name")
	}
	if _, _, ok := alignSpan(tokens, ""); ok {
		t.Error("expected no alignment for empty text")
	}
}

func TestAlignSpan_TokenizerDisagreement(t *testing.T) {
	// A backend may split possessives that the entity surface form keeps
	// whole; alignment compares the space-stripped concatenation.
	tokens := []string{"Floods", "hit", "Cox", "'s", "Bazar", "today"}

	start, end, ok := alignSpan(tokens, "Cox's Bazar")
	if !ok {
		t.Fatal("expected alignment across split tokens")
	}
	if start != 2 || end != 5 {
		t.Errorf("aligned to [%d,%d), want [2,5)", start, end)
	}
}

func TestDetectDateSpans(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"The flood began on August 21 and worsened.", []string{"August 21"}},
		{"Reported on August 18, 2024 by local media.", []string{"August 18, 2024"}},
		{"Rainfall in July 2024 broke records.", []string{"July 2024"}},
		{"It rained in August and September.", nil}, // bare month names are not dates
	}

	for _, tt := range tests {
		spans := detectDateSpans(Tokenize(tt.text))
		var got []string
		for _, s := range spans {
			got = append(got, s.Text)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("detectDateSpans(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
