package ner

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/jdkato/prose/v2"
)

// ProseRecognizer runs entity recognition locally using the prose NLP
// library. It is the default backend: no network, no API key, model data
// compiled into the binary.
type ProseRecognizer struct{}

// NewProseRecognizer creates a new prose-backed recognizer
func NewProseRecognizer() *ProseRecognizer {
	return &ProseRecognizer{}
}

// Name returns the backend name
func (r *ProseRecognizer) Name() string {
	return "prose"
}

// Recognize extracts entity spans from text.
// prose's bundled model emits GPE entities but no DATE entities, so date
// spans are supplemented lexically from month-name mentions.
func (r *ProseRecognizer) Recognize(ctx context.Context, text string) (*Document, error) {
	if len(text) > maxInputBytes {
		return nil, ErrInputTooLarge
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pdoc, err := prose.NewDocument(text)
	if err != nil {
		return nil, fmt.Errorf("prose document: %w", err)
	}

	tokens := make([]string, 0, len(pdoc.Tokens()))
	for _, tok := range pdoc.Tokens() {
		tokens = append(tokens, tok.Text)
	}

	doc := &Document{Tokens: tokens}

	for _, ent := range pdoc.Entities() {
		if ent.Label != LabelPlace {
			continue
		}
		start, end, ok := alignSpan(tokens, ent.Text)
		if !ok {
			continue
		}
		doc.Spans = append(doc.Spans, Span{
			Text:  ent.Text,
			Label: LabelPlace,
			Start: start,
			End:   end,
		})
	}

	doc.Spans = append(doc.Spans, detectDateSpans(tokens)...)

	return doc, nil
}

var monthNames = map[string]bool{
	"january": true, "february": true, "march": true, "april": true,
	"may": true, "june": true, "july": true, "august": true,
	"september": true, "october": true, "november": true, "december": true,
}

var (
	dayToken  = regexp.MustCompile(`^\d{1,2}$`)
	yearToken = regexp.MustCompile(`^\d{4}$`)
)

// detectDateSpans finds "Month Day[, Year]" and bare "Month Year" mentions
// in the token stream and returns them as DATE spans.
func detectDateSpans(tokens []string) []Span {
	var spans []Span

	for i := 0; i < len(tokens); i++ {
		if !monthNames[strings.ToLower(tokens[i])] {
			continue
		}
		end := i + 1
		switch {
		case end < len(tokens) && dayToken.MatchString(tokens[end]):
			end++
			// Optional ", Year" or " Year"
			if end+1 < len(tokens) && tokens[end] == "," && yearToken.MatchString(tokens[end+1]) {
				end += 2
			} else if end < len(tokens) && yearToken.MatchString(tokens[end]) {
				end++
			}
		case end < len(tokens) && yearToken.MatchString(tokens[end]):
			end++
		default:
			continue // Bare month name is not a date mention
		}

		spans = append(spans, Span{
			Text:  joinTokens(tokens[i:end]),
			Label: LabelDate,
			Start: i,
			End:   end,
		})
		i = end - 1
	}

	return spans
}
