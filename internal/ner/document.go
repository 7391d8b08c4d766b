package ner

import (
	"regexp"
	"strings"
)

// Entity labels the extraction pipeline consumes
const (
	LabelPlace = "GPE"  // Geo-political entity (place name)
	LabelDate  = "DATE" // Date mention
)

// Span is a recognized mention with its position in token space.
// Invariant: Text matches Tokens[Start:End] up to tokenization whitespace.
type Span struct {
	Text  string `json:"text"`
	Label string `json:"label"`
	Start int    `json:"start"` // Token offset, inclusive
	End   int    `json:"end"`   // Token offset, exclusive
}

// Document is a token-addressable view of an article as produced by a
// Recognizer: the token sequence plus the entity spans found in it.
type Document struct {
	Tokens []string `json:"tokens"`
	Spans  []Span   `json:"spans"`
}

// Context returns the text of a symmetric token window around the span,
// clamped to document bounds.
func (d *Document) Context(s Span, radius int) string {
	start := s.Start - radius
	if start < 0 {
		start = 0
	}
	end := s.End + radius
	if end > len(d.Tokens) {
		end = len(d.Tokens)
	}
	if start >= end {
		return ""
	}
	return joinTokens(d.Tokens[start:end])
}

// Places returns the spans labeled as geo-political entities
func (d *Document) Places() []Span {
	return d.filter(LabelPlace)
}

// Dates returns the spans labeled as dates
func (d *Document) Dates() []Span {
	return d.filter(LabelDate)
}

func (d *Document) filter(label string) []Span {
	var out []Span
	for _, s := range d.Spans {
		if s.Label == label {
			out = append(out, s)
		}
	}
	return out
}

// tokenPattern treats hyphenated and dotted words as single tokens
// ("sub-district", "U.S.") and every other non-space symbol as its own token.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}]+(?:['’.-][\p{L}\p{N}]+)*|[^\s\p{L}\p{N}]`)

// Tokenize splits text into the token space used for span offsets.
// Backends without their own tokenizer align entities against this.
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(text, -1)
}

// joinTokens rebuilds readable text from tokens, omitting the space
// before closing punctuation.
func joinTokens(tokens []string) string {
	var b strings.Builder
	for i, tok := range tokens {
		if i > 0 && !isClosingPunct(tok) {
			b.WriteByte(' ')
		}
		b.WriteString(tok)
	}
	return b.String()
}

func isClosingPunct(tok string) bool {
	switch tok {
	case ",", ".", ";", ":", "!", "?", ")", "]", "}", "'", "\"":
		return true
	}
	return false
}

// alignSpan locates the first token subsequence whose concatenation equals
// the entity's text with whitespace removed, and returns its token offsets.
// Matching is case-sensitive; comparing space-stripped concatenations
// absorbs tokenizer disagreements over surface forms such as possessives
// ("Cox's" as one token vs "Cox" + "'s").
func alignSpan(tokens []string, entityText string) (start, end int, ok bool) {
	want := strings.Join(strings.Fields(entityText), "")
	if want == "" {
		return 0, 0, false
	}

	for i := range tokens {
		var b strings.Builder
		for j := i; j < len(tokens); j++ {
			b.WriteString(tokens[j])
			if b.Len() > len(want) {
				break
			}
			if b.Len() == len(want) {
				if b.String() == want {
					return i, j + 1, true
				}
				break
			}
		}
	}
	return 0, 0, false
}
