package extract

import (
	"strings"

	"github.com/rkabir/floodlens/internal/model"
	"github.com/rkabir/floodlens/internal/ner"
)

// contextRadius is the symmetric token window inspected around a
// recognized place name when looking for administrative keywords.
const contextRadius = 5

// Administrative-level vocabulary. Sub-district keywords are checked
// before district keywords: a window containing both resolves to
// sub-district ("Sadar upazila of Sirajganj district" names the upazila).
var (
	upazilaKeywords  = []string{"upazila", "upazilla", "thana", "sub-district"}
	districtKeywords = []string{"district", "zila", "zilla"}
)

// ContextCategorizer classifies recognizer-detected place names into
// administrative tiers by the vocabulary around their mention. The
// recognizer knows none of the local administrative terms, so tier comes
// entirely from the context window.
type ContextCategorizer struct{}

// NewContextCategorizer creates a new contextual location categorizer
func NewContextCategorizer() *ContextCategorizer {
	return &ContextCategorizer{}
}

// Categorize classifies each distinct recognized place name by its context
// window. Only the first span matching a name is inspected: a name that
// occurs twice with different contextual roles keeps the first occurrence's
// tier. Names with no administrative vocabulary nearby land in Uncertain.
func (c *ContextCategorizer) Categorize(doc *ner.Document) model.LocationRecord {
	districts := newStringSet()
	upazilas := newStringSet()
	uncertain := newStringSet()

	places := doc.Places()

	visited := make(map[string]bool)
	for _, span := range places {
		if visited[span.Text] {
			continue
		}
		visited[span.Text] = true

		window := strings.ToLower(doc.Context(span, contextRadius))

		switch {
		case containsAny(window, upazilaKeywords):
			upazilas.add(span.Text)
		case containsAny(window, districtKeywords):
			districts.add(span.Text)
		default:
			uncertain.add(span.Text)
		}
	}

	return model.LocationRecord{
		Districts: districts.values(),
		Upazilas:  upazilas.values(),
		Uncertain: uncertain.values(),
	}
}

// containsAny reports whether any keyword is a substring of the window
func containsAny(window string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(window, kw) {
			return true
		}
	}
	return false
}
