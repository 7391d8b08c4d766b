package extract

import (
	"regexp"
	"strings"

	"github.com/rkabir/floodlens/internal/model"
)

// Patterns run against case-preserving text: capitalization is the signal
// that separates place names from surrounding words. General NER models
// miss most Bangladeshi place names, so explicit administrative phrasing
// ("X district", "upazilas -- A, B and C") is mined directly.
var (
	// Capitalized word(s) immediately before a district keyword
	districtPattern = regexp.MustCompile(`([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)\s+(?:district|zila|zilla)`)

	// Capitalized word(s) immediately before a sub-district keyword
	upazilaPattern = regexp.MustCompile(`([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)\s+(?:upazila|upazilla|thana|sub-district)`)

	// Enumerated lists: "upazilas -- A, B, and C." / "districts: A, B".
	// The list runs until a sentence terminator, a transition word, or a
	// bare digit.
	upazilaListPattern  = regexp.MustCompile(`upazilas?\s*(?:--|:)\s*([A-Z][^.]+?)(?:\.|,\s*(?:Nearly|Almost|About|\d))`)
	districtListPattern = regexp.MustCompile(`districts?\s*(?:--|:)\s*([A-Z][^.]+?)(?:\.|,\s*(?:Nearly|Almost|About|\d))`)

	// List items separate on commas and the conjunction "and"
	listSplitPattern = regexp.MustCompile(`,\s*(?:and\s+)?`)
)

// RegexLocationExtractor extracts district and upazila names from explicit
// administrative phrasing. Every match is pre-typed by its triggering
// keyword, so this source never produces uncertain entries.
type RegexLocationExtractor struct{}

// NewRegexLocationExtractor creates a new pattern-based location extractor
func NewRegexLocationExtractor() *RegexLocationExtractor {
	return &RegexLocationExtractor{}
}

// Extract returns the districts and upazilas named by administrative
// phrasing in the text. Uncertain is always empty for this source.
func (e *RegexLocationExtractor) Extract(text string) model.LocationRecord {
	if len(text) > maxScanBytes {
		text = text[:maxScanBytes]
	}

	districts := newStringSet()
	upazilas := newStringSet()

	for _, m := range districtPattern.FindAllStringSubmatch(text, -1) {
		districts.add(m[1])
	}
	for _, m := range upazilaPattern.FindAllStringSubmatch(text, -1) {
		upazilas.add(m[1])
	}
	for _, m := range upazilaListPattern.FindAllStringSubmatch(text, -1) {
		for _, name := range splitPlaceList(m[1]) {
			upazilas.add(name)
		}
	}
	for _, m := range districtListPattern.FindAllStringSubmatch(text, -1) {
		for _, name := range splitPlaceList(m[1]) {
			districts.add(name)
		}
	}

	return model.LocationRecord{
		Districts: districts.values(),
		Upazilas:  upazilas.values(),
		Uncertain: []string{},
	}
}

// splitPlaceList splits an enumerated list capture into individual names
func splitPlaceList(list string) []string {
	var names []string
	for _, part := range listSplitPattern.Split(list, -1) {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// stringSet preserves first-seen order with set semantics
type stringSet struct {
	seen  map[string]bool
	order []string
}

func newStringSet() *stringSet {
	return &stringSet{seen: make(map[string]bool)}
}

func (s *stringSet) add(v string) {
	if !s.seen[v] {
		s.seen[v] = true
		s.order = append(s.order, v)
	}
}

func (s *stringSet) has(v string) bool {
	return s.seen[v]
}

func (s *stringSet) values() []string {
	if s.order == nil {
		return []string{}
	}
	return s.order
}
