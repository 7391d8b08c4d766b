package extract

import (
	"regexp"
	"strings"

	"github.com/rkabir/floodlens/internal/model"
)

// maxScanBytes bounds the text the pattern rules will scan.
// Go's regexp engine is linear-time, so the guard is about memory and
// output volume rather than backtracking.
const maxScanBytes = 1 << 20 // 1 MiB

// countRule is one directional extraction pattern for a fact category.
// The first capture group is the count substring to keep.
type countRule struct {
	name string
	re   *regexp.Regexp
}

// Rules run against lower-cased text. Each category pools the matches of
// all of its rules; a category may scan in both directions
// (number-before-keyword and keyword-before-number).
// filler skips the subject and copula words between a count and its
// keyword ("12 people died", "40 were injured", "2.5 million people have
// been affected").
const filler = `(?:(?:people|persons?|individuals?|families|million|lakh|thousand|have|has|had|were|was|are|been)\s+)*`

var (
	deathRules = []countRule{
		{"count-then-keyword", regexp.MustCompile(`(\d+)\s+` + filler + `(?:died|dead|killed|death|deaths)`)},
		{"keyword-then-count", regexp.MustCompile(`(?:died|dead|killed|death toll|deaths).*?(\d+)`)},
	}

	injuredRules = []countRule{
		{"count-then-keyword", regexp.MustCompile(`(\d+)\s+` + filler + `(?:injured|wounded|hurt)`)},
	}

	affectedRules = []countRule{
		{"count-then-keyword", regexp.MustCompile(`(\d+(?:,\d+)*(?:\.\d+)?)\s+` + filler + `(?:affected|stranded|marooned|displaced|impacted)`)},
		{"keyword-then-count", regexp.MustCompile(`(?:affected|stranded|marooned|displaced).*?(\d+(?:,\d+)*(?:\.\d+)?)`)},
	}
)

// NumericExtractor extracts casualty and impact counts from article text
type NumericExtractor struct{}

// NewNumericExtractor creates a new numeric fact extractor
func NewNumericExtractor() *NumericExtractor {
	return &NumericExtractor{}
}

// Extract returns the counts found for each category. Values are the raw
// matched substrings, never parsed: unit words like "million" and "lakh"
// stay in the surrounding text, so parsing here would lose magnitude.
// A category with no matches holds its sentinel; no list is ever empty.
func (e *NumericExtractor) Extract(text string) model.CasualtyRecord {
	if len(text) > maxScanBytes {
		text = text[:maxScanBytes]
	}
	lower := strings.ToLower(text)

	deaths := applyCountRules(deathRules, lower)
	injured := applyCountRules(injuredRules, lower)
	affected := applyCountRules(affectedRules, lower)

	if len(deaths) == 0 {
		deaths = []string{model.SentinelDeaths}
	}
	if len(injured) == 0 {
		injured = []string{model.SentinelNotMentioned}
	}
	if len(affected) == 0 {
		affected = []string{model.SentinelNotMentioned}
	}

	return model.CasualtyRecord{
		Deaths:   deaths,
		Injured:  injured,
		Affected: affected,
	}
}

// applyCountRules pools the capture-group matches of every rule,
// deduplicated in first-seen order.
func applyCountRules(rules []countRule, lower string) []string {
	seen := make(map[string]bool)
	var counts []string

	for _, rule := range rules {
		for _, m := range rule.re.FindAllStringSubmatch(lower, -1) {
			value := m[1]
			if !seen[value] {
				seen[value] = true
				counts = append(counts, value)
			}
		}
	}

	return counts
}
