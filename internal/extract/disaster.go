package extract

import (
	"strings"

	"github.com/rkabir/floodlens/internal/model"
)

// DisasterClassifier tags an article with a disaster type by keyword
// membership over the flood vocabulary.
type DisasterClassifier struct {
	keywords []string
}

// NewDisasterClassifier creates a new disaster classifier
func NewDisasterClassifier() *DisasterClassifier {
	return &DisasterClassifier{
		keywords: []string{
			"flood", "flooding", "floodwater", "flooded",
			"inundated", "waterlogging",
		},
	}
}

// Classify returns "flood" if any flood keyword occurs anywhere in the
// text, else "unknown". Case-insensitive. A keyword inside a negated
// sentence still counts; there is no negation handling.
func (c *DisasterClassifier) Classify(text string) model.DisasterType {
	lower := strings.ToLower(text)
	for _, kw := range c.keywords {
		if strings.Contains(lower, kw) {
			return model.DisasterFlood
		}
	}
	return model.DisasterUnknown
}
