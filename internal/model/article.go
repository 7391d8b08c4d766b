package model

// DisasterType classifies the disaster described by an article
type DisasterType string

const (
	DisasterFlood   DisasterType = "flood"   // Flood-family keywords present
	DisasterUnknown DisasterType = "unknown" // No known disaster vocabulary matched
)

// Sentinel values substituted when a category yields no matches.
// Absence is always explicit in output, never an empty list.
const (
	SentinelDeaths       = "0 or not mentioned"
	SentinelNotMentioned = "not mentioned"
	SentinelNoDate       = "not clearly mentioned"
)

// LocationRecord holds place names grouped by administrative tier.
// Slices carry set semantics: no duplicates, first-seen order.
type LocationRecord struct {
	Districts []string `json:"districts"`           // District (zila) tier
	Upazilas  []string `json:"upazilas"`            // Sub-district (upazila/thana) tier
	Uncertain []string `json:"uncertain"`           // Tier could not be determined from context
	Conflicts []string `json:"conflicts,omitempty"` // Names typed as both district and upazila across sources
}

// CasualtyRecord holds raw matched count substrings per impact category.
// Values stay string-typed to preserve original formatting ("2.5 million",
// "1,200"); a category with no matches holds its sentinel instead.
type CasualtyRecord struct {
	Deaths   []string `json:"deaths"`
	Injured  []string `json:"injured"`
	Affected []string `json:"affected"`
}

// ArticleResult is the structured record extracted from one article.
// Never mutated after construction.
type ArticleResult struct {
	Article      string         `json:"article"`    // Source file name or URL
	DisasterType DisasterType   `json:"disaster_type"`
	EventDate    string         `json:"event_date"` // Natural-language substring, possibly "(estimated)"
	Locations    LocationRecord `json:"locations"`
	Casualties   CasualtyRecord `json:"casualties"`
}
