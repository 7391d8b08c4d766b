package extract

import "github.com/rkabir/floodlens/internal/model"

// MergeLocations unions the recognizer-path and regex-path location records
// into the final record. Equality is exact string match: upstream sources
// emit surface text and no fuzzy matching is attempted.
//
// Uncertain carries over verbatim from the recognizer path; the regex path
// is pattern-anchored and never produces uncertain entries. A name typed as
// district by one source and upazila by the other stays in both tiers (the
// ambiguity is not resolved) and is listed in Conflicts so downstream
// consumers can see it.
func MergeLocations(contextual, regex model.LocationRecord) model.LocationRecord {
	districts := newStringSet()
	upazilas := newStringSet()

	for _, name := range contextual.Districts {
		districts.add(name)
	}
	for _, name := range regex.Districts {
		districts.add(name)
	}
	for _, name := range contextual.Upazilas {
		upazilas.add(name)
	}
	for _, name := range regex.Upazilas {
		upazilas.add(name)
	}

	var conflicts []string
	for _, name := range districts.values() {
		if upazilas.has(name) {
			conflicts = append(conflicts, name)
		}
	}

	uncertain := contextual.Uncertain
	if uncertain == nil {
		uncertain = []string{}
	}

	return model.LocationRecord{
		Districts: districts.values(),
		Upazilas:  upazilas.values(),
		Uncertain: uncertain,
		Conflicts: conflicts,
	}
}
