// Package classifier resolves free-text and taxonomic hints about a plant
// to one of a fixed set of archetypes.
//
// Rules run in strict priority order and the first rule with a hit wins:
//
//	genus (1.0) > family (0.95) > scientific name (0.90) > keyword (scored)
//	> partial family (0.6) > generic fallback (0.3)
//
// Only the keyword rule compares candidates; all other rules take the first
// archetype in table order.
package classifier

import (
	"math"
	"slices"
	"strings"
)

// Method names the rule that produced a Match.
type Method string

const (
	MethodGenus          Method = "genus"
	MethodFamily         Method = "family"
	MethodScientificName Method = "scientific_name"
	MethodKeyword        Method = "keyword"
	MethodPartialFamily  Method = "partial_family"
	MethodDefault        Method = "default"
)

const (
	genusConfidence          = 1.0
	familyConfidence         = 0.95
	scientificNameConfidence = 0.90
	keywordMaxConfidence     = 0.7
	partialFamilyConfidence  = 0.6
	defaultConfidence        = 0.3
)

// Match is the result of Classify.
type Match struct {
	Archetype  Archetype
	Method     Method
	Confidence float64
}

// Classify returns the best archetype for the given hints. Any argument may
// be blank; the generic archetype is returned when nothing matches.
func Classify(family, genus, commonName, scientificName string) Match {
	family = normalize(family)
	genus = normalize(genus)
	commonName = normalize(commonName)
	scientificName = normalize(scientificName)

	if m, ok := matchGenus(genus); ok {
		return m
	}
	if m, ok := matchFamily(family); ok {
		return m
	}
	if m, ok := matchScientificName(scientificName); ok {
		return m
	}
	if m, ok := matchKeywords(commonName); ok {
		return m
	}
	if m, ok := matchPartialFamily(family); ok {
		return m
	}

	return Match{
		Archetype:  Generic(),
		Method:     MethodDefault,
		Confidence: defaultConfidence,
	}
}

func matchGenus(genus string) (Match, bool) {
	if genus == "" {
		return Match{}, false
	}
	for _, a := range archetypes {
		if slices.Contains(a.Genera, genus) {
			return Match{Archetype: a.clone(), Method: MethodGenus, Confidence: genusConfidence}, true
		}
	}
	return Match{}, false
}

func matchFamily(family string) (Match, bool) {
	if family == "" {
		return Match{}, false
	}
	for _, a := range archetypes {
		if slices.Contains(a.Families, family) {
			return Match{Archetype: a.clone(), Method: MethodFamily, Confidence: familyConfidence}, true
		}
	}
	return Match{}, false
}

func matchScientificName(name string) (Match, bool) {
	if name == "" {
		return Match{}, false
	}
	for _, a := range archetypes {
		for _, pattern := range a.ScientificPatterns {
			if strings.Contains(name, pattern) {
				return Match{Archetype: a.clone(), Method: MethodScientificName, Confidence: scientificNameConfidence}, true
			}
		}
	}
	return Match{}, false
}

// matchKeywords scores every archetype with at least one keyword hit and
// keeps the highest; ties go to the earlier archetype.
func matchKeywords(commonName string) (Match, bool) {
	if commonName == "" {
		return Match{}, false
	}

	var best Match
	found := false
	for _, a := range archetypes {
		count, longest := 0, 0
		for _, kw := range a.Keywords {
			if strings.Contains(commonName, kw) {
				count++
				longest = max(longest, len(kw))
			}
		}
		if count == 0 {
			continue
		}

		confidence := keywordConfidence(count, longest)
		if !found || confidence > best.Confidence {
			best = Match{Archetype: a.clone(), Method: MethodKeyword, Confidence: confidence}
			found = true
		}
	}
	return best, found
}

func keywordConfidence(count, longest int) float64 {
	return keywordMaxConfidence * math.Min(1, float64(count)/3+float64(longest)/20)
}

// matchPartialFamily accepts containment in either direction, so "arace"
// and "araceae family" both resolve to an aroid.
func matchPartialFamily(family string) (Match, bool) {
	if family == "" {
		return Match{}, false
	}
	for _, a := range archetypes {
		for _, f := range a.Families {
			if strings.Contains(f, family) || strings.Contains(family, f) {
				return Match{Archetype: a.clone(), Method: MethodPartialFamily, Confidence: partialFamilyConfidence}, true
			}
		}
	}
	return Match{}, false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
