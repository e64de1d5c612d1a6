package plants

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/blackwell-systems/leafcare/internal/classifier"
)

// Registration holds the user-supplied fields for a new plant.
// Zero interval fields are filled from the classified archetype.
type Registration struct {
	Nickname                string
	CommonName              string
	ScientificName          string
	Family                  string
	Genus                   string
	WateringIntervalDays    int
	FertilizingIntervalDays int
	DroughtTolerant         *bool // nil means use the archetype default
}

// New classifies reg and builds a Plant with a fresh ID.
func New(reg Registration, now time.Time) *Plant {
	match := classifier.Classify(reg.Family, reg.Genus, reg.CommonName, reg.ScientificName)
	arch := match.Archetype

	p := &Plant{
		ID:                      uuid.NewString(),
		Nickname:                strings.TrimSpace(reg.Nickname),
		CommonName:              strings.TrimSpace(reg.CommonName),
		ScientificName:          strings.TrimSpace(reg.ScientificName),
		Family:                  strings.TrimSpace(reg.Family),
		Genus:                   strings.TrimSpace(reg.Genus),
		Archetype:               arch.Tag,
		MatchMethod:             string(match.Method),
		MatchConfidence:         match.Confidence,
		WateringIntervalDays:    reg.WateringIntervalDays,
		FertilizingIntervalDays: reg.FertilizingIntervalDays,
		DroughtTolerant:         arch.DroughtTolerant,
		CreatedAt:               now.UTC(),
	}

	if p.WateringIntervalDays <= 0 {
		p.WateringIntervalDays = arch.WateringDays
	}
	if p.FertilizingIntervalDays <= 0 {
		p.FertilizingIntervalDays = arch.FertilizingDays
	}
	if reg.DroughtTolerant != nil {
		p.DroughtTolerant = *reg.DroughtTolerant
	}

	return p
}
