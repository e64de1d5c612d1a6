package plants

import (
	"fmt"
	"strings"
	"time"

	"github.com/blackwell-systems/leafcare/internal/health"
)

// Plant is a registered houseplant.
type Plant struct {
	ID                      string
	Nickname                string
	CommonName              string
	ScientificName          string
	Family                  string
	Genus                   string
	Archetype               string  // classifier tag, e.g. "succulent_rosette"
	MatchMethod             string  // how Archetype was resolved
	MatchConfidence         float64 // 0-1
	WateringIntervalDays    int
	FertilizingIntervalDays int
	DroughtTolerant         bool
	CreatedAt               time.Time
	LastWateredAt           time.Time // zero if never
	LastFertilizedAt        time.Time // zero if never
}

// CareRecord projects the plant onto the health scorer's input.
func (p *Plant) CareRecord() health.CareRecord {
	return health.CareRecord{
		LastWateredAt:           p.LastWateredAt,
		LastFertilizedAt:        p.LastFertilizedAt,
		CreatedAt:               p.CreatedAt,
		WateringIntervalDays:    p.WateringIntervalDays,
		FertilizingIntervalDays: p.FertilizingIntervalDays,
		DroughtTolerant:         p.DroughtTolerant,
	}
}

// DisplayName returns the nickname, falling back to the common name.
func (p *Plant) DisplayName() string {
	if p.Nickname != "" {
		return p.Nickname
	}
	return p.CommonName
}

// CareKind is a type of care event.
type CareKind string

const (
	CareWater     CareKind = "water"
	CareFertilize CareKind = "fertilize"
)

// ParseCareKind accepts the canonical kind names plus a few common verbs.
func ParseCareKind(s string) (CareKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "water", "watered", "w":
		return CareWater, nil
	case "fertilize", "fertilise", "fertilized", "feed", "f":
		return CareFertilize, nil
	}
	return "", fmt.Errorf("unknown care kind %q (must be water or fertilize)", s)
}
