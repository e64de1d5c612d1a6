package analyzer

import (
	"fmt"
	"time"

	"github.com/blackwell-systems/leafcare/internal/plants"
)

// GetCareStats summarizes the recorded care events for the plant ref names.
func (a *Analyzer) GetCareStats(ref string) (*CareStats, error) {
	p, err := a.store.FindPlant(ref)
	if err != nil {
		return nil, fmt.Errorf("failed to find plant: %w", err)
	}

	events, err := a.store.GetCareEvents(p.ID, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("failed to get care events: %w", err)
	}

	stats := &CareStats{
		PlantID:            p.ID,
		AvgWateringGapDays: -1,
	}

	// Events are ordered newest first.
	var waterings []time.Time
	for _, e := range events {
		switch e.Kind {
		case plants.CareWater:
			stats.Waterings++
			waterings = append(waterings, e.Timestamp)
			if stats.LastWatered == nil {
				ts := e.Timestamp
				stats.LastWatered = &ts
			}
		case plants.CareFertilize:
			stats.Feedings++
			if stats.LastFertilized == nil {
				ts := e.Timestamp
				stats.LastFertilized = &ts
			}
		}
	}

	if len(waterings) >= 2 {
		span := waterings[0].Sub(waterings[len(waterings)-1])
		stats.AvgWateringGapDays = span.Hours() / 24 / float64(len(waterings)-1)
	}

	stats.Rhythm = computeRhythm(stats.AvgWateringGapDays, p.WateringIntervalDays)

	return stats, nil
}

// computeRhythm compares the observed watering gap to the plant's interval.
func computeRhythm(avgGap float64, interval int) string {
	if avgGap < 0 {
		return "not enough history"
	}

	target := float64(max(1, interval))
	switch {
	case avgGap > target*1.25:
		return "behind"
	case avgGap < target*0.5:
		return "ahead"
	default:
		return "on schedule"
	}
}
