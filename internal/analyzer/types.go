package analyzer

import (
	"time"

	"github.com/blackwell-systems/leafcare/internal/health"
	"github.com/blackwell-systems/leafcare/internal/plants"
)

// PlantHealth pairs a plant with its computed metrics.
type PlantHealth struct {
	Plant       *plants.Plant
	Metrics     health.Metrics
	Explanation ScoreExplanation
}

// ScoreExplanation provides a readable breakdown of score components.
type ScoreExplanation struct {
	HydrationDetail   string // "last watered 5 days ago, every 7 days"
	NutritionDetail   string // "never fertilized"
	ConsistencyDetail string // "watering 2.1x its interval behind"
	AgeDetail         string // "added 40 days ago"
}

// CareStats summarizes a plant's recorded care history.
type CareStats struct {
	PlantID            string
	Waterings          int
	Feedings           int
	LastWatered        *time.Time
	LastFertilized     *time.Time
	AvgWateringGapDays float64 // -1 with fewer than two waterings
	Rhythm             string  // "on schedule", "behind", "ahead", "not enough history"
}
