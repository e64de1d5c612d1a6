package health

import "time"

// Status is the coarse health bucket derived from the overall score.
type Status string

const (
	StatusHealthy  Status = "healthy"
	StatusWarning  Status = "warning"
	StatusCritical Status = "critical"
)

// ParseStatus validates a user-supplied status name.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusHealthy, StatusWarning, StatusCritical:
		return Status(s), true
	}
	return "", false
}

// Concern is the single most pressing care issue for a plant.
// The empty Concern means nothing needs attention.
type Concern string

const (
	ConcernNone          Concern = ""
	ConcernWaterUrgent   Concern = "needs water urgently"
	ConcernFertilizer    Concern = "needs fertilizer"
	ConcernWaterSoon     Concern = "water soon"
	ConcernFertilizeSoon Concern = "consider fertilizing"
	ConcernIrregularCare Concern = "irregular care"
)

// CareRecord is the scoring input for a single plant.
// A zero time.Time means the event never happened.
type CareRecord struct {
	LastWateredAt           time.Time
	LastFertilizedAt        time.Time
	CreatedAt               time.Time
	WateringIntervalDays    int
	FertilizingIntervalDays int
	DroughtTolerant         bool
}

// Metrics is the result of Compute. All levels are in [0,1].
type Metrics struct {
	OverallHealth             float64
	HydrationLevel            float64
	NutritionLevel            float64
	CareConsistency           float64
	Status                    Status
	PrimaryConcern            Concern
	DaysUntilWaterNeeded      int
	DaysUntilFertilizerNeeded int
}

// FromMillis converts a milliseconds-since-epoch timestamp to time.Time,
// mapping the 0 "never" sentinel to the zero time.
func FromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
