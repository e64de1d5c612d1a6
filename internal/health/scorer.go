// Package health computes a plant's health score from its care history.
//
// Everything here is a pure function of its inputs: the current time is
// passed explicitly so identical inputs always produce identical Metrics.
package health

import (
	"math"
	"time"
)

const msPerDay = 86_400_000

// Scoring weights and thresholds.
const (
	hydrationWeight   = 0.60
	nutritionWeight   = 0.25
	consistencyWeight = 0.15

	healthyThreshold = 0.75
	warningThreshold = 0.45

	// droughtTolerance widens the watering window for drought-tolerant plants.
	droughtTolerance = 1.5

	// GracePeriodDays is how long a newly added plant gets full care consistency.
	GracePeriodDays = 7

	// fertilizerConcernMinAge keeps brand-new plants from being nagged
	// about fertilizer.
	fertilizerConcernMinAge = 30
)

// Compute derives Metrics for record at the given instant.
//
// Watering and fertilizing timestamps that were never set count as zero
// elapsed days, so a plant with no history scores as freshly cared for.
// Intervals below one day are treated as one day.
func Compute(record CareRecord, now time.Time) Metrics {
	nowMs := now.UnixMilli()

	daysSinceWatering := daysSinceEvent(nowMs, record.LastWateredAt)
	daysSinceFertilizing := daysSinceEvent(nowMs, record.LastFertilizedAt)
	daysSinceCreation := AgeDays(record.CreatedAt, now)

	waterInterval := clampInterval(record.WateringIntervalDays)
	fertInterval := clampInterval(record.FertilizingIntervalDays)

	hydration := hydrationLevel(daysSinceWatering, waterInterval, record.DroughtTolerant)
	nutrition := nutritionLevel(daysSinceFertilizing, fertInterval)
	consistency := careConsistency(daysSinceCreation, daysSinceWatering, waterInterval, daysSinceFertilizing, fertInterval)

	overall := clamp01(hydrationWeight*hydration + nutritionWeight*nutrition + consistencyWeight*consistency)

	return Metrics{
		OverallHealth:             overall,
		HydrationLevel:            hydration,
		NutritionLevel:            nutrition,
		CareConsistency:           consistency,
		Status:                    statusFor(overall),
		PrimaryConcern:            primaryConcern(hydration, nutrition, consistency, daysSinceCreation),
		DaysUntilWaterNeeded:      max(0, waterInterval-daysSinceWatering),
		DaysUntilFertilizerNeeded: max(0, fertInterval-daysSinceFertilizing),
	}
}

// hydrationLevel is a piecewise linear decay keyed to the watering interval.
func hydrationLevel(days, interval int, droughtTolerant bool) float64 {
	if days <= 0 {
		return 1.0
	}

	tolerance := 1.0
	if droughtTolerant {
		tolerance = droughtTolerance
	}

	d := float64(days)
	iv := float64(interval)
	tolerated := iv * tolerance
	overdue := tolerated * 1.5

	switch {
	case d <= iv:
		return 1.0 - 0.3*(d/iv)
	case d <= tolerated:
		return 0.7 - 0.3*((d-iv)/(tolerated-iv))
	case d <= overdue:
		return 0.4 - 0.2*((d-tolerated)/(overdue-tolerated))
	default:
		return math.Max(0.1, 0.2-0.1*((d-overdue)/tolerated))
	}
}

// nutritionLevel decays more gently than hydration and never drops below 0.3.
func nutritionLevel(days, interval int) float64 {
	if days <= 0 {
		return 1.0
	}

	d := float64(days)
	iv := float64(interval)
	half := iv * 0.5

	switch {
	case d <= iv:
		return 1.0 - 0.2*(d/iv)
	case d <= iv*1.5:
		return 0.8 - 0.2*((d-iv)/half)
	case d <= iv*2:
		return 0.6 - 0.2*((d-iv*1.5)/half)
	default:
		return math.Max(0.3, 0.4-0.1*((d-iv*2)/iv))
	}
}

// careConsistency penalizes how far each care kind lags behind its interval.
func careConsistency(ageDays, waterDays, waterInterval, fertDays, fertInterval int) float64 {
	if ageDays < GracePeriodDays {
		return 1.0
	}

	waterLag := float64(max(0, waterDays-waterInterval)) / float64(waterInterval)
	fertLag := float64(max(0, fertDays-fertInterval)) / float64(fertInterval)

	return math.Max(0.1, 1.0-0.4*waterLag-0.2*fertLag)
}

func statusFor(overall float64) Status {
	switch {
	case overall >= healthyThreshold:
		return StatusHealthy
	case overall >= warningThreshold:
		return StatusWarning
	default:
		return StatusCritical
	}
}

// primaryConcern returns the first matching rule in priority order.
func primaryConcern(hydration, nutrition, consistency float64, ageDays int) Concern {
	switch {
	case hydration < 0.3:
		return ConcernWaterUrgent
	case nutrition < 0.3 && ageDays > fertilizerConcernMinAge:
		return ConcernFertilizer
	case hydration < 0.6:
		return ConcernWaterSoon
	case nutrition < 0.6:
		return ConcernFertilizeSoon
	case consistency < 0.5:
		return ConcernIrregularCare
	default:
		return ConcernNone
	}
}

// DaysSince reports whole days elapsed from t to now using the same rounding
// as Compute. It returns -1 when t is zero.
func DaysSince(t, now time.Time) int {
	if t.IsZero() {
		return -1
	}
	return elapsedDays(now.UnixMilli(), t.UnixMilli())
}

// AgeDays reports how many whole days a plant has been tracked, as Compute
// sees it. A zero createdAt counts from the Unix epoch.
func AgeDays(createdAt, now time.Time) int {
	return elapsedDays(now.UnixMilli(), toMillis(createdAt))
}

// daysSinceEvent applies the "never happened means fresh" policy.
func daysSinceEvent(nowMs int64, t time.Time) int {
	if t.IsZero() {
		return 0
	}
	return elapsedDays(nowMs, t.UnixMilli())
}

// elapsedDays floors the elapsed milliseconds to whole days; future
// timestamps count as zero.
func elapsedDays(nowMs, thenMs int64) int {
	elapsed := nowMs - thenMs
	if elapsed <= 0 {
		return 0
	}
	return int(elapsed / msPerDay)
}

func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func clampInterval(days int) int {
	if days < 1 {
		return 1
	}
	return days
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
