package health

import (
	"fmt"
	"math"
)

// StatusColor returns the hex display color for the metrics' status.
func StatusColor(m Metrics) string {
	switch m.Status {
	case StatusHealthy:
		return "#4CAF50"
	case StatusWarning:
		return "#FFA726"
	default:
		return "#E53935"
	}
}

// StatusEmoji returns a single emoji summarizing the plant's mood.
func StatusEmoji(m Metrics) string {
	switch {
	case m.OverallHealth >= 0.9:
		return "🌿"
	case m.Status == StatusHealthy:
		return "🌱"
	case m.Status == StatusWarning:
		return "🍂"
	default:
		return "🥀"
	}
}

// Percent renders a level in [0,1] as a whole percentage.
func Percent(level float64) int {
	return int(math.Round(level * 100))
}

// Describe returns a one-line human summary of the metrics.
func Describe(m Metrics) string {
	pct := Percent(m.OverallHealth)
	switch m.Status {
	case StatusHealthy:
		if m.PrimaryConcern == ConcernNone {
			return fmt.Sprintf("Thriving at %d%% health", pct)
		}
		return fmt.Sprintf("Doing well at %d%% health, but %s", pct, m.PrimaryConcern)
	case StatusWarning:
		return fmt.Sprintf("Needs some attention (%d%% health): %s", pct, concernOrDefault(m.PrimaryConcern))
	default:
		return fmt.Sprintf("In trouble (%d%% health): %s", pct, concernOrDefault(m.PrimaryConcern))
	}
}

// RecommendedAction returns the next thing the owner should do.
func RecommendedAction(m Metrics) string {
	switch m.PrimaryConcern {
	case ConcernWaterUrgent:
		return "Water now and check the soil drains well"
	case ConcernFertilizer:
		return "Feed with a balanced fertilizer at half strength"
	case ConcernWaterSoon:
		return within("Water", m.DaysUntilWaterNeeded)
	case ConcernFertilizeSoon:
		return within("Fertilize", m.DaysUntilFertilizerNeeded)
	case ConcernIrregularCare:
		return "Try to keep a steadier watering routine"
	}

	if m.DaysUntilWaterNeeded == 0 {
		return "Water today"
	}
	if m.DaysUntilFertilizerNeeded == 0 {
		return "Fertilize today"
	}
	if m.DaysUntilWaterNeeded <= m.DaysUntilFertilizerNeeded {
		return fmt.Sprintf("Next watering in %s", dayCount(m.DaysUntilWaterNeeded))
	}
	return fmt.Sprintf("Next feeding in %s", dayCount(m.DaysUntilFertilizerNeeded))
}

func concernOrDefault(c Concern) string {
	if c == ConcernNone {
		return "review recent care"
	}
	return string(c)
}

func within(verb string, days int) string {
	if days == 0 {
		return verb + " today"
	}
	return fmt.Sprintf("%s within %s", verb, dayCount(days))
}

func dayCount(days int) string {
	switch days {
	case 0:
		return "today"
	case 1:
		return "1 day"
	default:
		return fmt.Sprintf("%d days", days)
	}
}
