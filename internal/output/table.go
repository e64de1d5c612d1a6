// Package output provides terminal output utilities for leafcare.
//
// This package includes:
//   - Table rendering for plant health, reminders, backups and classifications
//   - Progress bars for long-running operations
//   - Spinners for indeterminate operations
//   - Human-readable formatting for dates and care intervals
//
// Colors are applied only when stdout is a terminal and NO_COLOR is unset.
// Progress indicators are thread-safe and can be used from multiple goroutines.
package output

import (
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/blackwell-systems/leafcare/internal/analyzer"
	"github.com/blackwell-systems/leafcare/internal/classifier"
	"github.com/blackwell-systems/leafcare/internal/health"
	"github.com/blackwell-systems/leafcare/internal/store"
)

// IsColorEnabled returns true if ANSI color codes should be emitted.
// It checks that os.Stdout is a TTY and that the NO_COLOR env var is not set.
func IsColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// colorize applies attrs to text if color is enabled, otherwise returns the
// plain text.
func colorize(text string, attrs ...color.Attribute) string {
	c := color.New(attrs...)
	if IsColorEnabled() {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(text)
}

func statusAttr(s health.Status) color.Attribute {
	switch s {
	case health.StatusHealthy:
		return color.FgGreen
	case health.StatusWarning:
		return color.FgYellow
	case health.StatusCritical:
		return color.FgRed
	default:
		return color.FgHiBlack
	}
}

// formatStatus returns the emoji and label for a plant, colored by status.
// Padding is applied before coloring so escape codes do not skew columns.
func formatStatus(m health.Metrics, width int) string {
	label := fmt.Sprintf("%s %s", health.StatusEmoji(m), m.Status)
	return colorize(padRight(label, width), statusAttr(m.Status))
}

// RenderPlantTable renders a table of scored plants.
// Note: Does not sort - expects rows to be pre-sorted by caller.
func RenderPlantTable(rows []*analyzer.PlantHealth) string {
	if len(rows) == 0 {
		return "No plants found.\n"
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-18s %-18s %-7s %-13s %-15s %-12s %s\n",
		"Plant", "Type", "Health", "Status", "Last Watered", "Next Water", "Concern"))
	sb.WriteString(strings.Repeat("─", 100))
	sb.WriteString("\n")

	for _, ph := range rows {
		m := ph.Metrics
		concern := string(m.PrimaryConcern)
		if concern == "" {
			concern = "—"
		}

		sb.WriteString(fmt.Sprintf("%-18s %-18s %-7s %s %-15s %-12s %s\n",
			truncate(ph.Plant.DisplayName(), 18),
			truncate(ph.Plant.Archetype, 18),
			fmt.Sprintf("%d%%", health.Percent(m.OverallHealth)),
			formatStatus(m, 13),
			formatRelativeTime(ph.Plant.LastWateredAt),
			formatDue(m.DaysUntilWaterNeeded),
			concern))
	}

	return sb.String()
}

// RenderStatusSummary renders a one-line status breakdown.
// Format: "HEALTHY: 5 · WARNING: 2 · CRITICAL: 1"
func RenderStatusSummary(rows []*analyzer.PlantHealth) string {
	counts := map[health.Status]int{}
	for _, ph := range rows {
		counts[ph.Metrics.Status]++
	}

	parts := make([]string, 0, 3)
	for _, s := range []health.Status{health.StatusHealthy, health.StatusWarning, health.StatusCritical} {
		label := colorize(strings.ToUpper(string(s)), statusAttr(s))
		parts = append(parts, fmt.Sprintf("%s: %d", label, counts[s]))
	}

	return strings.Join(parts, " · ")
}

// RenderExplanation renders a detailed breakdown of one plant's score.
// stats may be nil.
func RenderExplanation(ph *analyzer.PlantHealth, stats *analyzer.CareStats) string {
	var sb strings.Builder
	p, m, e := ph.Plant, ph.Metrics, ph.Explanation

	sb.WriteString(fmt.Sprintf("Plant:   %s (%s)\n", p.DisplayName(), p.ID))
	if p.ScientificName != "" {
		sb.WriteString(fmt.Sprintf("Species: %s\n", p.ScientificName))
	}
	sb.WriteString(fmt.Sprintf("Type:    %s (matched by %s, %.0f%% confidence)\n",
		p.Archetype, p.MatchMethod, p.MatchConfidence*100))
	sb.WriteString(fmt.Sprintf("Health:  %s %s\n",
		colorize(fmt.Sprintf("%d%%", health.Percent(m.OverallHealth)), statusAttr(m.Status)),
		health.StatusEmoji(m)))

	sb.WriteString("\nBreakdown:\n")
	sb.WriteString(fmt.Sprintf("  Hydration:   %3d%% x 0.60 - %s\n", health.Percent(m.HydrationLevel), e.HydrationDetail))
	sb.WriteString(fmt.Sprintf("  Nutrition:   %3d%% x 0.25 - %s\n", health.Percent(m.NutritionLevel), e.NutritionDetail))
	sb.WriteString(fmt.Sprintf("  Consistency: %3d%% x 0.15 - %s\n", health.Percent(m.CareConsistency), e.ConsistencyDetail))
	sb.WriteString(fmt.Sprintf("  Age:                     %s\n", e.AgeDetail))
	if p.DroughtTolerant {
		sb.WriteString("  Drought tolerant: watering window widened by 50%\n")
	}

	if stats != nil {
		sb.WriteString("\nHistory:\n")
		sb.WriteString(fmt.Sprintf("  Waterings: %d  Feedings: %d\n", stats.Waterings, stats.Feedings))
		if stats.AvgWateringGapDays >= 0 {
			sb.WriteString(fmt.Sprintf("  Average gap between waterings: %.1f days (%s)\n", stats.AvgWateringGapDays, stats.Rhythm))
		} else {
			sb.WriteString(fmt.Sprintf("  Watering rhythm: %s\n", stats.Rhythm))
		}
	}

	sb.WriteString("\n" + health.Describe(m) + "\n")
	sb.WriteString("Next step: " + health.RecommendedAction(m) + "\n")

	return sb.String()
}

// RenderReminders renders due care tasks, one per line.
func RenderReminders(reminders []health.Reminder) string {
	if len(reminders) == 0 {
		return "Nothing due today. \U0001F33F\n"
	}

	var sb strings.Builder
	for _, r := range reminders {
		var attr color.Attribute
		switch r.Urgency {
		case health.UrgencyUrgent:
			attr = color.FgRed
		case health.UrgencySoon:
			attr = color.FgYellow
		default:
			attr = color.FgGreen
		}
		sb.WriteString(fmt.Sprintf("%s %s\n", colorize(padRight("["+r.Urgency.String()+"]", 9), attr), r.Message))
	}
	return sb.String()
}

// RenderBackupTable renders a table of backups.
// Note: Does not sort - expects backups newest first from the store.
func RenderBackupTable(backups []*store.Backup) string {
	if len(backups) == 0 {
		return "No backups found.\n"
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-5s %-17s %-8s %s\n", "ID", "Created", "Plants", "Reason"))
	sb.WriteString(strings.Repeat("─", 72))
	sb.WriteString("\n")

	for _, b := range backups {
		sb.WriteString(fmt.Sprintf("%-5d %-17s %-8d %s\n",
			b.ID,
			formatRelativeTime(b.CreatedAt),
			b.PlantCount,
			truncate(b.Reason, 40)))
	}

	return sb.String()
}

// RenderClassification renders the result of an ad-hoc classification.
func RenderClassification(m classifier.Match) string {
	a := m.Archetype
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Archetype:  %s\n", colorize(a.Tag, color.Bold)))
	sb.WriteString(fmt.Sprintf("Method:     %s\n", m.Method))
	sb.WriteString(fmt.Sprintf("Confidence: %.0f%%\n", m.Confidence*100))
	sb.WriteString(fmt.Sprintf("About:      %s\n", a.Description))
	sb.WriteString(fmt.Sprintf("Care:       water every %s, fertilize every %s",
		formatDays(a.WateringDays), formatDays(a.FertilizingDays)))
	if a.DroughtTolerant {
		sb.WriteString(" (drought tolerant)")
	}
	sb.WriteString("\n")

	return sb.String()
}

// formatRelativeTime converts a timestamp to relative time (e.g., "2 days ago").
func formatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return humanize.Time(t)
}

// formatDue describes a days-until value.
func formatDue(days int) string {
	switch {
	case days <= 0:
		return "today"
	case days == 1:
		return "tomorrow"
	default:
		return fmt.Sprintf("in %d days", days)
	}
}

func formatDays(n int) string {
	if n == 1 {
		return "day"
	}
	return fmt.Sprintf("%d days", n)
}

// padRight pads s with spaces to width runes.
func padRight(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// truncate truncates a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
