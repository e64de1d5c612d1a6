package analyzer

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/blackwell-systems/leafcare/internal/health"
)

// Reminders returns every care task due at now across all plants, most
// urgent first and then by plant name.
func (a *Analyzer) Reminders(ctx context.Context, now time.Time) ([]health.Reminder, error) {
	scored, err := a.ScoreAll(ctx, now)
	if err != nil {
		return nil, err
	}

	var reminders []health.Reminder
	for _, ph := range scored {
		reminders = append(reminders, health.DueReminders(ph.Plant.DisplayName(), ph.Metrics)...)
	}

	sort.SliceStable(reminders, func(i, j int) bool {
		if reminders[i].Urgency != reminders[j].Urgency {
			return reminders[i].Urgency > reminders[j].Urgency
		}
		return strings.ToLower(reminders[i].Plant) < strings.ToLower(reminders[j].Plant)
	})

	return reminders, nil
}

// Attention returns plants that are not healthy, worst first.
func (a *Analyzer) Attention(ctx context.Context, now time.Time) ([]*PlantHealth, error) {
	scored, err := a.ScoreAll(ctx, now)
	if err != nil {
		return nil, err
	}

	var out []*PlantHealth
	for _, ph := range scored {
		if ph.Metrics.Status != health.StatusHealthy {
			out = append(out, ph)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Metrics.OverallHealth < out[j].Metrics.OverallHealth
	})

	return out, nil
}
