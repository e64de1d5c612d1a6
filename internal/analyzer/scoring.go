package analyzer

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/blackwell-systems/leafcare/internal/health"
	"github.com/blackwell-systems/leafcare/internal/plants"
)

// ScorePlant resolves ref and computes its health at now.
func (a *Analyzer) ScorePlant(ref string, now time.Time) (*PlantHealth, error) {
	p, err := a.store.FindPlant(ref)
	if err != nil {
		return nil, fmt.Errorf("failed to find plant: %w", err)
	}
	return score(p, now), nil
}

// ScoreAll computes health for every stored plant. Results keep the store's
// listing order.
func (a *Analyzer) ScoreAll(ctx context.Context, now time.Time) ([]*PlantHealth, error) {
	all, err := a.store.ListPlants()
	if err != nil {
		return nil, fmt.Errorf("failed to list plants: %w", err)
	}

	results := make([]*PlantHealth, len(all))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, p := range all {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = score(p, now)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scoring interrupted: %w", err)
	}

	return results, nil
}

// GetPlantsByStatus returns the scored plants whose status matches.
func (a *Analyzer) GetPlantsByStatus(ctx context.Context, status health.Status, now time.Time) ([]*PlantHealth, error) {
	all, err := a.ScoreAll(ctx, now)
	if err != nil {
		return nil, err
	}

	var matched []*PlantHealth
	for _, ph := range all {
		if ph.Metrics.Status == status {
			matched = append(matched, ph)
		}
	}

	return matched, nil
}

func score(p *plants.Plant, now time.Time) *PlantHealth {
	m := health.Compute(p.CareRecord(), now)
	return &PlantHealth{
		Plant:       p,
		Metrics:     m,
		Explanation: explain(p, now),
	}
}

func explain(p *plants.Plant, now time.Time) ScoreExplanation {
	var e ScoreExplanation

	e.HydrationDetail = careDetail("watered", health.DaysSince(p.LastWateredAt, now), p.WateringIntervalDays)
	e.NutritionDetail = careDetail("fertilized", health.DaysSince(p.LastFertilizedAt, now), p.FertilizingIntervalDays)

	age := health.AgeDays(p.CreatedAt, now)
	if p.CreatedAt.IsZero() {
		e.AgeDetail = "added on an unknown date"
	} else {
		e.AgeDetail = fmt.Sprintf("added %s ago", days(age))
	}

	if age < health.GracePeriodDays {
		e.ConsistencyDetail = fmt.Sprintf("settling in (first %d days)", health.GracePeriodDays)
		return e
	}

	waterLag := lag(health.DaysSince(p.LastWateredAt, now), p.WateringIntervalDays)
	fertLag := lag(health.DaysSince(p.LastFertilizedAt, now), p.FertilizingIntervalDays)
	switch {
	case waterLag == 0 && fertLag == 0:
		e.ConsistencyDetail = "care is on schedule"
	case waterLag >= fertLag:
		e.ConsistencyDetail = fmt.Sprintf("watering %.1fx its interval behind", waterLag)
	default:
		e.ConsistencyDetail = fmt.Sprintf("fertilizing %.1fx its interval behind", fertLag)
	}

	return e
}

func careDetail(verb string, since, interval int) string {
	if since < 0 {
		return "never " + verb
	}
	if since == 0 {
		return fmt.Sprintf("%s today, every %s", verb, days(interval))
	}
	return fmt.Sprintf("last %s %s ago, every %s", verb, days(since), days(interval))
}

// lag is how far past its interval a care task is, in multiples of the
// interval. Never-performed tasks have no lag.
func lag(since, interval int) float64 {
	interval = max(1, interval)
	if since <= interval {
		return 0
	}
	return float64(since-interval) / float64(interval)
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
