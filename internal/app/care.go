package app

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/leafcare/internal/plants"
	"github.com/blackwell-systems/leafcare/internal/store"
)

var careAt string

var waterCmd = &cobra.Command{
	Use:   "water <plant>...",
	Short: "Record that plants were watered",
	Example: `  leafcare water Fernando
  leafcare water Fernando Spike
  leafcare water Fernando --at 2h
  leafcare water Fernando --at 2026-05-01`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCare(plants.CareWater, args)
	},
}

var fertilizeCmd = &cobra.Command{
	Use:     "fertilize <plant>...",
	Aliases: []string{"feed"},
	Short:   "Record that plants were fertilized",
	Example: `  leafcare fertilize Fernando
  leafcare feed Spike --at yesterday`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCare(plants.CareFertilize, args)
	},
}

func init() {
	for _, c := range []*cobra.Command{waterCmd, fertilizeCmd} {
		c.Flags().StringVar(&careAt, "at", "", "when the care happened: a duration ago (2h, 3d), 'yesterday', a date or RFC3339 time (default: now)")
		RootCmd.AddCommand(c)
	}
}

func runCare(kind plants.CareKind, refs []string) error {
	now := nowFunc()
	at, err := parseCareTime(careAt, now)
	if err != nil {
		return err
	}

	st, err := openStore(false)
	if err != nil {
		return err
	}
	defer st.Close()

	events := make([]*store.CareEvent, 0, len(refs))
	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		p, err := st.FindPlant(ref)
		if err != nil {
			if errors.Is(err, store.ErrPlantNotFound) {
				return fmt.Errorf("plant not found: %s\nRun 'leafcare list' to see registered plants", ref)
			}
			return err
		}
		events = append(events, &store.CareEvent{
			PlantID:   p.ID,
			Kind:      kind,
			Source:    "cli",
			Timestamp: at,
		})
		names = append(names, p.DisplayName())
	}

	if err := st.RecordCareBatch(events); err != nil {
		return fmt.Errorf("failed to record care: %w", err)
	}

	verb := "Watered"
	if kind == plants.CareFertilize {
		verb = "Fertilized"
	}
	when := "just now"
	if now.Sub(at) >= time.Minute {
		when = humanize.RelTime(at, now, "ago", "from now")
	}
	fmt.Printf("✓ %s %s (%s)\n", verb, strings.Join(names, ", "), when)

	return nil
}

// parseCareTime interprets the --at flag relative to now. Future times are
// rejected.
func parseCareTime(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)

	var at time.Time
	switch {
	case lower == "" || lower == "now":
		return now, nil
	case lower == "yesterday":
		at = now.AddDate(0, 0, -1)
	case strings.HasSuffix(lower, "d") && isDigits(strings.TrimSuffix(lower, "d")):
		n, err := strconv.Atoi(strings.TrimSuffix(lower, "d"))
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid --at value %q: %w", s, err)
		}
		at = now.AddDate(0, 0, -n)
	default:
		if d, err := time.ParseDuration(lower); err == nil {
			at = now.Add(-d)
			break
		}
		var parsed bool
		for _, layout := range []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02"} {
			if t, err := time.ParseInLocation(layout, s, now.Location()); err == nil {
				at, parsed = t, true
				break
			}
		}
		if !parsed {
			return time.Time{}, fmt.Errorf("invalid --at value %q: use a duration like 2h or 3d, 'yesterday', YYYY-MM-DD or RFC3339", s)
		}
	}

	if at.After(now) {
		return time.Time{}, fmt.Errorf("--at %q is in the future", s)
	}
	return at, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
