package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/leafcare/internal/config"
	"github.com/blackwell-systems/leafcare/internal/plants"
	"github.com/blackwell-systems/leafcare/internal/store"
)

var (
	addNickname        string
	addScientific      string
	addFamily          string
	addGenus           string
	addWaterEvery      int
	addFeedEvery       int
	addDroughtTolerant bool
	addNotDrought      bool
)

var addCmd = &cobra.Command{
	Use:   "add <common name>",
	Short: "Register a new plant",
	Long: `Register a plant and classify it into a care archetype.

Classification uses whatever you know: genus, family, scientific name or
just the common name. The archetype supplies default watering and feeding
intervals, which can be overridden with flags or per archetype in
~/.config/leafcare/config.yaml.`,
	Example: `  leafcare add "boston fern" --nickname Fernando
  leafcare add "snake plant" --genus Sansevieria
  leafcare add basil --water-every 2 --feed-every 14
  leafcare add "jade plant" --family Crassulaceae --drought-tolerant`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addNickname, "nickname", "", "name you call the plant")
	addCmd.Flags().StringVar(&addScientific, "scientific", "", "scientific name, e.g. 'Nephrolepis exaltata'")
	addCmd.Flags().StringVar(&addFamily, "family", "", "botanical family")
	addCmd.Flags().StringVar(&addGenus, "genus", "", "botanical genus")
	addCmd.Flags().IntVar(&addWaterEvery, "water-every", 0, "watering interval in days (default: from archetype)")
	addCmd.Flags().IntVar(&addFeedEvery, "feed-every", 0, "fertilizing interval in days (default: from archetype)")
	addCmd.Flags().BoolVar(&addDroughtTolerant, "drought-tolerant", false, "plant tolerates missed waterings")
	addCmd.Flags().BoolVar(&addNotDrought, "not-drought-tolerant", false, "override a drought-tolerant archetype")
	addCmd.MarkFlagsMutuallyExclusive("drought-tolerant", "not-drought-tolerant")

	RootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	if addWaterEvery < 0 || addFeedEvery < 0 {
		return fmt.Errorf("care intervals must be positive")
	}

	settings, err := loadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	reg := plants.Registration{
		Nickname:                addNickname,
		CommonName:              strings.Join(args, " "),
		ScientificName:          addScientific,
		Family:                  addFamily,
		Genus:                   addGenus,
		WateringIntervalDays:    addWaterEvery,
		FertilizingIntervalDays: addFeedEvery,
	}
	switch {
	case addDroughtTolerant:
		reg.DroughtTolerant = &addDroughtTolerant
	case addNotDrought:
		no := false
		reg.DroughtTolerant = &no
	}

	st, err := openStore(true)
	if err != nil {
		return err
	}
	defer st.Close()

	p, err := registerPlant(st, settings, reg)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Added %s (%s)\n", p.DisplayName(), p.ID[:8])
	fmt.Printf("  Type: %s (matched by %s, %.0f%% confidence)\n", p.Archetype, p.MatchMethod, p.MatchConfidence*100)
	fmt.Printf("  Care: water every %d days, fertilize every %d days", p.WateringIntervalDays, p.FertilizingIntervalDays)
	if p.DroughtTolerant {
		fmt.Print(" (drought tolerant)")
	}
	fmt.Println()
	fmt.Printf("\nLog care with: leafcare water %s\n", quoteRef(p.DisplayName()))

	return nil
}

// registerPlant classifies reg, applies configured cadence overrides for
// intervals the user left unset, and stores the plant.
func registerPlant(st *store.Store, settings *config.Settings, reg plants.Registration) (*plants.Plant, error) {
	if strings.TrimSpace(reg.CommonName) == "" && strings.TrimSpace(reg.Nickname) == "" {
		return nil, fmt.Errorf("a plant needs a common name or a nickname")
	}

	p := plants.New(reg, nowFunc())

	if cadence, ok := settings.CadenceFor(p.Archetype); ok {
		if reg.WateringIntervalDays == 0 && cadence.WateringDays > 0 {
			p.WateringIntervalDays = cadence.WateringDays
		}
		if reg.FertilizingIntervalDays == 0 && cadence.FertilizingDays > 0 {
			p.FertilizingIntervalDays = cadence.FertilizingDays
		}
	}

	if err := st.InsertPlant(p); err != nil {
		return nil, fmt.Errorf("failed to save plant: %w", err)
	}
	return p, nil
}

// quoteRef quotes a plant reference for copy-paste into a shell.
func quoteRef(ref string) string {
	if strings.ContainsAny(ref, " '\"") {
		return fmt.Sprintf("%q", ref)
	}
	return ref
}
