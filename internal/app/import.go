package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/blackwell-systems/leafcare/internal/output"
	"github.com/blackwell-systems/leafcare/internal/plants"
)

var importDryRun bool

var importCmd = &cobra.Command{
	Use:   "import <file.yaml>",
	Short: "Register several plants from a YAML file",
	Long: `Register every plant listed in a YAML file. Each entry takes the same
fields as 'leafcare add'; only common_name or nickname is required.

  plants:
    - nickname: Fernando
      common_name: boston fern
    - common_name: snake plant
      genus: Sansevieria
      watering_days: 21
    - common_name: basil
      drought_tolerant: false

The whole file is validated before anything is stored.`,
	Example: `  leafcare import plants.yaml
  leafcare import plants.yaml --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "validate and classify without storing")

	RootCmd.AddCommand(importCmd)
}

// importFile is the YAML layout accepted by import.
type importFile struct {
	Plants []importEntry `yaml:"plants"`
}

type importEntry struct {
	Nickname        string `yaml:"nickname"`
	CommonName      string `yaml:"common_name"`
	ScientificName  string `yaml:"scientific_name"`
	Family          string `yaml:"family"`
	Genus           string `yaml:"genus"`
	WateringDays    int    `yaml:"watering_days"`
	FertilizingDays int    `yaml:"fertilizing_days"`
	DroughtTolerant *bool  `yaml:"drought_tolerant"`
}

func (e importEntry) registration() plants.Registration {
	return plants.Registration{
		Nickname:                e.Nickname,
		CommonName:              e.CommonName,
		ScientificName:          e.ScientificName,
		Family:                  e.Family,
		Genus:                   e.Genus,
		WateringIntervalDays:    e.WateringDays,
		FertilizingIntervalDays: e.FertilizingDays,
		DroughtTolerant:         e.DroughtTolerant,
	}
}

// loadImportFile parses and validates path.
func loadImportFile(path string) ([]importEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read import file: %w", err)
	}

	var f importFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	for i, e := range f.Plants {
		if strings.TrimSpace(e.CommonName) == "" && strings.TrimSpace(e.Nickname) == "" {
			return nil, fmt.Errorf("entry %d: common_name or nickname is required", i+1)
		}
		if e.WateringDays < 0 || e.FertilizingDays < 0 {
			return nil, fmt.Errorf("entry %d: care intervals must be positive", i+1)
		}
	}

	return f.Plants, nil
}

func runImport(cmd *cobra.Command, args []string) error {
	entries, err := loadImportFile(args[0])
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No plants in file.")
		return nil
	}

	if importDryRun {
		for _, e := range entries {
			p := plants.New(e.registration(), nowFunc())
			fmt.Printf("  %-20s → %s (%s, %.0f%%)\n", p.DisplayName(), p.Archetype, p.MatchMethod, p.MatchConfidence*100)
		}
		fmt.Printf("\nDry-run mode: %d %s would be added.\n", len(entries), pluralize(len(entries), "plant", "plants"))
		return nil
	}

	settings, err := loadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	st, err := openStore(true)
	if err != nil {
		return err
	}
	defer st.Close()

	progress := output.NewProgress(len(entries), "Importing plants")
	for _, e := range entries {
		if _, err := registerPlant(st, settings, e.registration()); err != nil {
			progress.Finish()
			return err
		}
		progress.Increment()
	}
	progress.Finish()

	fmt.Printf("✓ Imported %d %s\n", len(entries), pluralize(len(entries), "plant", "plants"))
	return nil
}
