package app

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/leafcare/internal/analyzer"
	"github.com/blackwell-systems/leafcare/internal/output"
	"github.com/blackwell-systems/leafcare/internal/store"
)

var explainCmd = &cobra.Command{
	Use:   "explain <plant>",
	Short: "Show how a plant's health score was computed",
	Long: `Display the breakdown of a plant's health score: each component, its
weight, the care history behind it and the recommended next step.

The plant may be referenced by nickname, full ID or an ID prefix of at
least four characters.`,
	Example: `  leafcare explain Fernando
  leafcare explain 3f1c`,
	Args: cobra.ExactArgs(1),
	RunE: runExplain,
}

func init() {
	RootCmd.AddCommand(explainCmd)
}

func runExplain(cmd *cobra.Command, args []string) error {
	ref := args[0]

	st, err := openStore(false)
	if err != nil {
		return err
	}
	defer st.Close()

	a := analyzer.New(st)

	ph, err := a.ScorePlant(ref, nowFunc())
	if err != nil {
		if errors.Is(err, store.ErrPlantNotFound) {
			return fmt.Errorf("plant not found: %s\nRun 'leafcare list' to see registered plants", ref)
		}
		return err
	}

	stats, err := a.GetCareStats(ph.Plant.ID)
	if err != nil {
		return fmt.Errorf("failed to load care history: %w", err)
	}

	fmt.Println()
	fmt.Print(output.RenderExplanation(ph, stats))
	fmt.Println()

	return nil
}
