package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/leafcare/internal/analyzer"
	"github.com/blackwell-systems/leafcare/internal/health"
	"github.com/blackwell-systems/leafcare/internal/output"
)

var (
	listStatusFilter string
	listAttention    bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the health of every plant",
	Long: `Score every registered plant and show a health table.

Health combines hydration (60%), nutrition (25%) and care consistency (15%):
  healthy   75% and above
  warning   45% to 74%
  critical  below 45%`,
	Example: `  leafcare list
  leafcare list --status critical
  leafcare list --attention`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listStatusFilter, "status", "", "only show plants with this status: healthy, warning, critical")
	listCmd.Flags().BoolVar(&listAttention, "attention", false, "only show plants that need attention, worst first")

	RootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	var status health.Status
	if listStatusFilter != "" {
		s, ok := health.ParseStatus(listStatusFilter)
		if !ok {
			return fmt.Errorf("invalid status %q: must be one of: healthy, warning, critical", listStatusFilter)
		}
		status = s
	}

	st, err := openStore(false)
	if err != nil {
		return err
	}
	defer st.Close()

	a := analyzer.New(st)
	ctx := commandContext(cmd)
	now := nowFunc()

	var rows []*analyzer.PlantHealth
	switch {
	case listAttention:
		rows, err = a.Attention(ctx, now)
	case status != "":
		rows, err = a.GetPlantsByStatus(ctx, status, now)
	default:
		rows, err = a.ScoreAll(ctx, now)
	}
	if err != nil {
		return err
	}

	if status != "" && len(rows) == 0 {
		fmt.Printf("No %s plants.\n", status)
		return nil
	}
	if listAttention && len(rows) == 0 {
		fmt.Println("Every plant is healthy. \U0001F33F")
		return nil
	}

	fmt.Print(output.RenderPlantTable(rows))
	fmt.Println()
	fmt.Println(output.RenderStatusSummary(rows))

	return nil
}
