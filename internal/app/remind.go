package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/leafcare/internal/analyzer"
	"github.com/blackwell-systems/leafcare/internal/output"
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "List the care tasks due today",
	Long: `List every watering and feeding that is due today, most urgent first.

A task is due once its interval has elapsed. Plants whose hydration has
fallen far behind are marked urgent.`,
	Example: `  leafcare remind`,
	Args:    cobra.NoArgs,
	RunE:    runRemind,
}

func init() {
	RootCmd.AddCommand(remindCmd)
}

func runRemind(cmd *cobra.Command, args []string) error {
	st, err := openStore(false)
	if err != nil {
		return err
	}
	defer st.Close()

	reminders, err := analyzer.New(st).Reminders(commandContext(cmd), nowFunc())
	if err != nil {
		return fmt.Errorf("failed to compute reminders: %w", err)
	}

	fmt.Print(output.RenderReminders(reminders))
	return nil
}
