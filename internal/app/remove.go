package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/leafcare/internal/backups"
	"github.com/blackwell-systems/leafcare/internal/output"
	"github.com/blackwell-systems/leafcare/internal/store"
)

var (
	removeFlagYes      bool
	removeFlagNoBackup bool
)

var removeCmd = &cobra.Command{
	Use:   "remove <plant>",
	Short: "Remove a plant and its care history",
	Long: `Remove a plant and all of its recorded care.

A backup of the whole collection is written first so the plant can be
brought back with 'leafcare backup restore <id>'.`,
	Example: `  # Remove with confirmation
  leafcare remove Fernando

  # Remove without prompting
  leafcare remove Fernando --yes

  # Remove without a backup (cannot be undone!)
  leafcare remove Fernando --no-backup --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	removeCmd.Flags().BoolVar(&removeFlagYes, "yes", false, "Skip confirmation prompt")
	removeCmd.Flags().BoolVar(&removeFlagNoBackup, "no-backup", false, "Skip automatic backup (dangerous)")

	RootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	ref := args[0]

	st, err := openStore(false)
	if err != nil {
		return err
	}
	defer st.Close()

	p, err := st.FindPlant(ref)
	if err != nil {
		if errors.Is(err, store.ErrPlantNotFound) {
			return fmt.Errorf("plant not found: %s", ref)
		}
		return err
	}

	events, err := st.GetCareEvents(p.ID, time.Time{})
	if err != nil {
		return fmt.Errorf("failed to load care history: %w", err)
	}

	fmt.Printf("\nPlant to remove:\n")
	fmt.Printf("  %s (%s), %s\n", p.DisplayName(), p.ID[:min(8, len(p.ID))], p.Archetype)
	fmt.Printf("  Care events: %d\n", len(events))
	if removeFlagNoBackup {
		fmt.Printf("  ⚠  Backup: SKIPPED (--no-backup), removal cannot be undone!\n")
	} else {
		fmt.Printf("  Backup: will be created\n")
	}
	fmt.Println()

	if !removeFlagYes && !confirm("Remove this plant?") {
		fmt.Println("Removal cancelled.")
		return nil
	}

	var backupID int64
	if !removeFlagNoBackup {
		dir, err := getBackupDir()
		if err != nil {
			return err
		}
		spinner := output.NewSpinner("Writing backup")
		spinner.Start()
		backupID, err = backups.New(st, dir).Create(fmt.Sprintf("before removing %s", p.DisplayName()))
		if err != nil {
			spinner.Stop()
			return fmt.Errorf("failed to create backup: %w", err)
		}
		spinner.StopWithMessage(fmt.Sprintf("✓ Backup %d written", backupID))
	}

	if err := st.DeletePlant(p.ID); err != nil {
		return fmt.Errorf("failed to remove plant: %w", err)
	}

	fmt.Printf("✓ Removed %s\n", p.DisplayName())
	if backupID > 0 {
		fmt.Printf("\nUndo with: leafcare backup restore %d\n", backupID)
	}

	return nil
}
