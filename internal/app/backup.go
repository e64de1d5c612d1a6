package app

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/leafcare/internal/backups"
	"github.com/blackwell-systems/leafcare/internal/output"
	"github.com/blackwell-systems/leafcare/internal/store"
)

var (
	backupRestoreYes bool
	backupCleanupAge string
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Create, list and restore collection backups",
	Long: `Backups are JSON exports of every plant and its care history, kept in
~/.leafcare/backups. One is written automatically before each removal.

Restoring brings back removed plants with their history and resets the
profile of plants that still exist. Care recorded after the backup is kept.`,
	Example: `  leafcare backup create "before repotting"
  leafcare backup list
  leafcare backup restore latest
  leafcare backup cleanup --older-than 720h`,
}

var backupCreateCmd = &cobra.Command{
	Use:   "create [reason]",
	Short: "Write a backup now",
	RunE:  runBackupCreate,
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List backups, newest first",
	Args:  cobra.NoArgs,
	RunE:  runBackupList,
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore <backup-id | latest>",
	Short: "Restore plants from a backup",
	Args:  cobra.ExactArgs(1),
	RunE:  runBackupRestore,
}

var backupCleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete backup files past the retention period",
	Long: `Delete backup files older than the retention period (backup_retention in
config.yaml, 30 days by default). The backup records are kept as an audit
trail but can no longer be restored.`,
	Args: cobra.NoArgs,
	RunE: runBackupCleanup,
}

func init() {
	backupRestoreCmd.Flags().BoolVar(&backupRestoreYes, "yes", false, "Skip confirmation prompt")
	backupCleanupCmd.Flags().StringVar(&backupCleanupAge, "older-than", "", "override the retention period, e.g. 168h")

	backupCmd.AddCommand(backupCreateCmd, backupListCmd, backupRestoreCmd, backupCleanupCmd)
	RootCmd.AddCommand(backupCmd)
}

func openBackups() (*store.Store, *backups.Manager, error) {
	st, err := openStore(false)
	if err != nil {
		return nil, nil, err
	}
	dir, err := getBackupDir()
	if err != nil {
		st.Close()
		return nil, nil, err
	}
	return st, backups.New(st, dir), nil
}

func runBackupCreate(cmd *cobra.Command, args []string) error {
	reason := strings.Join(args, " ")
	if reason == "" {
		reason = "manual"
	}

	st, mgr, err := openBackups()
	if err != nil {
		return err
	}
	defer st.Close()

	spinner := output.NewSpinner("Writing backup")
	spinner.Start()
	id, err := mgr.Create(reason)
	if err != nil {
		spinner.Stop()
		return fmt.Errorf("failed to create backup: %w", err)
	}
	spinner.StopWithMessage(fmt.Sprintf("✓ Backup %d written", id))

	return nil
}

func runBackupList(cmd *cobra.Command, args []string) error {
	st, mgr, err := openBackups()
	if err != nil {
		return err
	}
	defer st.Close()

	list, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	fmt.Print(output.RenderBackupTable(list))
	return nil
}

func runBackupRestore(cmd *cobra.Command, args []string) error {
	st, mgr, err := openBackups()
	if err != nil {
		return err
	}
	defer st.Close()

	var id int64
	if args[0] == "latest" {
		list, err := mgr.List()
		if err != nil {
			return fmt.Errorf("failed to list backups: %w", err)
		}
		if len(list) == 0 {
			return fmt.Errorf("no backups found")
		}
		id = list[0].ID
	} else {
		id, err = strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid backup ID %q: must be a number or 'latest'", args[0])
		}
	}

	b, err := st.GetBackup(id)
	if err != nil {
		return fmt.Errorf("backup %d not found", id)
	}

	fmt.Printf("\nBackup %d: %s (%d plants, %s)\n\n", b.ID, b.Reason, b.PlantCount, b.CreatedAt.Local().Format("2006-01-02 15:04"))

	if !backupRestoreYes && !confirm("Restore this backup?") {
		fmt.Println("Restore cancelled.")
		return nil
	}

	result, err := mgr.Restore(id)
	if err != nil {
		return fmt.Errorf("failed to restore backup: %w", err)
	}

	fmt.Printf("✓ Restored backup %d: %d added, %d updated, %d care events\n",
		id, result.Added, result.Updated, result.Events)
	return nil
}

func runBackupCleanup(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	maxAge := settings.BackupRetentionDuration()
	if backupCleanupAge != "" {
		maxAge, err = time.ParseDuration(backupCleanupAge)
		if err != nil {
			return fmt.Errorf("invalid --older-than %q: %w", backupCleanupAge, err)
		}
	}

	st, mgr, err := openBackups()
	if err != nil {
		return err
	}
	defer st.Close()

	n, err := mgr.Cleanup(maxAge)
	if err != nil {
		return fmt.Errorf("failed to clean up backups: %w", err)
	}

	fmt.Printf("✓ Deleted %d backup %s older than %s\n", n, pluralize(n, "file", "files"), maxAge)
	return nil
}
