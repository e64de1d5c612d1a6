package app

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/leafcare/internal/config"
	"github.com/blackwell-systems/leafcare/internal/output"
	"github.com/blackwell-systems/leafcare/internal/store"
	"github.com/blackwell-systems/leafcare/internal/watcher"
)

var (
	watchDaemon      bool
	watchDaemonChild bool
	watchPIDFile     string
	watchLogFile     string
	watchStop        bool
	watchOnce        bool

	watchCmd = &cobra.Command{
		Use:   "watch",
		Short: "Record care logged with leafcare-log",
		Long: `Follow the care log and record new entries in the database.

leafcare-log appends one line per watering or feeding to ~/.leafcare/care.log
without touching the database, so it is safe to call from phone shortcuts,
NFC tags or cron. The watch command picks those lines up as soon as they are
written, and also polls on a ticker (poll_interval in config.yaml, 30s by
default) for filesystems that do not deliver change events.

Watch modes:
  • Foreground (default): Run in current terminal with Ctrl+C to stop
  • Daemon: Run as background process
  • Once: Process pending entries and exit
  • Stop: Stop a running daemon

Log entries may name a plant by nickname, ID, ID prefix or an alias from
~/.config/leafcare/aliases ("kf = Fernando").`,
		Example: `  # Run in foreground (Ctrl+C to stop)
  leafcare watch

  # Run as background daemon
  leafcare watch --daemon

  # Stop running daemon
  leafcare watch --stop

  # Process pending entries from cron
  leafcare watch --once`,
		RunE: runWatch,
	}
)

func init() {
	watchCmd.Flags().BoolVar(&watchDaemon, "daemon", false, "run as background daemon")
	watchCmd.Flags().BoolVar(&watchDaemonChild, "daemon-child", false, "internal flag for daemon child process")
	watchCmd.Flags().StringVar(&watchPIDFile, "pid-file", "", "PID file path (default: ~/.leafcare/watch.pid)")
	watchCmd.Flags().StringVar(&watchLogFile, "log-file", "", "log file path (default: ~/.leafcare/watch.log)")
	watchCmd.Flags().BoolVar(&watchStop, "stop", false, "stop running daemon")
	watchCmd.Flags().BoolVar(&watchOnce, "once", false, "process pending entries and exit")

	watchCmd.Flags().MarkHidden("daemon-child")

	RootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watchPIDFile == "" {
		defaultPID, err := getDefaultPIDFile()
		if err != nil {
			return fmt.Errorf("failed to get default PID file path: %w", err)
		}
		watchPIDFile = defaultPID
	}

	if watchLogFile == "" {
		defaultLog, err := getDefaultLogFile()
		if err != nil {
			return fmt.Errorf("failed to get default log file path: %w", err)
		}
		watchLogFile = defaultLog
	}

	if watchStop {
		return stopWatchDaemon()
	}

	// The parent only forks; the child opens the database itself.
	if watchDaemon {
		return startWatchDaemon()
	}

	st, err := openStore(true)
	if err != nil {
		return err
	}
	defer st.Close()

	w, err := newWatcher(st)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	if watchDaemonChild {
		return w.RunDaemon(watchPIDFile)
	}

	if watchOnce {
		n, err := w.ProcessOnce()
		if err != nil {
			return fmt.Errorf("failed to process care log: %w", err)
		}
		fmt.Printf("✓ Recorded %d care %s\n", n, pluralize(n, "event", "events"))
		return nil
	}

	return runWatchForeground(w)
}

// newWatcher builds a watcher over the default care log with the user's
// aliases and poll interval.
func newWatcher(st *store.Store) (*watcher.Watcher, error) {
	home, err := config.HomeDir()
	if err != nil {
		return nil, err
	}

	settings, err := loadSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	aliases, err := loadAliases()
	if err != nil {
		return nil, fmt.Errorf("failed to load aliases: %w", err)
	}

	return watcher.New(st, watcher.Options{
		Paths:        watcher.DefaultPaths(home),
		Aliases:      aliases,
		PollInterval: settings.PollIntervalDuration(),
	})
}

func stopWatchDaemon() error {
	running, err := watcher.IsDaemonRunning(watchPIDFile)
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}

	if !running {
		fmt.Println("Daemon is not running")
		return nil
	}

	spinner := output.NewSpinner("Stopping daemon")
	spinner.Start()
	if err := watcher.StopDaemon(watchPIDFile); err != nil {
		spinner.Stop()
		return fmt.Errorf("failed to stop daemon: %w", err)
	}
	spinner.StopWithMessage("✓ Daemon stopped")

	return nil
}

func startWatchDaemon() error {
	extra := []string{"--pid-file", watchPIDFile, "--log-file", watchLogFile}
	if dbPath != "" {
		extra = append(extra, "--db", dbPath)
	}

	pid, err := watcher.StartDaemon(watchPIDFile, watchLogFile, extra...)
	if err != nil {
		return fmt.Errorf("failed to start daemon: %w", err)
	}

	fmt.Printf("✓ Care log daemon started (PID %d)\n", pid)
	fmt.Printf("  PID file: %s\n", watchPIDFile)
	fmt.Printf("  Log file: %s\n", watchLogFile)
	fmt.Printf("\nTo stop: leafcare watch --stop\n")

	return nil
}

func runWatchForeground(w *watcher.Watcher) error {
	fmt.Println("Following the care log (press Ctrl+C to stop)...")

	if err := w.Start(); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	if n := w.Processed(); n > 0 {
		fmt.Printf("✓ Recorded %d pending care %s\n", n, pluralize(n, "event", "events"))
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(sigCh)

	sig := <-sigCh
	fmt.Printf("\nReceived signal %v, shutting down...\n", sig)

	if err := w.Stop(); err != nil {
		return fmt.Errorf("failed to stop watcher: %w", err)
	}

	fmt.Printf("✓ Recorded %d care %s this session\n", w.Processed(), pluralize(w.Processed(), "event", "events"))
	return nil
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
