package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/leafcare/internal/config"
)

var (
	dbPath string

	// RootCmd is the root command for leafcare
	RootCmd = &cobra.Command{
		Use:   "leafcare",
		Short: "Houseplant care tracker with health scoring and reminders",
		Long: `leafcare keeps track of when your houseplants were watered and fed,
scores each plant's health from its care history, and tells you what
needs doing today.

Plants are classified into care archetypes (cactus, fern, orchid, ...)
from whatever you know about them, which sets sensible default watering
and feeding intervals.

Quick Start:
  1. leafcare add "boston fern" --nickname Fernando
  2. leafcare water Fernando
  3. leafcare list

Features:
  • Health score from hydration, nutrition and care consistency
  • Automatic plant-type classification with default care cadence
  • Daily reminders for watering and feeding
  • Care logging from scripts and shortcuts via leafcare-log
  • Automatic backups before removals

Examples:
  # See how every plant is doing
  leafcare list

  # What needs doing today?
  leafcare remind

  # Why is a plant unhappy?
  leafcare explain Fernando

  # Pick up care logged by leafcare-log in the background
  leafcare watch --daemon`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadEnvironment()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, _ := getDBPath()
			fmt.Println("leafcare: houseplant care tracker")
			fmt.Println()
			if _, err := os.Stat(dbPath); os.IsNotExist(err) {
				fmt.Println("Run 'leafcare add <plant>' to register your first plant.")
				fmt.Println("Run 'leafcare --help' for the full reference.")
			} else {
				fmt.Println("Tip: Run 'leafcare list' to see how your plants are doing.")
				fmt.Println("     Run 'leafcare remind' to see what needs doing today.")
				fmt.Println("     Run 'leafcare --help' for all commands.")
			}
			return nil
		},
	}
)

func init() {
	RootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default: ~/.leafcare/leafcare.db)")

	RootCmd.SuggestionsMinimumDistance = 2
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}

// loadEnvironment applies .env from the config directory before any
// command resolves its paths.
func loadEnvironment() error {
	dir, err := config.Dir()
	if err != nil {
		return nil
	}
	if _, err := config.LoadEnv(dir); err != nil {
		return err
	}
	return nil
}

// getDBPath returns the database path, using the flag value or default
func getDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	return config.DBPath()
}

// getDefaultPIDFile returns the default PID file path
func getDefaultPIDFile() (string, error) {
	return homeFile("watch.pid")
}

// getDefaultLogFile returns the default daemon log file path
func getDefaultLogFile() (string, error) {
	return homeFile("watch.log")
}
