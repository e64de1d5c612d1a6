// Command leafcare-log records a watering or feeding without opening the
// database. It appends one line to ~/.leafcare/care.log, which
// 'leafcare watch' picks up and records.
//
// It is meant to be called from phone shortcuts, NFC tags, cron jobs or
// irrigation scripts:
//
//	leafcare-log Fernando
//	leafcare-log kf fertilize
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/blackwell-systems/leafcare/internal/config"
	"github.com/blackwell-systems/leafcare/internal/plants"
	"github.com/blackwell-systems/leafcare/internal/watcher"
)

const usage = "usage: leafcare-log <plant> [water|fertilize]"

func main() {
	if err := run(os.Args[1:], time.Now()); err != nil {
		fmt.Fprintf(os.Stderr, "leafcare-log: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, now time.Time) error {
	if len(args) < 1 || len(args) > 2 || strings.TrimSpace(args[0]) == "" {
		return fmt.Errorf("%s", usage)
	}

	kind := plants.CareWater
	if len(args) == 2 {
		k, err := plants.ParseCareKind(args[1])
		if err != nil {
			return err
		}
		kind = k
	}

	// Same .env as 'leafcare', so both agree on LEAFCARE_HOME.
	if dir, err := config.Dir(); err == nil {
		if _, err := config.LoadEnv(dir); err != nil {
			return err
		}
	}

	home, err := config.HomeDir()
	if err != nil {
		return err
	}

	logPath := watcher.DefaultPaths(home).Log
	if err := watcher.AppendCareLog(logPath, now, args[0], kind); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(logPath), err)
	}
	return nil
}
