package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/leafcare/internal/config"
	"github.com/blackwell-systems/leafcare/internal/store"
)

// nowFunc is the clock used by every command.
var nowFunc = time.Now

// homeFile returns a path inside the leafcare home directory.
func homeFile(name string) (string, error) {
	dir, err := config.HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// getBackupDir returns the directory for backup files.
// Uses $HOME/.leafcare/backups by default.
func getBackupDir() (string, error) {
	return homeFile("backups")
}

// openStore opens the database. When create is set the schema is created
// if missing; otherwise a missing schema surfaces as ErrNotInitialized.
func openStore(create bool) (*store.Store, error) {
	path, err := getDBPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get database path: %w", err)
	}

	if !create {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return nil, store.ErrNotInitialized
		}
	}

	st, err := store.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if create {
		if err := st.CreateSchema(); err != nil {
			st.Close()
			return nil, fmt.Errorf("failed to create database schema: %w", err)
		}
	}

	return st, nil
}

// loadSettings reads config.yaml from the config directory.
func loadSettings() (*config.Settings, error) {
	dir, err := config.Dir()
	if err != nil {
		return &config.Settings{}, nil
	}
	return config.Load(dir)
}

// loadAliases reads the care-log alias file from the config directory.
func loadAliases() (*config.AliasConfig, error) {
	dir, err := config.Dir()
	if err != nil {
		return &config.AliasConfig{Aliases: map[string]string{}}, nil
	}
	return config.LoadAliases(dir)
}

// confirm asks a yes/no question on stdin. Anything but y/yes is a no.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}

// commandContext returns the command's context, or Background when the
// command was invoked outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}
