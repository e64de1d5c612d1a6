// Package config provides configuration and path resolution for leafcare.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override default paths.
const (
	EnvHome = "LEAFCARE_HOME"
	EnvDB   = "LEAFCARE_DB"
)

// Defaults used when config.yaml is absent or leaves a field empty.
const (
	DefaultBackupRetention = 30 * 24 * time.Hour
	DefaultPollInterval    = 30 * time.Second
)

// Dir returns the leafcare config directory, respecting XDG_CONFIG_HOME.
// Defaults to ~/.config/leafcare if XDG_CONFIG_HOME is not set.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "leafcare"), nil
}

// HomeDir returns the data directory holding the database, care log, PID
// file and backups, creating it if needed. LEAFCARE_HOME overrides the
// default of ~/.leafcare.
func HomeDir() (string, error) {
	dir := os.Getenv(EnvHome)
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		dir = filepath.Join(home, ".leafcare")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create leafcare directory: %w", err)
	}
	return dir, nil
}

// DBPath returns the database path. LEAFCARE_DB overrides the default
// {HomeDir}/leafcare.db.
func DBPath() (string, error) {
	if p := os.Getenv(EnvDB); p != "" {
		return p, nil
	}
	dir, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "leafcare.db"), nil
}

// LoadEnv loads {dir}/.env into the process environment. Variables that are
// already set take precedence. A missing file is not an error.
func LoadEnv(dir string) (bool, error) {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err := godotenv.Load(path); err != nil {
		return false, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return true, nil
}

// Cadence overrides the default care intervals for one archetype.
type Cadence struct {
	WateringDays    int `yaml:"watering_days"`
	FertilizingDays int `yaml:"fertilizing_days"`
}

// Settings is the user configuration loaded from config.yaml.
type Settings struct {
	// Archetypes maps classifier tags (e.g. "fern_boston") to cadence
	// overrides applied when a plant is added.
	Archetypes map[string]Cadence `yaml:"archetypes"`

	// BackupRetention is how long backup files are kept, e.g. "720h".
	BackupRetention string `yaml:"backup_retention"`

	// PollInterval is the care-log watcher's safety ticker, e.g. "30s".
	PollInterval string `yaml:"poll_interval"`

	backupRetention time.Duration
	pollInterval    time.Duration
}

// Load reads {dir}/config.yaml. A missing file yields default settings.
func Load(dir string) (*Settings, error) {
	s := &Settings{}

	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("parsing config.yaml: %w", err)
		}
	}

	if err := s.normalize(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) normalize() error {
	var err error

	s.backupRetention = DefaultBackupRetention
	if s.BackupRetention != "" {
		if s.backupRetention, err = time.ParseDuration(s.BackupRetention); err != nil {
			return fmt.Errorf("invalid backup_retention %q: %w", s.BackupRetention, err)
		}
	}

	s.pollInterval = DefaultPollInterval
	if s.PollInterval != "" {
		if s.pollInterval, err = time.ParseDuration(s.PollInterval); err != nil {
			return fmt.Errorf("invalid poll_interval %q: %w", s.PollInterval, err)
		}
		if s.pollInterval < time.Second {
			return fmt.Errorf("poll_interval must be at least 1s, got %s", s.pollInterval)
		}
	}

	normalized := make(map[string]Cadence, len(s.Archetypes))
	for tag, c := range s.Archetypes {
		if c.WateringDays < 0 || c.FertilizingDays < 0 {
			return fmt.Errorf("archetype %s: intervals must not be negative", tag)
		}
		normalized[strings.ToLower(strings.TrimSpace(tag))] = c
	}
	s.Archetypes = normalized

	return nil
}

// BackupRetentionDuration returns the parsed backup retention.
func (s *Settings) BackupRetentionDuration() time.Duration {
	if s == nil || s.backupRetention == 0 {
		return DefaultBackupRetention
	}
	return s.backupRetention
}

// PollIntervalDuration returns the parsed watcher poll interval.
func (s *Settings) PollIntervalDuration() time.Duration {
	if s == nil || s.pollInterval == 0 {
		return DefaultPollInterval
	}
	return s.pollInterval
}

// CadenceFor returns the override for an archetype tag, if any.
func (s *Settings) CadenceFor(tag string) (Cadence, bool) {
	if s == nil {
		return Cadence{}, false
	}
	c, ok := s.Archetypes[tag]
	return c, ok
}
