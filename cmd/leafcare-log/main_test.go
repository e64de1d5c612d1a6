package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/blackwell-systems/leafcare/internal/config"
)

func TestRun(t *testing.T) {
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	now := time.UnixMilli(1780315200000)
	if err := run([]string{"Fernando"}, now); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if err := run([]string{"kf", "feed"}, now); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(home, "care.log"))
	if err != nil {
		t.Fatal(err)
	}
	want := "1780315200000,Fernando,water\n1780315200000,kf,fertilize\n"
	if string(data) != want {
		t.Errorf("care.log = %q, want %q", data, want)
	}
}

func TestRun_HomeFromEnvFile(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Setenv("HOME", t.TempDir())
	// Unset so the .env value applies; godotenv never overrides set variables.
	t.Setenv(config.EnvHome, "")
	os.Unsetenv(config.EnvHome)

	custom := t.TempDir()
	dir := filepath.Join(xdg, "leafcare")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(config.EnvHome+"="+custom+"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := run([]string{"Fernando"}, time.UnixMilli(1780315200000)); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(custom, "care.log"))
	if err != nil {
		t.Fatalf("care.log not written under .env LEAFCARE_HOME: %v", err)
	}
	if string(data) != "1780315200000,Fernando,water\n" {
		t.Errorf("care.log = %q", data)
	}
}

func TestRun_BadArgs(t *testing.T) {
	t.Setenv(config.EnvHome, t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no args", nil, "usage"},
		{"too many", []string{"a", "water", "extra"}, "usage"},
		{"blank plant", []string{"  "}, "usage"},
		{"bad kind", []string{"Fernando", "prune"}, "unknown care kind"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(tt.args, time.Now())
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("run(%v) error = %v, want %q", tt.args, err, tt.want)
			}
		})
	}
}
