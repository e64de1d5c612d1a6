package app

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/blackwell-systems/leafcare/internal/plants"
	"github.com/blackwell-systems/leafcare/internal/store"
	"github.com/blackwell-systems/leafcare/internal/watcher"
)

func TestWatchCommand(t *testing.T) {
	if watchCmd.Use != "watch" {
		t.Errorf("expected Use to be 'watch', got '%s'", watchCmd.Use)
	}
	if watchCmd.Short == "" || watchCmd.Long == "" || watchCmd.Example == "" {
		t.Error("expected Short, Long and Example to be set")
	}
	if watchCmd.RunE == nil {
		t.Error("expected RunE to be set")
	}
}

func TestWatchCommandFlags(t *testing.T) {
	tests := []struct {
		flagName     string
		shouldHidden bool
	}{
		{"daemon", false},
		{"daemon-child", true},
		{"pid-file", false},
		{"log-file", false},
		{"stop", false},
		{"once", false},
	}

	for _, tt := range tests {
		t.Run(tt.flagName, func(t *testing.T) {
			flag := watchCmd.Flags().Lookup(tt.flagName)
			if flag == nil {
				t.Fatalf("expected flag '%s' to exist", tt.flagName)
			}
			if flag.Hidden != tt.shouldHidden {
				t.Errorf("flag '%s' hidden = %v, want %v", tt.flagName, flag.Hidden, tt.shouldHidden)
			}
		})
	}
}

func TestRunWatch_Once(t *testing.T) {
	home := setupEnv(t)
	fern := seedPlant(t, plants.Registration{Nickname: "Fernando", CommonName: "boston fern"})
	writeConfigFile(t, "aliases", "kf = Fernando\n")

	setFlag(t, &watchOnce, true)
	setFlag(t, &watchPIDFile, filepath.Join(home, "watch.pid"))
	setFlag(t, &watchLogFile, filepath.Join(home, "watch.log"))

	logPath := watcher.DefaultPaths(home).Log
	watered := testNow.Add(-3 * time.Hour)
	if err := watcher.AppendCareLog(logPath, watered, "kf", plants.CareWater); err != nil {
		t.Fatal(err)
	}
	if err := watcher.AppendCareLog(logPath, watered, "Ghost", plants.CareWater); err != nil {
		t.Fatal(err)
	}

	out := captureStdout(t, func() {
		if err := runWatch(watchCmd, nil); err != nil {
			t.Fatalf("runWatch() error = %v", err)
		}
	})
	if !strings.Contains(out, "Recorded 1 care event") {
		t.Errorf("unexpected output:\n%s", out)
	}

	withStore(t, func(st *store.Store) {
		p, err := st.GetPlant(fern.ID)
		if err != nil {
			t.Fatal(err)
		}
		if !p.LastWateredAt.Equal(watered) {
			t.Errorf("LastWateredAt = %v, want %v", p.LastWateredAt, watered)
		}
	})

	// A second pass has nothing new to record.
	out = captureStdout(t, func() {
		if err := runWatch(watchCmd, nil); err != nil {
			t.Fatalf("runWatch() error = %v", err)
		}
	})
	if !strings.Contains(out, "Recorded 0 care events") {
		t.Errorf("unexpected second-pass output:\n%s", out)
	}
}

func TestRunWatch_StopWhenNotRunning(t *testing.T) {
	home := setupEnv(t)
	setFlag(t, &watchStop, true)
	setFlag(t, &watchPIDFile, filepath.Join(home, "watch.pid"))
	setFlag(t, &watchLogFile, filepath.Join(home, "watch.log"))

	out := captureStdout(t, func() {
		if err := runWatch(watchCmd, nil); err != nil {
			t.Fatalf("runWatch() error = %v", err)
		}
	})
	if !strings.Contains(out, "Daemon is not running") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestNewWatcher_InvalidPollInterval(t *testing.T) {
	setupEnv(t)
	writeConfigFile(t, "config.yaml", "poll_interval: 10ms\n")

	st, err := openStore(true)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	if _, err := newWatcher(st); err == nil {
		t.Error("expected error for a poll interval below one second")
	}
}

func TestPluralize(t *testing.T) {
	if pluralize(1, "event", "events") != "event" {
		t.Error("pluralize(1) should be singular")
	}
	if pluralize(0, "event", "events") != "events" || pluralize(2, "event", "events") != "events" {
		t.Error("pluralize(0|2) should be plural")
	}
}
