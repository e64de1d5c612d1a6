package app

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/blackwell-systems/leafcare/internal/config"
	"github.com/blackwell-systems/leafcare/internal/plants"
	"github.com/blackwell-systems/leafcare/internal/store"
)

// testNow is the fixed clock used by command tests.
var testNow = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

// setupEnv points every leafcare path at temp directories and pins the clock.
// It returns the leafcare home directory.
func setupEnv(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvDB, "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	oldDBPath := dbPath
	dbPath = filepath.Join(home, "leafcare.db")
	oldNow := nowFunc
	nowFunc = func() time.Time { return testNow }
	t.Cleanup(func() {
		dbPath = oldDBPath
		nowFunc = oldNow
	})

	return home
}

// seedPlant registers a plant through the same path as 'leafcare add'.
func seedPlant(t *testing.T, reg plants.Registration) *plants.Plant {
	t.Helper()

	st, err := openStore(true)
	if err != nil {
		t.Fatalf("openStore: %v", err)
	}
	defer st.Close()

	p, err := registerPlant(st, &config.Settings{}, reg)
	if err != nil {
		t.Fatalf("registerPlant: %v", err)
	}
	return p
}

// withStore opens the test database for assertions.
func withStore(t *testing.T, f func(st *store.Store)) {
	t.Helper()
	st, err := openStore(false)
	if err != nil {
		t.Fatalf("openStore: %v", err)
	}
	defer st.Close()
	f(st)
}

// writeConfigFile writes name into the leafcare config directory.
func writeConfigFile(t *testing.T, name, content string) {
	t.Helper()
	dir, err := config.Dir()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

// captureStdout replaces os.Stdout with a pipe during f(), then restores it
// and returns all bytes written to stdout.
func captureStdout(t *testing.T, f func()) string {
	t.Helper()
	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	os.Stdout = w
	defer func() { os.Stdout = origStdout }()

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		buf.ReadFrom(r)
		done <- buf.String()
	}()

	f()

	w.Close()
	return <-done
}

// setFlag assigns a package-level flag variable for the duration of a test.
func setFlag[T any](t *testing.T, p *T, v T) {
	t.Helper()
	old := *p
	*p = v
	t.Cleanup(func() { *p = old })
}
