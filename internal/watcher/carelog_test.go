package watcher

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/blackwell-systems/leafcare/internal/config"
	"github.com/blackwell-systems/leafcare/internal/plants"
)

// ── parseCareLogLine ─────────────────────────────────────────────────────────

func TestParseCareLogLine_Valid(t *testing.T) {
	ms, ref, kind, ok := parseCareLogLine("1780315200000,Fernando,fertilize")
	if !ok {
		t.Fatal("expected ok=true")
	}
	if ms != 1780315200000 {
		t.Errorf("ms = %d, want 1780315200000", ms)
	}
	if ref != "Fernando" {
		t.Errorf("ref = %q, want Fernando", ref)
	}
	if kind != plants.CareFertilize {
		t.Errorf("kind = %s, want fertilize", kind)
	}
}

func TestParseCareLogLine_DefaultsToWater(t *testing.T) {
	_, ref, kind, ok := parseCareLogLine("1780315200000,kitchen fern")
	if !ok {
		t.Fatal("expected ok=true")
	}
	if ref != "kitchen fern" || kind != plants.CareWater {
		t.Errorf("got (%q, %s), want (kitchen fern, water)", ref, kind)
	}
}

func TestParseCareLogLine_Invalid(t *testing.T) {
	lines := []string{
		"1780315200000Fernando",
		",Fernando,water",
		"not-a-number,Fernando,water",
		"-5,Fernando,water",
		"1780315200000,",
		"1780315200000, ,water",
		"1780315200000,Fernando,prune",
	}
	for _, line := range lines {
		if _, _, _, ok := parseCareLogLine(line); ok {
			t.Errorf("parseCareLogLine(%q) ok=true, want false", line)
		}
	}
}

// ── offset file ──────────────────────────────────────────────────────────────

func TestReadOffset_Missing(t *testing.T) {
	off, err := readOffset(filepath.Join(t.TempDir(), "care.offset"))
	if err != nil {
		t.Fatalf("readOffset: %v", err)
	}
	if off != 0 {
		t.Errorf("offset = %d, want 0", off)
	}
}

func TestWriteOffsetAtomic_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "care.offset")
	if err := writeOffsetAtomic(path, 12345); err != nil {
		t.Fatalf("writeOffsetAtomic: %v", err)
	}
	off, err := readOffset(path)
	if err != nil {
		t.Fatalf("readOffset: %v", err)
	}
	if off != 12345 {
		t.Errorf("offset = %d, want 12345", off)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(path), ".offset.tmp")); !os.IsNotExist(err) {
		t.Error("temp offset file left behind")
	}
}

func TestReadOffset_Garbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "care.offset")
	if err := os.WriteFile(path, []byte("abc"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := readOffset(path); err == nil {
		t.Error("expected error for non-numeric offset")
	}
}

// ── ProcessCareLog ───────────────────────────────────────────────────────────

func TestAppendCareLog_Format(t *testing.T) {
	path := filepath.Join(t.TempDir(), "care.log")
	ts := time.UnixMilli(1780315200000)

	if err := AppendCareLog(path, ts, " Fernando ", plants.CareWater); err != nil {
		t.Fatalf("AppendCareLog: %v", err)
	}
	if err := AppendCareLog(path, ts, "Spike", plants.CareFertilize); err != nil {
		t.Fatalf("AppendCareLog: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "1780315200000,Fernando,water\n1780315200000,Spike,fertilize\n"
	if string(data) != want {
		t.Errorf("log = %q, want %q", data, want)
	}

	if err := AppendCareLog(path, ts, "bad\nref", plants.CareWater); err == nil {
		t.Error("expected error for reference containing a newline")
	}
}

func TestProcessCareLog_MissingLog(t *testing.T) {
	st := setupTestStore(t)
	paths := DefaultPaths(t.TempDir())

	n, err := ProcessCareLog(st, paths, NewResolver(st, nil).Resolve)
	if err != nil {
		t.Fatalf("ProcessCareLog: %v", err)
	}
	if n != 0 {
		t.Errorf("n = %d, want 0", n)
	}
}

func TestProcessCareLog_RecordsAndAdvances(t *testing.T) {
	st := setupTestStore(t)
	insertPlant(t, st, "plant-fern-0001", "Fernando")
	insertPlant(t, st, "plant-cact-0002", "Spike")

	paths := DefaultPaths(t.TempDir())
	aliases := &config.AliasConfig{Aliases: map[string]string{"kf": "Fernando"}}
	resolve := NewResolver(st, aliases).Resolve

	watered := time.Now().Add(-time.Hour).Truncate(time.Second)
	content := strings.Join([]string{
		itoa(watered.UnixMilli()) + ",kf,water",
		itoa(watered.UnixMilli()) + ",spike,fertilize",
		"garbage line",
		itoa(watered.UnixMilli()) + ",Ghost,water",
		"",
	}, "\n")
	if err := os.WriteFile(paths.Log, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	n, err := ProcessCareLog(st, paths, resolve)
	if err != nil {
		t.Fatalf("ProcessCareLog: %v", err)
	}
	if n != 2 {
		t.Errorf("n = %d, want 2", n)
	}

	fern, err := st.GetPlant("plant-fern-0001")
	if err != nil {
		t.Fatal(err)
	}
	if !fern.LastWateredAt.Equal(watered) {
		t.Errorf("LastWateredAt = %v, want %v", fern.LastWateredAt, watered)
	}

	spike, _ := st.GetPlant("plant-cact-0002")
	if !spike.LastFertilizedAt.Equal(watered) {
		t.Errorf("LastFertilizedAt = %v, want %v", spike.LastFertilizedAt, watered)
	}

	off, _ := readOffset(paths.Offset)
	if off != int64(len(content)) {
		t.Errorf("offset = %d, want %d", off, len(content))
	}

	// A second pass finds nothing new.
	n, err = ProcessCareLog(st, paths, resolve)
	if err != nil {
		t.Fatalf("second ProcessCareLog: %v", err)
	}
	if n != 0 {
		t.Errorf("second pass n = %d, want 0", n)
	}
	count, _ := st.GetEventCount()
	if count != 2 {
		t.Errorf("event count = %d, want 2", count)
	}
}

func TestProcessCareLog_LeavesPartialLine(t *testing.T) {
	st := setupTestStore(t)
	insertPlant(t, st, "plant-fern-0001", "Fernando")

	paths := DefaultPaths(t.TempDir())
	resolve := NewResolver(st, nil).Resolve

	ts := itoa(time.Now().UnixMilli())
	complete := ts + ",Fernando,water\n"
	if err := os.WriteFile(paths.Log, []byte(complete+ts+",Fern"), 0644); err != nil {
		t.Fatal(err)
	}

	n, err := ProcessCareLog(st, paths, resolve)
	if err != nil {
		t.Fatalf("ProcessCareLog: %v", err)
	}
	if n != 1 {
		t.Errorf("n = %d, want 1", n)
	}
	off, _ := readOffset(paths.Offset)
	if off != int64(len(complete)) {
		t.Errorf("offset = %d, want %d (partial line must not be consumed)", off, len(complete))
	}

	// Finish the line; the next pass picks it up.
	f, err := os.OpenFile(paths.Log, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatal(err)
	}
	f.WriteString("ando,fertilize\n")
	f.Close()

	n, err = ProcessCareLog(st, paths, resolve)
	if err != nil {
		t.Fatalf("ProcessCareLog: %v", err)
	}
	if n != 1 {
		t.Errorf("n = %d, want 1 after completing the line", n)
	}
}

func TestProcessCareLog_TruncatedLogResets(t *testing.T) {
	st := setupTestStore(t)
	insertPlant(t, st, "plant-fern-0001", "Fernando")

	paths := DefaultPaths(t.TempDir())
	if err := writeOffsetAtomic(paths.Offset, 9999); err != nil {
		t.Fatal(err)
	}
	line := itoa(time.Now().UnixMilli()) + ",Fernando,water\n"
	if err := os.WriteFile(paths.Log, []byte(line), 0644); err != nil {
		t.Fatal(err)
	}

	n, err := ProcessCareLog(st, paths, NewResolver(st, nil).Resolve)
	if err != nil {
		t.Fatalf("ProcessCareLog: %v", err)
	}
	if n != 1 {
		t.Errorf("n = %d, want 1 after offset reset", n)
	}
}

func TestProcessCareLog_OnlyUnknownLinesStillAdvance(t *testing.T) {
	st := setupTestStore(t)
	paths := DefaultPaths(t.TempDir())

	content := itoa(time.Now().UnixMilli()) + ",Nobody,water\n"
	if err := os.WriteFile(paths.Log, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ProcessCareLog(st, paths, NewResolver(st, nil).Resolve); err != nil {
		t.Fatalf("ProcessCareLog: %v", err)
	}
	off, _ := readOffset(paths.Offset)
	if off != int64(len(content)) {
		t.Errorf("offset = %d, want %d", off, len(content))
	}
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
