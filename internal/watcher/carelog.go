package watcher

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/blackwell-systems/leafcare/internal/plants"
	"github.com/blackwell-systems/leafcare/internal/store"
)

const maxCareLogLinesPerPass = 10_000

// Paths locates the care log and its offset file.
type Paths struct {
	Log    string
	Offset string
}

// DefaultPaths returns the care log paths inside the leafcare home directory.
func DefaultPaths(home string) Paths {
	return Paths{
		Log:    filepath.Join(home, "care.log"),
		Offset: filepath.Join(home, "care.offset"),
	}
}

// AppendCareLog appends one entry to the care log, creating it if needed.
//
// Log format (one entry per line):
//
//	<unix_ms>,<plant-ref>,<kind>
//
// Example:
//
//	1780315200000,Fernando,water
func AppendCareLog(path string, ts time.Time, ref string, kind plants.CareKind) error {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.ContainsAny(ref, "\r\n") {
		return fmt.Errorf("invalid plant reference %q", ref)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open care log: %w", err)
	}
	defer f.Close()

	line := fmt.Sprintf("%d,%s,%s\n", ts.UnixMilli(), ref, kind)
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write care log: %w", err)
	}
	return nil
}

// ProcessCareLog reads entries appended since the last processed offset,
// resolves them to plants, and records them in a single transaction. It
// returns the number of events recorded. A missing log is not an error.
//
// Lines that are malformed or name an unknown plant are logged and skipped.
// A trailing line without a newline is still being written and is left for
// the next pass.
func ProcessCareLog(st *store.Store, paths Paths, resolve func(ref string) (string, bool)) (int, error) {
	info, err := os.Stat(paths.Log)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("carelog: stat log: %w", err)
	}

	offset, err := readOffset(paths.Offset)
	if err != nil {
		return 0, fmt.Errorf("carelog: read offset: %w", err)
	}

	// The log was truncated or replaced: start over.
	if offset > info.Size() {
		log.Printf("carelog: offset %d beyond log size %d, resetting", offset, info.Size())
		offset = 0
	}

	f, err := os.Open(paths.Log)
	if err != nil {
		return 0, fmt.Errorf("carelog: open log: %w", err)
	}
	defer f.Close()

	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return 0, fmt.Errorf("carelog: seek: %w", err)
	}

	var events []*store.CareEvent
	newOffset := offset
	lines := 0

	reader := bufio.NewReader(f)
	for lines < maxCareLogLinesPerPass {
		raw, err := reader.ReadString('\n')
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("carelog: read log: %w", err)
		}
		newOffset += int64(len(raw))
		lines++

		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		ms, ref, kind, ok := parseCareLogLine(line)
		if !ok {
			log.Printf("carelog: skipping malformed line: %q", line)
			continue
		}

		plantID, found := resolve(ref)
		if !found {
			log.Printf("carelog: skipping unknown plant %q", ref)
			continue
		}

		events = append(events, &store.CareEvent{
			PlantID:   plantID,
			Kind:      kind,
			Source:    "log",
			Timestamp: time.UnixMilli(ms).UTC(),
		})
	}

	if newOffset == offset {
		return 0, nil
	}

	if err := st.RecordCareBatch(events); err != nil {
		return 0, fmt.Errorf("carelog: record events: %w", err)
	}

	// Only advance the offset after a successful commit.
	if err := writeOffsetAtomic(paths.Offset, newOffset); err != nil {
		return 0, err
	}
	return len(events), nil
}

// parseCareLogLine parses "<unix_ms>,<plant-ref>[,<kind>]". The kind defaults
// to water; the reference may itself contain commas.
func parseCareLogLine(line string) (int64, string, plants.CareKind, bool) {
	idx := strings.IndexByte(line, ',')
	if idx <= 0 || idx >= len(line)-1 {
		return 0, "", "", false
	}

	ms, err := strconv.ParseInt(line[:idx], 10, 64)
	if err != nil || ms <= 0 {
		return 0, "", "", false
	}

	rest := line[idx+1:]
	kind := plants.CareWater
	if last := strings.LastIndexByte(rest, ','); last >= 0 {
		k, err := plants.ParseCareKind(rest[last+1:])
		if err != nil {
			return 0, "", "", false
		}
		kind = k
		rest = rest[:last]
	}

	ref := strings.TrimSpace(rest)
	if ref == "" {
		return 0, "", "", false
	}

	return ms, ref, kind, true
}

// readOffset reads the byte offset from the offset tracking file.
// Returns 0 if the file does not exist.
func readOffset(offsetPath string) (int64, error) {
	data, err := os.ReadFile(offsetPath)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	s := strings.TrimSpace(string(data))
	if s == "" {
		return 0, nil
	}
	offset, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse offset %q: %w", s, err)
	}
	return offset, nil
}

// writeOffsetAtomic writes newOffset to offsetPath via a temp-file rename.
func writeOffsetAtomic(offsetPath string, newOffset int64) error {
	tmpPath := filepath.Join(filepath.Dir(offsetPath), ".offset.tmp")

	if err := os.WriteFile(tmpPath, []byte(strconv.FormatInt(newOffset, 10)), 0600); err != nil {
		return fmt.Errorf("write temp offset file: %w", err)
	}
	if err := os.Rename(tmpPath, offsetPath); err != nil {
		return fmt.Errorf("rename offset file: %w", err)
	}
	return nil
}
