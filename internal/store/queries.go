package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/blackwell-systems/leafcare/internal/plants"
)

// minIDPrefix is the shortest ID prefix FindPlant will accept.
const minIDPrefix = 4

const plantColumns = `
	id, nickname, common_name, scientific_name, family, genus, archetype,
	match_method, match_confidence, watering_interval_days, fertilizing_interval_days,
	drought_tolerant, created_at, last_watered_at, last_fertilized_at`

// Plant operations

// InsertPlant inserts a plant or updates it in place. An upsert is used
// rather than INSERT OR REPLACE, which would delete the row and cascade to
// its care events.
func (s *Store) InsertPlant(p *plants.Plant) error {
	return upsertPlant(s.db, p)
}

// InsertPlantWithCare upserts a plant and records its care events in a
// single transaction: either all of it is stored or none of it is.
func (s *Store) InsertPlantWithCare(p *plants.Plant, events []*CareEvent) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := upsertPlant(tx, p); err != nil {
		return err
	}
	for _, e := range events {
		column, err := lastCareColumn(e.Kind)
		if err != nil {
			return err
		}
		if err := recordCareTx(tx, column, e); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit plant %s: %w", p.ID, err)
	}
	return nil
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func upsertPlant(db execer, p *plants.Plant) error {
	query := `
		INSERT INTO plants (` + plantColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			nickname = excluded.nickname,
			common_name = excluded.common_name,
			scientific_name = excluded.scientific_name,
			family = excluded.family,
			genus = excluded.genus,
			archetype = excluded.archetype,
			match_method = excluded.match_method,
			match_confidence = excluded.match_confidence,
			watering_interval_days = excluded.watering_interval_days,
			fertilizing_interval_days = excluded.fertilizing_interval_days,
			drought_tolerant = excluded.drought_tolerant,
			created_at = excluded.created_at,
			last_watered_at = excluded.last_watered_at,
			last_fertilized_at = excluded.last_fertilized_at
	`

	_, err := db.Exec(query,
		p.ID,
		p.Nickname,
		p.CommonName,
		p.ScientificName,
		p.Family,
		p.Genus,
		p.Archetype,
		p.MatchMethod,
		p.MatchConfidence,
		p.WateringIntervalDays,
		p.FertilizingIntervalDays,
		p.DroughtTolerant,
		formatTime(p.CreatedAt),
		formatTime(p.LastWateredAt),
		formatTime(p.LastFertilizedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert plant %s: %w", p.ID, wrapSchemaErr(err))
	}

	return nil
}

// GetPlant retrieves a plant by its full ID.
func (s *Store) GetPlant(id string) (*plants.Plant, error) {
	row := s.db.QueryRow(`SELECT `+plantColumns+` FROM plants WHERE id = ?`, id)

	p, err := scanPlant(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrPlantNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get plant %s: %w", id, wrapSchemaErr(err))
	}

	return p, nil
}

// FindPlant resolves a user-supplied reference to a plant. The reference may
// be a full ID, a unique ID prefix of at least four characters, or a
// case-insensitive nickname.
func (s *Store) FindPlant(ref string) (*plants.Plant, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("%w: empty reference", ErrPlantNotFound)
	}

	p, err := s.GetPlant(ref)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ErrPlantNotFound) {
		return nil, err
	}

	if len(ref) >= minIDPrefix {
		matches, err := s.queryPlants(`SELECT `+plantColumns+` FROM plants WHERE substr(id, 1, ?) = ? ORDER BY id`, len(ref), ref)
		if err != nil {
			return nil, err
		}
		switch len(matches) {
		case 0:
		case 1:
			return matches[0], nil
		default:
			return nil, fmt.Errorf("ambiguous plant ID prefix %q matches %d plants", ref, len(matches))
		}
	}

	matches, err := s.queryPlants(`SELECT `+plantColumns+` FROM plants WHERE nickname = ? COLLATE NOCASE ORDER BY created_at`, ref)
	if err != nil {
		return nil, err
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrPlantNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("nickname %q is shared by %d plants; use the plant ID instead", ref, len(matches))
	}
}

// ListPlants returns all plants ordered by nickname, then common name.
func (s *Store) ListPlants() ([]*plants.Plant, error) {
	return s.queryPlants(`SELECT ` + plantColumns + ` FROM plants ORDER BY nickname COLLATE NOCASE, common_name COLLATE NOCASE, id`)
}

func (s *Store) queryPlants(query string, args ...any) ([]*plants.Plant, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list plants: %w", wrapSchemaErr(err))
	}
	defer rows.Close()

	var out []*plants.Plant
	for rows.Next() {
		p, err := scanPlant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plant row: %w", err)
		}
		out = append(out, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating plants: %w", err)
	}

	return out, nil
}

// DeletePlant removes a plant and, via cascade, its care history.
func (s *Store) DeletePlant(id string) error {
	result, err := s.db.Exec("DELETE FROM plants WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete plant %s: %w", id, wrapSchemaErr(err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", ErrPlantNotFound, id)
	}

	return nil
}

// Care operations

// RecordCare stores a care event and advances the plant's matching
// last-care timestamp. Back-dated events are kept in the history but never
// move the timestamp backwards.
func (s *Store) RecordCare(event *CareEvent) error {
	column, err := lastCareColumn(event.Kind)
	if err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := recordCareTx(tx, column, event); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit care event: %w", err)
	}
	return nil
}

// RecordCareBatch stores several care events in one transaction.
func (s *Store) RecordCareBatch(events []*CareEvent) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for _, e := range events {
		column, err := lastCareColumn(e.Kind)
		if err != nil {
			return err
		}
		if err := recordCareTx(tx, column, e); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit care events: %w", err)
	}
	return nil
}

func recordCareTx(tx *sql.Tx, column string, event *CareEvent) error {
	var exists int
	err := tx.QueryRow("SELECT 1 FROM plants WHERE id = ?", event.PlantID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrPlantNotFound, event.PlantID)
	}
	if err != nil {
		return fmt.Errorf("failed to look up plant %s: %w", event.PlantID, wrapSchemaErr(err))
	}

	ts := formatTime(event.Timestamp)
	if _, err := tx.Exec(
		`INSERT INTO care_events (plant_id, kind, source, timestamp) VALUES (?, ?, ?, ?)`,
		event.PlantID, string(event.Kind), event.Source, ts,
	); err != nil {
		return fmt.Errorf("failed to insert care event for %s: %w", event.PlantID, err)
	}

	// RFC3339 UTC strings sort chronologically, so a text comparison suffices.
	update := fmt.Sprintf(`UPDATE plants SET %[1]s = ? WHERE id = ? AND (%[1]s = '' OR %[1]s < ?)`, column)
	if _, err := tx.Exec(update, ts, event.PlantID, ts); err != nil {
		return fmt.Errorf("failed to update %s for %s: %w", column, event.PlantID, err)
	}
	return nil
}

func lastCareColumn(kind plants.CareKind) (string, error) {
	switch kind {
	case plants.CareWater:
		return "last_watered_at", nil
	case plants.CareFertilize:
		return "last_fertilized_at", nil
	}
	return "", fmt.Errorf("unknown care kind %q", kind)
}

// GetCareEvents returns a plant's care events since the given time, newest first.
func (s *Store) GetCareEvents(plantID string, since time.Time) ([]*CareEvent, error) {
	query := `
		SELECT plant_id, kind, source, timestamp
		FROM care_events
		WHERE plant_id = ? AND timestamp >= ?
		ORDER BY timestamp DESC, id DESC
	`

	rows, err := s.db.Query(query, plantID, formatTime(since.UTC()))
	if err != nil {
		return nil, fmt.Errorf("failed to get care events: %w", wrapSchemaErr(err))
	}
	defer rows.Close()

	var events []*CareEvent
	for rows.Next() {
		var e CareEvent
		var kind, ts string
		var source sql.NullString

		if err := rows.Scan(&e.PlantID, &kind, &source, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan care event row: %w", err)
		}
		e.Kind = plants.CareKind(kind)
		e.Source = source.String
		if e.Timestamp, err = parseTime(ts); err != nil {
			return nil, fmt.Errorf("failed to parse care event timestamp: %w", err)
		}
		events = append(events, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating care events: %w", err)
	}

	return events, nil
}

// GetEventCount returns the total number of care events recorded.
func (s *Store) GetEventCount() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM care_events").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to get event count: %w", wrapSchemaErr(err))
	}
	return count, nil
}

// Backup operations

// InsertBackup records a backup file and returns its ID.
func (s *Store) InsertBackup(reason string, plantCount int, path string) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO backups (created_at, reason, plant_count, backup_path) VALUES (?, ?, ?, ?)`,
		formatTime(time.Now()), reason, plantCount, path,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert backup: %w", wrapSchemaErr(err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get backup ID: %w", err)
	}

	return id, nil
}

// GetBackup retrieves a backup record by ID.
func (s *Store) GetBackup(id int64) (*Backup, error) {
	var b Backup
	var createdAt string

	err := s.db.QueryRow(
		`SELECT id, created_at, reason, plant_count, backup_path FROM backups WHERE id = ?`, id,
	).Scan(&b.ID, &createdAt, &b.Reason, &b.PlantCount, &b.BackupPath)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("backup %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get backup %d: %w", id, wrapSchemaErr(err))
	}

	if b.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse created_at for backup %d: %w", id, err)
	}

	return &b, nil
}

// ListBackups returns all backups, newest first.
func (s *Store) ListBackups() ([]*Backup, error) {
	rows, err := s.db.Query(`
		SELECT id, created_at, reason, plant_count, backup_path
		FROM backups
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list backups: %w", wrapSchemaErr(err))
	}
	defer rows.Close()

	var backups []*Backup
	for rows.Next() {
		var b Backup
		var createdAt string

		if err := rows.Scan(&b.ID, &createdAt, &b.Reason, &b.PlantCount, &b.BackupPath); err != nil {
			return nil, fmt.Errorf("failed to scan backup row: %w", err)
		}
		if b.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse created_at for backup %d: %w", b.ID, err)
		}
		backups = append(backups, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating backups: %w", err)
	}

	return backups, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlant(row rowScanner) (*plants.Plant, error) {
	var p plants.Plant
	var sciName, family, genus, method sql.NullString
	var confidence sql.NullFloat64
	var drought sql.NullBool
	var createdAt, wateredAt, fertilizedAt string

	err := row.Scan(
		&p.ID,
		&p.Nickname,
		&p.CommonName,
		&sciName,
		&family,
		&genus,
		&p.Archetype,
		&method,
		&confidence,
		&p.WateringIntervalDays,
		&p.FertilizingIntervalDays,
		&drought,
		&createdAt,
		&wateredAt,
		&fertilizedAt,
	)
	if err != nil {
		return nil, err
	}

	p.ScientificName = sciName.String
	p.Family = family.String
	p.Genus = genus.String
	p.MatchMethod = method.String
	p.MatchConfidence = confidence.Float64
	p.DroughtTolerant = drought.Bool

	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse created_at for %s: %w", p.ID, err)
	}
	if p.LastWateredAt, err = parseTime(wateredAt); err != nil {
		return nil, fmt.Errorf("failed to parse last_watered_at for %s: %w", p.ID, err)
	}
	if p.LastFertilizedAt, err = parseTime(fertilizedAt); err != nil {
		return nil, fmt.Errorf("failed to parse last_fertilized_at for %s: %w", p.ID, err)
	}

	return &p, nil
}

// formatTime stores the zero time as an empty string ("never").
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s)
}
