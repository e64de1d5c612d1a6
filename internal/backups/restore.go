package backups

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/blackwell-systems/leafcare/internal/store"
)

// Restore re-creates plants from a backup.
//
// Plants missing from the database are inserted with their care history.
// Plants that still exist get their profile (names, classification,
// intervals) reset from the backup; their care timestamps only move forward,
// so care recorded after the backup is kept.
func (m *Manager) Restore(id int64) (*RestoreResult, error) {
	backup, err := m.store.GetBackup(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get backup: %w", err)
	}

	data, err := loadBackupFile(backup.BackupPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load backup file: %w", err)
	}

	if data.Version > formatVersion {
		return nil, fmt.Errorf("backup format version %d is newer than supported version %d", data.Version, formatVersion)
	}

	result := &RestoreResult{}

	for _, pb := range data.Plants {
		if pb.Plant == nil || pb.Plant.ID == "" {
			continue
		}
		p := pb.Plant

		existing, err := m.store.GetPlant(p.ID)
		switch {
		case errors.Is(err, store.ErrPlantNotFound):
			events := make([]*store.CareEvent, 0, len(pb.Events))
			for _, e := range pb.Events {
				events = append(events, &store.CareEvent{
					PlantID:   p.ID,
					Kind:      e.Kind,
					Source:    e.Source,
					Timestamp: e.Timestamp,
				})
			}
			if err := m.store.InsertPlantWithCare(p, events); err != nil {
				return result, fmt.Errorf("failed to restore %s: %w", p.DisplayName(), err)
			}

			result.Added++
			result.Events += len(events)

		case err != nil:
			return result, fmt.Errorf("failed to look up %s: %w", p.DisplayName(), err)

		default:
			if existing.LastWateredAt.After(p.LastWateredAt) {
				p.LastWateredAt = existing.LastWateredAt
			}
			if existing.LastFertilizedAt.After(p.LastFertilizedAt) {
				p.LastFertilizedAt = existing.LastFertilizedAt
			}
			if err := m.store.InsertPlant(p); err != nil {
				return result, fmt.Errorf("failed to restore %s: %w", p.DisplayName(), err)
			}
			result.Updated++
		}
	}

	return result, nil
}

// loadBackupFile reads and parses a backup JSON file.
func loadBackupFile(path string) (*BackupData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup file: %w", err)
	}

	var data BackupData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse backup JSON: %w", err)
	}

	return &data, nil
}
