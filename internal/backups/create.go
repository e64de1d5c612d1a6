package backups

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/blackwell-systems/leafcare/internal/store"
)

// Create writes every plant and its care history to a new backup file and
// returns the backup ID.
func (m *Manager) Create(reason string) (int64, error) {
	if err := os.MkdirAll(m.backupDir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create backup directory: %w", err)
	}

	all, err := m.store.ListPlants()
	if err != nil {
		return 0, fmt.Errorf("failed to list plants: %w", err)
	}

	now := time.Now()
	data := &BackupData{
		Version:   formatVersion,
		CreatedAt: now,
		Reason:    reason,
		Plants:    make([]*PlantBackup, 0, len(all)),
	}

	for _, p := range all {
		events, err := m.store.GetCareEvents(p.ID, time.Time{})
		if err != nil {
			return 0, fmt.Errorf("failed to get care events for %s: %w", p.DisplayName(), err)
		}

		pb := &PlantBackup{Plant: p, Events: make([]*EventBackup, 0, len(events))}
		for _, e := range events {
			pb.Events = append(pb.Events, &EventBackup{Kind: e.Kind, Source: e.Source, Timestamp: e.Timestamp})
		}
		data.Plants = append(data.Plants, pb)
	}

	// YYYY-MM-DD-HHMMSS-<suffix>.json; the suffix keeps same-second backups apart.
	filename := fmt.Sprintf("%s-%s.json", now.Format("2006-01-02-150405"), uuid.NewString()[:8])
	path := filepath.Join(m.backupDir, filename)

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("failed to marshal backup data: %w", err)
	}

	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return 0, fmt.Errorf("failed to write backup file: %w", err)
	}

	id, err := m.store.InsertBackup(reason, len(all), path)
	if err != nil {
		os.Remove(path)
		return 0, fmt.Errorf("failed to insert backup into database: %w", err)
	}

	return id, nil
}

// List returns all backups from the database, newest first.
func (m *Manager) List() ([]*store.Backup, error) {
	backups, err := m.store.ListBackups()
	if err != nil {
		return nil, fmt.Errorf("failed to list backups: %w", err)
	}
	return backups, nil
}

// Cleanup removes backup files older than maxAge and returns how many were
// deleted. Database rows are kept as an audit log.
func (m *Manager) Cleanup(maxAge time.Duration) (int, error) {
	backups, err := m.store.ListBackups()
	if err != nil {
		return 0, fmt.Errorf("failed to list backups: %w", err)
	}

	cutoff := time.Now().Add(-maxAge)
	deleted := 0

	for _, b := range backups {
		if !b.CreatedAt.Before(cutoff) {
			continue
		}
		if err := os.Remove(b.BackupPath); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return deleted, fmt.Errorf("failed to delete backup file %s: %w", b.BackupPath, err)
		}
		deleted++
	}

	return deleted, nil
}
