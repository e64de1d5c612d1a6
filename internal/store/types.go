package store

import (
	"time"

	"github.com/blackwell-systems/leafcare/internal/plants"
)

// Backup is a recorded export of the plant collection.
type Backup struct {
	ID         int64
	CreatedAt  time.Time
	Reason     string
	PlantCount int
	BackupPath string
}

// CareEvent records a single watering or fertilizing.
type CareEvent struct {
	PlantID   string
	Kind      plants.CareKind
	Source    string // "cli", "log" or "restore"
	Timestamp time.Time
}
