package backups

import (
	"time"

	"github.com/blackwell-systems/leafcare/internal/plants"
	"github.com/blackwell-systems/leafcare/internal/store"
)

// formatVersion is bumped whenever BackupData changes incompatibly.
const formatVersion = 1

// BackupData represents the JSON structure stored in backup files.
type BackupData struct {
	Version   int
	CreatedAt time.Time
	Reason    string
	Plants    []*PlantBackup
}

// PlantBackup is one plant and its full care history.
type PlantBackup struct {
	Plant  *plants.Plant
	Events []*EventBackup
}

// EventBackup is a care event inside a backup file.
type EventBackup struct {
	Kind      plants.CareKind
	Source    string
	Timestamp time.Time
}

// RestoreResult reports what a restore changed.
type RestoreResult struct {
	Added   int // plants that no longer existed and were re-created
	Updated int // existing plants whose profile was reset
	Events  int // care events re-inserted for added plants
}

// Manager manages backup creation, restoration, and cleanup.
type Manager struct {
	store     *store.Store
	backupDir string
}

// New creates a new backup Manager.
func New(store *store.Store, backupDir string) *Manager {
	return &Manager{
		store:     store,
		backupDir: backupDir,
	}
}
