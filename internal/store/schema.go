package store

const schema = `
CREATE TABLE IF NOT EXISTS plants (
    id TEXT PRIMARY KEY,
    nickname TEXT NOT NULL DEFAULT '',
    common_name TEXT NOT NULL,
    scientific_name TEXT,
    family TEXT,
    genus TEXT,
    archetype TEXT NOT NULL,
    match_method TEXT,
    match_confidence REAL,
    watering_interval_days INTEGER NOT NULL,
    fertilizing_interval_days INTEGER NOT NULL,
    drought_tolerant BOOLEAN,
    created_at TIMESTAMP NOT NULL,
    last_watered_at TIMESTAMP NOT NULL DEFAULT '',
    last_fertilized_at TIMESTAMP NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS care_events (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    plant_id TEXT NOT NULL,
    kind TEXT NOT NULL,
    source TEXT,
    timestamp TIMESTAMP NOT NULL,
    FOREIGN KEY (plant_id) REFERENCES plants(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS backups (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at TIMESTAMP NOT NULL,
    reason TEXT,
    plant_count INTEGER,
    backup_path TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_plants_nickname ON plants(nickname COLLATE NOCASE);
CREATE INDEX IF NOT EXISTS idx_care_plant ON care_events(plant_id);
CREATE INDEX IF NOT EXISTS idx_care_timestamp ON care_events(timestamp);
`
