package db

import "database/sql"

// SchemaSQL is the authoritative schema for fresh installs.
// Migrations bring older databases to the same shape.
const SchemaSQL = `
-- Models (one analyzed structure, or one member of an ensemble)
CREATE TABLE IF NOT EXISTS models (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	dir TEXT NOT NULL,
	pdb TEXT NOT NULL,
	prefix TEXT NOT NULL,
	is_reduced INTEGER NOT NULL DEFAULT 0,
	clashscore_all REAL NOT NULL DEFAULT 0,
	clashscore_blt40 REAL NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Outliers (one flagged residue per criterion)
CREATE TABLE IF NOT EXISTS outliers (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	model_id TEXT NOT NULL,
	criterion TEXT NOT NULL CHECK (criterion IN ('clash', 'cbeta', 'rotamer', 'rama', 'omega', 'bond', 'angle')),
	residue_key TEXT NOT NULL,
	value REAL NOT NULL,
	label TEXT,
	FOREIGN KEY (model_id) REFERENCES models(id) ON DELETE CASCADE,
	UNIQUE (model_id, criterion, residue_key)
);

CREATE INDEX IF NOT EXISTS idx_outliers_model ON outliers(model_id);

-- Artifacts (stage output files)
CREATE TABLE IF NOT EXISTS artifacts (
	model_id TEXT NOT NULL,
	stage TEXT NOT NULL,
	path TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (model_id, stage),
	FOREIGN KEY (model_id) REFERENCES models(id) ON DELETE CASCADE
);

-- Chart rows (multi-criterion chart, criteria comma separated)
CREATE TABLE IF NOT EXISTS chart_rows (
	model_id TEXT NOT NULL,
	residue_key TEXT NOT NULL,
	criteria TEXT NOT NULL,
	PRIMARY KEY (model_id, residue_key),
	FOREIGN KEY (model_id) REFERENCES models(id) ON DELETE CASCADE
);

-- Progress (current stage of a running analysis, empty when idle)
CREATE TABLE IF NOT EXISTS progress (
	model_id TEXT PRIMARY KEY,
	stage TEXT NOT NULL DEFAULT '',
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (model_id) REFERENCES models(id) ON DELETE CASCADE
);

-- Jobs (detached background analyses)
CREATE TABLE IF NOT EXISTS jobs (
	id TEXT PRIMARY KEY,
	session TEXT NOT NULL UNIQUE,
	pdb_path TEXT NOT NULL,
	command TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'running' CHECK (status IN ('running', 'finished', 'killed')),
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

// InitSchema creates the schema on a fresh database and migrates older ones.
func InitSchema(db *sql.DB) error {
	// Check if schema_version table exists to determine if this is a fresh install
	var tableCount int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount > 0 {
		// schema_version table exists - run any pending migrations
		return RunMigrations(db)
	}

	// Completely fresh install - create modern schema directly
	if _, err := db.Exec(SchemaSQL); err != nil {
		return err
	}
	if err := createVersionTable(db); err != nil {
		return err
	}
	// Mark all migrations as applied for fresh installs
	for _, m := range migrations {
		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
			return err
		}
	}
	return nil
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
