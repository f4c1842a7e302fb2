package db

import (
	"database/sql"
	"fmt"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.Tx) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_models_outliers_artifacts",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_chart_rows_and_progress",
		Up:      migrationV2,
	},
	{
		Version: 3,
		Name:    "add_jobs_table",
		Up:      migrationV3,
	},
}

func createVersionTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}
	return nil
}

// RunMigrations executes all pending migrations
func RunMigrations(db *sql.DB) error {
	if err := createVersionTable(db); err != nil {
		return err
	}

	// Get current schema version
	var currentVersion int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		fmt.Printf("Running migration %d: %s\n", migration.Version, migration.Name)

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}

		_, err = tx.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}

		fmt.Printf("✓ Migration %d completed\n", migration.Version)
	}

	return nil
}

func execAll(tx *sql.Tx, stmts ...string) error {
	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// migrationV1 creates the original model tables. Outliers carried no label
// and clash scores lived only in the model directory.
func migrationV1(tx *sql.Tx) error {
	return execAll(tx,
		`CREATE TABLE IF NOT EXISTS models (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			dir TEXT NOT NULL,
			pdb TEXT NOT NULL,
			prefix TEXT NOT NULL,
			is_reduced INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS outliers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			model_id TEXT NOT NULL,
			criterion TEXT NOT NULL,
			residue_key TEXT NOT NULL,
			value REAL NOT NULL,
			FOREIGN KEY (model_id) REFERENCES models(id) ON DELETE CASCADE,
			UNIQUE (model_id, criterion, residue_key)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_outliers_model ON outliers(model_id)`,
		`CREATE TABLE IF NOT EXISTS artifacts (
			model_id TEXT NOT NULL,
			stage TEXT NOT NULL,
			path TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (model_id, stage),
			FOREIGN KEY (model_id) REFERENCES models(id) ON DELETE CASCADE
		)`,
	)
}

// migrationV2 adds clash scores, outlier labels, the chart and progress.
func migrationV2(tx *sql.Tx) error {
	return execAll(tx,
		`ALTER TABLE models ADD COLUMN clashscore_all REAL NOT NULL DEFAULT 0`,
		`ALTER TABLE models ADD COLUMN clashscore_blt40 REAL NOT NULL DEFAULT 0`,
		`ALTER TABLE outliers ADD COLUMN label TEXT`,
		`CREATE TABLE IF NOT EXISTS chart_rows (
			model_id TEXT NOT NULL,
			residue_key TEXT NOT NULL,
			criteria TEXT NOT NULL,
			PRIMARY KEY (model_id, residue_key),
			FOREIGN KEY (model_id) REFERENCES models(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS progress (
			model_id TEXT PRIMARY KEY,
			stage TEXT NOT NULL DEFAULT '',
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (model_id) REFERENCES models(id) ON DELETE CASCADE
		)`,
	)
}

// migrationV3 adds detached background jobs.
func migrationV3(tx *sql.Tx) error {
	return execAll(tx,
		`CREATE TABLE IF NOT EXISTS jobs (
			id TEXT PRIMARY KEY,
			session TEXT NOT NULL UNIQUE,
			pdb_path TEXT NOT NULL,
			command TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'running' CHECK (status IN ('running', 'finished', 'killed')),
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	)
}
