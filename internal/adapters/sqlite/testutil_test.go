// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() to ensure tests run against
// the authoritative schema, preventing drift between test and production.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sdezurik/MolProbity/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// Each connection to :memory: is a separate database.
	testDB.SetMaxOpenConns(1)

	if _, err := testDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}
	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedModel inserts a test model and returns its ID.
func seedModel(t *testing.T, db *sql.DB, id, name string) string {
	t.Helper()
	if id == "" {
		id = "MODEL-001"
	}
	if name == "" {
		name = "1ubq"
	}
	_, err := db.Exec(
		"INSERT INTO models (id, name, dir, pdb, prefix) VALUES (?, ?, ?, ?, ?)",
		id, name, "/data/models/"+id, "/data/models/"+id+"/"+name+".pdb", name,
	)
	if err != nil {
		t.Fatalf("failed to seed model: %v", err)
	}
	return id
}
