package db

import (
	"database/sql"
	"fmt"
	"time"
)

// SeedFixtures populates the database with development fixtures: two models,
// a handful of outliers, their artifacts and chart rows, and one job.
func SeedFixtures(database *sql.DB) error {
	now := time.Now().Format(time.RFC3339)

	models := []struct {
		id, name, pdb        string
		reduced              bool
		scoreAll, scoreBlt40 float64
	}{
		{"MODEL-001", "1ubq", "/tmp/molprobity/MODEL-001/1ubqH.pdb", true, 4.12, 2.5},
		{"MODEL-002", "2lzm_m01", "/tmp/molprobity/MODEL-002/2lzm_m01.pdb", false, 11.9, 8.75},
	}
	for _, m := range models {
		if _, err := database.Exec(
			`INSERT INTO models (id, name, dir, pdb, prefix, is_reduced, clashscore_all, clashscore_blt40, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			m.id, m.name, "/tmp/molprobity/"+m.id, m.pdb, m.name, m.reduced, m.scoreAll, m.scoreBlt40, now, now,
		); err != nil {
			return fmt.Errorf("seed models: %w", err)
		}
	}

	outliers := []struct {
		modelID, criterion, key string
		value                   float64
		label                   string
	}{
		{"MODEL-001", "clash", "A   8 LEU", 0.612, ""},
		{"MODEL-001", "rotamer", "A   8 LEU", 0.4, "OUTLIER"},
		{"MODEL-001", "cbeta", "A  23 ILE", 0.31, ""},
		{"MODEL-002", "rama", "A  12 GLY", 0.0004, "OUTLIER"},
		{"MODEL-002", "omega", "A  40 PRO", 178.2, "Trans"},
	}
	for _, o := range outliers {
		if _, err := database.Exec(
			"INSERT INTO outliers (model_id, criterion, residue_key, value, label) VALUES (?, ?, ?, ?, ?)",
			o.modelID, o.criterion, o.key, o.value, o.label,
		); err != nil {
			return fmt.Errorf("seed outliers: %w", err)
		}
	}

	artifacts := []struct{ modelID, stage, path string }{
		{"MODEL-001", "reduce", "/tmp/molprobity/MODEL-001/1ubqH.pdb"},
		{"MODEL-001", "clash", "/tmp/molprobity/MODEL-001/1ubqclash.data"},
		{"MODEL-001", "multiChart", "/tmp/molprobity/MODEL-001/1ubqmulti.csv"},
	}
	for _, a := range artifacts {
		if _, err := database.Exec(
			"INSERT INTO artifacts (model_id, stage, path, created_at) VALUES (?, ?, ?, ?)",
			a.modelID, a.stage, a.path, now,
		); err != nil {
			return fmt.Errorf("seed artifacts: %w", err)
		}
	}

	chart := []struct{ modelID, key, criteria string }{
		{"MODEL-001", "A   8 LEU", "clash,rotamer"},
		{"MODEL-001", "A  23 ILE", "cbeta"},
	}
	for _, c := range chart {
		if _, err := database.Exec(
			"INSERT INTO chart_rows (model_id, residue_key, criteria) VALUES (?, ?, ?)",
			c.modelID, c.key, c.criteria,
		); err != nil {
			return fmt.Errorf("seed chart rows: %w", err)
		}
	}

	if _, err := database.Exec(
		"INSERT INTO jobs (id, session, pdb_path, command, status, created_at, updated_at) VALUES (?, ?, ?, ?, 'finished', ?, ?)",
		"JOB-001", "molprobity-JOB-001", "/data/1ubq.pdb", "molprobity analyze /data/1ubq.pdb --all", now, now,
	); err != nil {
		return fmt.Errorf("seed jobs: %w", err)
	}

	return nil
}
