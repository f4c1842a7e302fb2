// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/sdezurik/MolProbity/internal/ports/secondary"
)

// ModelRepository implements secondary.ModelRepository with SQLite.
type ModelRepository struct {
	db *sql.DB
}

// NewModelRepository creates a new SQLite model repository.
func NewModelRepository(db *sql.DB) *ModelRepository {
	return &ModelRepository{db: db}
}

const modelColumns = "id, name, dir, pdb, prefix, is_reduced, clashscore_all, clashscore_blt40, created_at, updated_at"

type scanner interface {
	Scan(dest ...any) error
}

func scanModel(row scanner) (*secondary.ModelRecord, error) {
	var (
		createdAt time.Time
		updatedAt time.Time
	)
	record := &secondary.ModelRecord{}
	err := row.Scan(&record.ID, &record.Name, &record.Dir, &record.PDB, &record.Prefix,
		&record.IsReduced, &record.ClashScoreAll, &record.ClashScoreBlt40, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)
	return record, nil
}

// Create persists a new model.
func (r *ModelRepository) Create(ctx context.Context, model *secondary.ModelRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO models (id, name, dir, pdb, prefix, is_reduced, clashscore_all, clashscore_blt40)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		model.ID, model.Name, model.Dir, model.PDB, model.Prefix, model.IsReduced,
		model.ClashScoreAll, model.ClashScoreBlt40,
	)
	if err != nil {
		return fmt.Errorf("failed to create model: %w", err)
	}
	return nil
}

// GetByID retrieves a model by its ID.
func (r *ModelRepository) GetByID(ctx context.Context, id string) (*secondary.ModelRecord, error) {
	record, err := scanModel(r.db.QueryRowContext(ctx,
		"SELECT "+modelColumns+" FROM models WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("model %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get model: %w", err)
	}
	return record, nil
}

// List retrieves models, newest first.
func (r *ModelRepository) List(ctx context.Context, filters secondary.ModelFilters) ([]*secondary.ModelRecord, error) {
	query := "SELECT " + modelColumns + " FROM models ORDER BY created_at DESC, id DESC"
	var args []any
	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}
	defer rows.Close()

	var models []*secondary.ModelRecord
	for rows.Next() {
		record, err := scanModel(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan model: %w", err)
		}
		models = append(models, record)
	}
	return models, rows.Err()
}

// Delete removes a model and everything recorded for it.
func (r *ModelRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"outliers", "artifacts", "chart_rows", "progress"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE model_id = ?", id); err != nil {
			return fmt.Errorf("failed to delete %s: %w", table, err)
		}
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM models WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete model: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("model %s not found", id)
	}

	return tx.Commit()
}

// SaveAnalysis replaces the recorded analysis of a model in one transaction.
func (r *ModelRepository) SaveAnalysis(ctx context.Context, analysis *secondary.AnalysisRecord) error {
	m := analysis.Model
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE models SET pdb = ?, is_reduced = ?, clashscore_all = ?, clashscore_blt40 = ?,
		 updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		m.PDB, m.IsReduced, m.ClashScoreAll, m.ClashScoreBlt40, m.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update model: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("model %s not found", m.ID)
	}

	for _, table := range []string{"outliers", "artifacts", "chart_rows"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE model_id = ?", m.ID); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, o := range analysis.Outliers {
		var label sql.NullString
		if o.Label != "" {
			label = sql.NullString{String: o.Label, Valid: true}
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO outliers (model_id, criterion, residue_key, value, label) VALUES (?, ?, ?, ?, ?)",
			m.ID, o.Criterion, o.ResidueKey, o.Value, label,
		); err != nil {
			return fmt.Errorf("failed to save outlier %s/%s: %w", o.Criterion, o.ResidueKey, err)
		}
	}

	for stage, path := range analysis.Artifacts {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO artifacts (model_id, stage, path) VALUES (?, ?, ?)",
			m.ID, stage, path,
		); err != nil {
			return fmt.Errorf("failed to save artifact %s: %w", stage, err)
		}
	}

	for _, row := range analysis.ChartRows {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO chart_rows (model_id, residue_key, criteria) VALUES (?, ?, ?)",
			m.ID, row.ResidueKey, strings.Join(row.Criteria, ","),
		); err != nil {
			return fmt.Errorf("failed to save chart row %s: %w", row.ResidueKey, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit analysis: %w", err)
	}
	return nil
}

// GetAnalysis retrieves the recorded analysis of a model.
func (r *ModelRepository) GetAnalysis(ctx context.Context, modelID string) (*secondary.AnalysisRecord, error) {
	model, err := r.GetByID(ctx, modelID)
	if err != nil {
		return nil, err
	}
	analysis := &secondary.AnalysisRecord{
		Model:     *model,
		Artifacts: make(map[string]string),
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT criterion, residue_key, value, label FROM outliers WHERE model_id = ? ORDER BY id",
		modelID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list outliers: %w", err)
	}
	for rows.Next() {
		var (
			o     secondary.OutlierRecord
			label sql.NullString
		)
		if err := rows.Scan(&o.Criterion, &o.ResidueKey, &o.Value, &label); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan outlier: %w", err)
		}
		o.Label = label.String
		analysis.Outliers = append(analysis.Outliers, o)
	}
	rows.Close()

	rows, err = r.db.QueryContext(ctx,
		"SELECT stage, path FROM artifacts WHERE model_id = ?", modelID)
	if err != nil {
		return nil, fmt.Errorf("failed to list artifacts: %w", err)
	}
	for rows.Next() {
		var stage, path string
		if err := rows.Scan(&stage, &path); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan artifact: %w", err)
		}
		analysis.Artifacts[stage] = path
	}
	rows.Close()

	rows, err = r.db.QueryContext(ctx,
		"SELECT residue_key, criteria FROM chart_rows WHERE model_id = ? ORDER BY rowid", modelID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chart rows: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			row      secondary.ChartRowRecord
			criteria string
		)
		if err := rows.Scan(&row.ResidueKey, &criteria); err != nil {
			return nil, fmt.Errorf("failed to scan chart row: %w", err)
		}
		if criteria != "" {
			row.Criteria = strings.Split(criteria, ",")
		}
		analysis.ChartRows = append(analysis.ChartRows, row)
	}

	return analysis, rows.Err()
}

// Ensure ModelRepository implements the interface
var _ secondary.ModelRepository = (*ModelRepository)(nil)
