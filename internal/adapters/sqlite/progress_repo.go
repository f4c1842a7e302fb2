package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sdezurik/MolProbity/internal/ports/secondary"
)

// ProgressRepository implements secondary.ProgressRepository with SQLite.
type ProgressRepository struct {
	db *sql.DB
}

// NewProgressRepository creates a new SQLite progress repository.
func NewProgressRepository(db *sql.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// Record stores the current stage of a model.
func (r *ProgressRepository) Record(ctx context.Context, modelID, stage string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO progress (model_id, stage) VALUES (?, ?)
		 ON CONFLICT(model_id) DO UPDATE SET stage = excluded.stage, updated_at = CURRENT_TIMESTAMP`,
		modelID, stage,
	)
	if err != nil {
		return fmt.Errorf("failed to record progress: %w", err)
	}
	return nil
}

// Get returns the current stage of a model, empty when none is recorded.
func (r *ProgressRepository) Get(ctx context.Context, modelID string) (string, error) {
	var stage string
	err := r.db.QueryRowContext(ctx, "SELECT stage FROM progress WHERE model_id = ?", modelID).Scan(&stage)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get progress: %w", err)
	}
	return stage, nil
}

// Ensure ProgressRepository implements the interface
var _ secondary.ProgressRepository = (*ProgressRepository)(nil)
