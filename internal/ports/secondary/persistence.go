// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import "context"

// ModelRepository defines the secondary port for model persistence.
type ModelRepository interface {
	// Create persists a new model.
	Create(ctx context.Context, model *ModelRecord) error

	// GetByID retrieves a model by its ID.
	GetByID(ctx context.Context, id string) (*ModelRecord, error)

	// List retrieves models, newest first.
	List(ctx context.Context, filters ModelFilters) ([]*ModelRecord, error)

	// Delete removes a model and everything recorded for it.
	Delete(ctx context.Context, id string) error

	// SaveAnalysis replaces the recorded analysis of a model in one transaction.
	SaveAnalysis(ctx context.Context, analysis *AnalysisRecord) error

	// GetAnalysis retrieves the recorded analysis of a model.
	GetAnalysis(ctx context.Context, modelID string) (*AnalysisRecord, error)
}

// ModelRecord represents a model as stored in persistence.
type ModelRecord struct {
	ID              string
	Name            string
	Dir             string
	PDB             string
	Prefix          string
	IsReduced       bool
	ClashScoreAll   float64
	ClashScoreBlt40 float64
	CreatedAt       string
	UpdatedAt       string
}

// ModelFilters contains filter options for querying models.
type ModelFilters struct {
	Limit int
}

// OutlierRecord represents one flagged residue as stored in persistence.
type OutlierRecord struct {
	Criterion  string
	ResidueKey string
	Value      float64
	Label      string
}

// ChartRowRecord represents one row of the multi-criterion chart.
type ChartRowRecord struct {
	ResidueKey string
	Criteria   []string
}

// AnalysisRecord is the persisted form of an analysis run.
type AnalysisRecord struct {
	Model     ModelRecord       // PDB, reduced flag and clash scores are updated
	Outliers  []OutlierRecord   // replaces all outliers of the model
	Artifacts map[string]string // stage -> path; replaces all artifacts
	ChartRows []ChartRowRecord
}
