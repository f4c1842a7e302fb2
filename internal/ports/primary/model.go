package primary

import "context"

// ModelService defines the primary port for inspecting analyzed models.
type ModelService interface {
	// ListModels lists registered models, newest first.
	ListModels(ctx context.Context, filters ModelFilters) ([]*Model, error)

	// GetModel retrieves a model with its outliers and artifacts.
	GetModel(ctx context.Context, modelID string) (*ModelDetail, error)

	// DeleteModel removes a model record and its working directory.
	DeleteModel(ctx context.Context, modelID string) error
}

// Model is a registered coordinate file.
type Model struct {
	ID              string
	Name            string
	Dir             string
	PDB             string
	Prefix          string
	IsReduced       bool
	ClashScoreAll   float64
	ClashScoreBlt40 float64
	Stage           string // stage in progress, empty when idle
	CreatedAt       string
	UpdatedAt       string
}

// Outlier is one flagged residue under one criterion.
type Outlier struct {
	Criterion  string
	ResidueKey string
	Value      float64
	Label      string
}

// ModelDetail is a model with everything its last analysis recorded.
type ModelDetail struct {
	Model     *Model
	Outliers  []Outlier         // criterion, then residue order
	Artifacts map[string]string // stage -> path
}

// ModelFilters contains filter options for listing models.
type ModelFilters struct {
	Limit int
}
