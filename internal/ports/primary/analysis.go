// Package primary defines the primary ports (driving adapters) for the application.
// These are the interfaces through which the outside world drives the application.
package primary

import (
	"context"

	"github.com/sdezurik/MolProbity/internal/core/pipeline"
)

// AnalysisService defines the primary port for running the analysis pipeline on a model.
type AnalysisService interface {
	// Analyze registers the coordinate file as a new model and runs the
	// requested stages on it.
	Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResponse, error)

	// Run executes the planned stages against an existing state and persists
	// the result. The returned state is the same value, updated.
	Run(ctx context.Context, state *pipeline.ModelAnalysisState, opts pipeline.Options) (*pipeline.ModelAnalysisState, error)

	// Resume loads a registered model and runs the requested stages on it.
	Resume(ctx context.Context, modelID string, opts pipeline.Options) (*AnalyzeResponse, error)
}

// AnalyzeRequest contains parameters for analyzing a coordinate file.
type AnalyzeRequest struct {
	PDBPath string
	Options pipeline.Options
	Reduced bool // hydrogens already present; skip reduce
}

// AnalyzeResponse contains the result of an analysis run.
type AnalyzeResponse struct {
	ModelID string
	State   *pipeline.ModelAnalysisState
	Stages  []pipeline.Stage // stages that ran, in order
}
