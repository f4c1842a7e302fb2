package app

import (
	"context"

	"github.com/sdezurik/MolProbity/internal/ports/secondary"
)

// ProgressRecorder stores each stage transition so other processes can see
// how far a run has got.
type ProgressRecorder struct {
	repo secondary.ProgressRepository
}

// NewProgressRecorder creates a new ProgressRecorder.
func NewProgressRecorder(repo secondary.ProgressRepository) *ProgressRecorder {
	return &ProgressRecorder{repo: repo}
}

// StageStarted records stage; a failure to record is ignored.
func (p *ProgressRecorder) StageStarted(ctx context.Context, modelID, stage, description string) {
	_ = p.repo.Record(ctx, modelID, stage)
}

// Observers fans one notification out to several observers in order.
type Observers []secondary.ProgressObserver

// StageStarted notifies every observer.
func (o Observers) StageStarted(ctx context.Context, modelID, stage, description string) {
	for _, obs := range o {
		obs.StageStarted(ctx, modelID, stage, description)
	}
}

var (
	_ secondary.ProgressObserver = (*ProgressRecorder)(nil)
	_ secondary.ProgressObserver = Observers(nil)
)
