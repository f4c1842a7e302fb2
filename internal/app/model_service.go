package app

import (
	"context"
	"fmt"

	"github.com/sdezurik/MolProbity/internal/ports/primary"
	"github.com/sdezurik/MolProbity/internal/ports/secondary"
)

// ModelServiceImpl implements the ModelService interface.
type ModelServiceImpl struct {
	modelRepo    secondary.ModelRepository
	progressRepo secondary.ProgressRepository
	workspace    secondary.WorkspaceAdapter
}

// NewModelService creates a new ModelService with injected dependencies.
func NewModelService(
	modelRepo secondary.ModelRepository,
	progressRepo secondary.ProgressRepository,
	workspace secondary.WorkspaceAdapter,
) *ModelServiceImpl {
	return &ModelServiceImpl{
		modelRepo:    modelRepo,
		progressRepo: progressRepo,
		workspace:    workspace,
	}
}

// ListModels lists registered models, newest first.
func (s *ModelServiceImpl) ListModels(ctx context.Context, filters primary.ModelFilters) ([]*primary.Model, error) {
	records, err := s.modelRepo.List(ctx, secondary.ModelFilters{Limit: filters.Limit})
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	models := make([]*primary.Model, 0, len(records))
	for _, r := range records {
		models = append(models, s.recordToModel(ctx, r))
	}
	return models, nil
}

// GetModel retrieves a model with its outliers and artifacts.
func (s *ModelServiceImpl) GetModel(ctx context.Context, modelID string) (*primary.ModelDetail, error) {
	analysis, err := s.modelRepo.GetAnalysis(ctx, modelID)
	if err != nil {
		return nil, fmt.Errorf("failed to get model: %w", err)
	}

	detail := &primary.ModelDetail{
		Model:     s.recordToModel(ctx, &analysis.Model),
		Artifacts: analysis.Artifacts,
	}
	for _, o := range analysis.Outliers {
		detail.Outliers = append(detail.Outliers, primary.Outlier{
			Criterion:  o.Criterion,
			ResidueKey: o.ResidueKey,
			Value:      o.Value,
			Label:      o.Label,
		})
	}
	return detail, nil
}

// DeleteModel removes a model record and its working directory.
func (s *ModelServiceImpl) DeleteModel(ctx context.Context, modelID string) error {
	if _, err := s.modelRepo.GetByID(ctx, modelID); err != nil {
		return fmt.Errorf("failed to get model: %w", err)
	}
	if err := s.modelRepo.Delete(ctx, modelID); err != nil {
		return fmt.Errorf("failed to delete model: %w", err)
	}
	if err := s.workspace.RemoveModelDir(ctx, modelID); err != nil {
		return fmt.Errorf("failed to remove model directory: %w", err)
	}
	return nil
}

// recordToModel converts a record; progress lookups are best-effort.
func (s *ModelServiceImpl) recordToModel(ctx context.Context, r *secondary.ModelRecord) *primary.Model {
	stage, _ := s.progressRepo.Get(ctx, r.ID)
	return &primary.Model{
		ID:              r.ID,
		Name:            r.Name,
		Dir:             r.Dir,
		PDB:             r.PDB,
		Prefix:          r.Prefix,
		IsReduced:       r.IsReduced,
		ClashScoreAll:   r.ClashScoreAll,
		ClashScoreBlt40: r.ClashScoreBlt40,
		Stage:           stage,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// Ensure ModelServiceImpl implements the interface
var _ primary.ModelService = (*ModelServiceImpl)(nil)
