package cli

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/fatih/color"

	"github.com/sdezurik/MolProbity/internal/ports/primary"
)

// ModelAdapter translates CLI operations to ModelService calls.
type ModelAdapter struct {
	service primary.ModelService
	out     io.Writer
}

// NewModelAdapter creates a new ModelAdapter with the given service.
func NewModelAdapter(service primary.ModelService, out io.Writer) *ModelAdapter {
	return &ModelAdapter{
		service: service,
		out:     out,
	}
}

// List lists registered models.
func (a *ModelAdapter) List(ctx context.Context, limit int) error {
	models, err := a.service.ListModels(ctx, primary.ModelFilters{Limit: limit})
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	if len(models) == 0 {
		fmt.Fprintln(a.out, "No models found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-15s %-20s %-8s %-10s %s\n", "ID", "NAME", "REDUCED", "CLASH", "STAGE")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────")
	for _, m := range models {
		reduced := "no"
		if m.IsReduced {
			reduced = "yes"
		}
		stage := "-"
		if m.Stage != "" {
			stage = color.New(color.FgYellow).Sprint(m.Stage)
		}
		fmt.Fprintf(a.out, "%-15s %-20s %-8s %-10.2f %s\n", m.ID, m.Name, reduced, m.ClashScoreAll, stage)
	}
	fmt.Fprintln(a.out)

	return nil
}

// Show displays a model with its outliers and output files.
func (a *ModelAdapter) Show(ctx context.Context, modelID string) error {
	detail, err := a.service.GetModel(ctx, modelID)
	if err != nil {
		return err
	}

	m := detail.Model
	fmt.Fprintf(a.out, "\nModel:   %s\n", m.ID)
	fmt.Fprintf(a.out, "Name:    %s\n", m.Name)
	fmt.Fprintf(a.out, "File:    %s\n", m.PDB)
	fmt.Fprintf(a.out, "Reduced: %t\n", m.IsReduced)
	fmt.Fprintf(a.out, "Clashscore: %.2f (B<40: %.2f)\n", m.ClashScoreAll, m.ClashScoreBlt40)
	if m.Stage != "" {
		fmt.Fprintf(a.out, "Running: %s\n", m.Stage)
	}
	fmt.Fprintf(a.out, "Created: %s\n", m.CreatedAt)

	if len(detail.Outliers) > 0 {
		fmt.Fprintf(a.out, "\n%-10s %-12s %-10s %s\n", "CRITERION", "RESIDUE", "VALUE", "LABEL")
		fmt.Fprintln(a.out, "────────────────────────────────────────────────")
		for _, o := range detail.Outliers {
			fmt.Fprintf(a.out, "%-10s %-12s %-10.3f %s\n", o.Criterion, o.ResidueKey, o.Value, o.Label)
		}
	}

	if len(detail.Artifacts) > 0 {
		fmt.Fprintln(a.out, "\nFiles:")
		stages := make([]string, 0, len(detail.Artifacts))
		for stage := range detail.Artifacts {
			stages = append(stages, stage)
		}
		slices.Sort(stages)
		for _, stage := range stages {
			fmt.Fprintf(a.out, "  %-12s %s\n", stage, detail.Artifacts[stage])
		}
	}
	fmt.Fprintln(a.out)

	return nil
}

// Delete removes a model and its files.
func (a *ModelAdapter) Delete(ctx context.Context, modelID string) error {
	if err := a.service.DeleteModel(ctx, modelID); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Deleted model %s\n", modelID)
	return nil
}
