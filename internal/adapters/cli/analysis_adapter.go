// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle output formatting, but delegate
// business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/sdezurik/MolProbity/internal/core/pipeline"
	"github.com/sdezurik/MolProbity/internal/core/validation"
	"github.com/sdezurik/MolProbity/internal/ports/primary"
)

// AnalysisAdapter translates CLI operations to AnalysisService calls.
type AnalysisAdapter struct {
	service primary.AnalysisService
	out     io.Writer
}

// NewAnalysisAdapter creates a new AnalysisAdapter with the given service.
func NewAnalysisAdapter(service primary.AnalysisService, out io.Writer) *AnalysisAdapter {
	return &AnalysisAdapter{
		service: service,
		out:     out,
	}
}

// Analyze registers a coordinate file and runs the selected stages on it.
func (a *AnalysisAdapter) Analyze(ctx context.Context, pdbPath string, opts pipeline.Options, reduced bool) error {
	if !opts.Any() {
		return fmt.Errorf("nothing to do: select at least one analysis")
	}
	resp, err := a.service.Analyze(ctx, primary.AnalyzeRequest{
		PDBPath: pdbPath,
		Options: opts,
		Reduced: reduced,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Analyzed %s as %s\n", pdbPath, resp.ModelID)
	a.printState(resp.State)
	return nil
}

// Resume runs the selected stages on a registered model.
func (a *AnalysisAdapter) Resume(ctx context.Context, modelID string, opts pipeline.Options) error {
	if !opts.Any() {
		return fmt.Errorf("nothing to do: select at least one analysis")
	}
	resp, err := a.service.Resume(ctx, modelID, opts)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Updated %s\n", resp.ModelID)
	a.printState(resp.State)
	return nil
}

func (a *AnalysisAdapter) printState(state *pipeline.ModelAnalysisState) {
	fmt.Fprintf(a.out, "\nModel:    %s\n", state.PDB)
	if _, ok := state.Outliers[validation.CriterionClash]; ok {
		fmt.Fprintf(a.out, "Clashscore: %.2f (B<40: %.2f)\n", state.ClashScore.All, state.ClashScore.Blt40)
	}

	fmt.Fprintf(a.out, "\n%-10s %s\n", "CRITERION", "OUTLIERS")
	fmt.Fprintln(a.out, "────────────────────────")
	for _, c := range validation.Criteria {
		m, ok := state.Outliers[c]
		if !ok {
			continue
		}
		n := fmt.Sprint(m.Len())
		if m.Len() > 0 {
			n = color.New(color.FgYellow).Sprint(n)
		}
		fmt.Fprintf(a.out, "%-10s %s\n", c, n)
	}
	if len(state.Chart.Rows) > 0 {
		fmt.Fprintf(a.out, "\nChart: %s\n", state.Artifacts[pipeline.StageMultiChart])
	}
	fmt.Fprintln(a.out)
}
