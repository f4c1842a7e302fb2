package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/sdezurik/MolProbity/internal/core/summary"
	"github.com/sdezurik/MolProbity/internal/ports/primary"
)

// ReportAdapter translates CLI operations to ReportService calls. The report
// goes to out; the run summary goes to errOut so out stays valid CSV.
type ReportAdapter struct {
	service primary.ReportService
	out     io.Writer
	errOut  io.Writer
}

// NewReportAdapter creates a new ReportAdapter with the given service.
func NewReportAdapter(service primary.ReportService, out, errOut io.Writer) *ReportAdapter {
	return &ReportAdapter{
		service: service,
		out:     out,
		errOut:  errOut,
	}
}

// Generate writes the residue report for paths.
func (a *ReportAdapter) Generate(ctx context.Context, paths []string, cols summary.Columns, outliersOnly bool) error {
	if len(paths) == 0 {
		return fmt.Errorf("at least one coordinate file is required")
	}

	sum, err := a.service.Generate(ctx, primary.ReportRequest{
		Paths:        paths,
		Columns:      cols,
		OutliersOnly: outliersOnly,
	}, a.out)
	if err != nil {
		return err
	}

	for _, s := range sum.Skipped {
		fmt.Fprintf(a.errOut, "%s skipped %s: %s\n", color.New(color.FgYellow).Sprint("!"), s.Path, s.Reason)
	}
	fmt.Fprintf(a.errOut, "✓ Reported %d residues from %d models (%d inputs)\n", sum.Rows, sum.Models, sum.Inputs)
	return nil
}
