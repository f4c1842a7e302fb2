package primary

import (
	"context"
	"io"

	"github.com/sdezurik/MolProbity/internal/core/summary"
)

// ReportService defines the primary port for the batch residue report.
type ReportService interface {
	// Generate writes the header and one row per residue of every model in
	// req.Paths to w. Problems with one input are reported in the summary
	// and do not stop the batch.
	Generate(ctx context.Context, req ReportRequest, w io.Writer) (*ReportSummary, error)
}

// ReportRequest contains parameters for a residue report.
type ReportRequest struct {
	Paths        []string
	Columns      summary.Columns
	OutliersOnly bool
}

// ReportSummary describes what a report run processed.
type ReportSummary struct {
	Inputs  int // paths given
	Models  int // models reported, counting each ensemble member
	Rows    int
	Skipped []SkippedInput
}

// SkippedInput is an input or ensemble member the report left out.
type SkippedInput struct {
	Path   string
	Reason string
}
