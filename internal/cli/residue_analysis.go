package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/sdezurik/MolProbity/internal/core/summary"
	"github.com/sdezurik/MolProbity/internal/wire"
)

// reportFlags holds the column switches of the residue report. Every group
// is on unless switched off.
type reportFlags struct {
	noClash, noCbeta, noRota, noRama, noOmega, noGeom, noCount bool

	outliersOnly bool
}

func (f reportFlags) columns() summary.Columns {
	return summary.Columns{
		Clash:    !f.noClash,
		Cbeta:    !f.noCbeta,
		Rotamer:  !f.noRota,
		Rama:     !f.noRama,
		Omega:    !f.noOmega,
		Geometry: !f.noGeom,
		Counts:   !f.noCount,
	}
}

// ResidueAnalysisCmd returns the residue-analysis command
func ResidueAnalysisCmd() *cobra.Command {
	var f reportFlags

	cmd := &cobra.Command{
		Use:   "residue-analysis [pdb-file]...",
		Short: "Write a per-residue validation report as CSV",
		Long: `Run the analyzers on each coordinate file and write one CSV row per residue
to standard output. Ensembles are split and reported model by model.

Inputs that are not regular files are skipped with a warning on standard
error; the rest of the batch still runs.

Examples:
  molprobity residue-analysis 1ubq.pdb > 1ubq.csv
  molprobity residue-analysis *.pdb --no-geom --outliers-only`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.ReportAdapter().Generate(context.Background(), args, f.columns(), f.outliersOnly)
		},
	}

	cmd.Flags().BoolVar(&f.noClash, "no-clash", false, "Leave out the clash columns")
	cmd.Flags().BoolVar(&f.noCbeta, "no-cbeta", false, "Leave out the Cβ deviation column")
	cmd.Flags().BoolVar(&f.noRota, "no-rota", false, "Leave out the rotamer columns")
	cmd.Flags().BoolVar(&f.noRama, "no-rama", false, "Leave out the Ramachandran columns")
	cmd.Flags().BoolVar(&f.noOmega, "no-omega", false, "Leave out the peptide omega columns")
	cmd.Flags().BoolVar(&f.noGeom, "no-geom", false, "Leave out the bond length and angle columns")
	cmd.Flags().BoolVar(&f.noCount, "no-count", false, "Leave out the outlier tally columns")
	cmd.Flags().BoolVar(&f.outliersOnly, "outliers-only", false, "Only report residues with at least one outlier")

	return cmd
}
