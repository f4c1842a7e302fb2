package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sdezurik/MolProbity/internal/core/pipeline"
	"github.com/sdezurik/MolProbity/internal/wire"
)

// analyzeFlags holds the stage selection of the analyze command.
type analyzeFlags struct {
	opts       pipeline.Options
	reduced    bool
	background bool
	modelID    string
}

// AnalyzeCmd returns the analyze command
func AnalyzeCmd() *cobra.Command {
	var f analyzeFlags

	cmd := &cobra.Command{
		Use:   "analyze [pdb-file]",
		Short: "Run validation analyses on a coordinate file",
		Long: `Register a coordinate file as a model and run the selected analyses on it.

Each model gets its own directory under the data directory. Hydrogens are
added first when a selected analysis needs them, unless --reduced says the
file already has them. Charts and kinemages pull in the analyses they draw on.

Examples:
  molprobity analyze 1ubq.pdb --all
  molprobity analyze 1ubq.pdb --rama --rota
  molprobity analyze --model MODEL-1a2b3c4d --multichart
  molprobity analyze 1ubq.pdb --all --background`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if err := f.validate(args); err != nil {
				return err
			}
			if f.modelID != "" {
				return wire.AnalysisAdapter().Resume(ctx, f.modelID, f.opts)
			}

			if f.background {
				wd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("failed to get working directory: %w", err)
				}
				return wire.JobAdapter().Launch(ctx, args[0], wd, f.forwardedArgs())
			}
			return wire.AnalysisAdapter().Analyze(ctx, args[0], f.opts, f.reduced)
		},
	}

	cmd.Flags().BoolVar(&f.opts.All, "all", false, "Run every analysis and build every chart")
	cmd.Flags().BoolVar(&f.opts.Rama, "rama", false, "Ramachandran analysis and plot")
	cmd.Flags().BoolVar(&f.opts.Rota, "rota", false, "Rotamer analysis")
	cmd.Flags().BoolVar(&f.opts.Cbeta, "cbeta", false, "Cβ deviation analysis and kinemage")
	cmd.Flags().BoolVar(&f.opts.AAC, "aac", false, "All-atom contacts (clashes) and kinemage")
	cmd.Flags().BoolVar(&f.opts.MultiKin, "multikin", false, "Multi-criterion kinemage")
	cmd.Flags().BoolVar(&f.opts.MultiChart, "multichart", false, "Multi-criterion chart")
	cmd.Flags().BoolVar(&f.reduced, "reduced", false, "The file already has hydrogens; skip adding them")
	cmd.Flags().BoolVar(&f.background, "background", false, "Run in a detached tmux session")
	cmd.Flags().StringVar(&f.modelID, "model", "", "Re-run analyses on a registered model")

	return cmd
}

// validate rejects flag combinations the command cannot honor.
func (f analyzeFlags) validate(args []string) error {
	if f.modelID != "" {
		if len(args) > 0 {
			return fmt.Errorf("give either a coordinate file or --model, not both")
		}
		if f.background {
			return fmt.Errorf("--background cannot be combined with --model")
		}
		return nil
	}
	if len(args) == 0 {
		return fmt.Errorf("a coordinate file is required")
	}
	if !f.opts.Any() {
		return fmt.Errorf("nothing to do: select at least one analysis (see --help)")
	}
	return nil
}

// forwardedArgs rebuilds the selection flags for the foreground run a
// background job performs.
func (f analyzeFlags) forwardedArgs() []string {
	var args []string
	add := func(set bool, flag string) {
		if set {
			args = append(args, flag)
		}
	}
	add(f.opts.All, "--all")
	add(f.opts.Rama, "--rama")
	add(f.opts.Rota, "--rota")
	add(f.opts.Cbeta, "--cbeta")
	add(f.opts.AAC, "--aac")
	add(f.opts.MultiKin, "--multikin")
	add(f.opts.MultiChart, "--multichart")
	add(f.reduced, "--reduced")
	return args
}
