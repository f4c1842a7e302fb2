package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sdezurik/MolProbity/internal/cli"
	"github.com/sdezurik/MolProbity/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "molprobity",
		Short:   "Residue-level validation of macromolecular models",
		Version: version.String(),
		Long: `molprobity runs the structure validation analyzers on coordinate files and
merges their findings per residue: clashes, Cβ deviations, rotamers,
Ramachandran and peptide omega angles, bond lengths and angles.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.DoctorCmd())
	rootCmd.AddCommand(cli.AnalyzeCmd())
	rootCmd.AddCommand(cli.ResidueAnalysisCmd())
	rootCmd.AddCommand(cli.ModelsCmd())
	rootCmd.AddCommand(cli.JobsCmd())

	// Developer tools
	rootCmd.AddCommand(cli.DevCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
