package cli

import (
	"fmt"
	"os"
	"slices"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sdezurik/MolProbity/internal/config"
	"github.com/sdezurik/MolProbity/internal/wire"
)

// CheckResult represents the outcome of a single check
type CheckResult struct {
	Name    string
	Status  string // "✓", "⚠", "✗"
	Details string // Only shown if Status != "✓"
}

// DoctorCmd returns the doctor command for environment validation
func DoctorCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that the configured analyzers can be found",
		Long: `Check the molprobity environment.

Validates:
- The data directory exists
- The analyzer library directory exists
- Every configured analyzer program is on PATH

A missing analyzer is not fatal to a run: its stage logs a warning and
reports no findings. Doctor reports it so the gap is not silent.

Examples:
  molprobity doctor              # Run full health check
  molprobity doctor --quiet      # Exit code only (0=healthy, 1=issues)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := wire.Config()

			results := []CheckResult{
				checkDir("Data dir", cfg.DataDir, "✗"),
				checkDir("Lib dir", cfg.LibDir, "⚠"),
			}
			results = append(results, checkTools(cfg, wire.ToolRunner().LookPath)...)

			hasErrors := false
			for _, r := range results {
				if r.Status == "✗" {
					hasErrors = true
					break
				}
			}

			if !quiet {
				fmt.Println()
				fmt.Println("Check              Status")
				fmt.Println("─────────────────────────")
				for _, r := range results {
					fmt.Printf("%-18s %s\n", r.Name, statusMark(r.Status))
				}
				fmt.Println()

				for _, r := range results {
					if r.Status != "✓" && r.Details != "" {
						fmt.Printf("%s: %s\n", r.Name, r.Details)
					}
				}

				if hasErrors {
					fmt.Println("\n⚠ Issues found. Run 'molprobity init' or edit .molprobity/config.yaml.")
				} else {
					fmt.Println("All checks passed.")
				}
			}

			if hasErrors {
				return fmt.Errorf("environment validation failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode - exit code only")

	return cmd
}

func checkDir(name, path, missing string) CheckResult {
	info, err := os.Stat(path)
	if err != nil {
		return CheckResult{Name: name, Status: missing, Details: fmt.Sprintf("%s not found", path)}
	}
	if !info.IsDir() {
		return CheckResult{Name: name, Status: "✗", Details: fmt.Sprintf("%s is not a directory", path)}
	}
	return CheckResult{Name: name, Status: "✓"}
}

// checkTools looks up the program of every configured tool, in name order.
// Missing programs are warnings: the stage still runs and reports nothing.
func checkTools(cfg *config.Config, lookPath func(string) (string, error)) []CheckResult {
	names := make([]string, 0, len(cfg.Tools))
	for name := range cfg.Tools {
		names = append(names, name)
	}
	slices.Sort(names)

	var results []CheckResult
	for _, name := range names {
		argv := cfg.Tools[name]
		if len(argv) == 0 {
			results = append(results, CheckResult{Name: name, Status: "✗", Details: "empty command"})
			continue
		}
		if _, err := lookPath(argv[0]); err != nil {
			results = append(results, CheckResult{Name: name, Status: "⚠", Details: fmt.Sprintf("%s not found on PATH", argv[0])})
			continue
		}
		results = append(results, CheckResult{Name: name, Status: "✓"})
	}
	return results
}

func statusMark(status string) string {
	switch status {
	case "✓":
		return color.New(color.FgGreen).Sprint(status)
	case "⚠":
		return color.New(color.FgYellow).Sprint(status)
	default:
		return color.New(color.FgRed).Sprint(status)
	}
}
