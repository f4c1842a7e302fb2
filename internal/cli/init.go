package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sdezurik/MolProbity/internal/config"
	"github.com/sdezurik/MolProbity/internal/db"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	var (
		force   bool
		dataDir string
		nuclear bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file and initialize the database",
		Long: `Write .molprobity/config.yaml in the current directory with the default
analyzer invocations, then create the model database under the data directory.

Edit the tools section of the config to point at your analyzer installation.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(config.DirName, config.FileName)
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("failed to check %s: %w", path, err)
			}

			cfg := config.Default()
			if dataDir != "" {
				abs, err := filepath.Abs(dataDir)
				if err != nil {
					return fmt.Errorf("failed to resolve data dir: %w", err)
				}
				cfg.DataDir = abs
			}
			if nuclear {
				cfg.HydrogenBondLength = config.BLengthNuclear
			}
			if err := config.SaveConfig(".", cfg); err != nil {
				return err
			}
			fmt.Printf("✓ Wrote %s\n", path)

			db.SetPath(cfg.DBPath())
			if _, err := db.GetDB(); err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			fmt.Printf("✓ Database initialized at %s\n", cfg.DBPath())

			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  molprobity doctor")
			fmt.Println("  molprobity analyze model.pdb --all")

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config file")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Directory for models and the database")
	cmd.Flags().BoolVar(&nuclear, "nuclear", false, "Use nuclear hydrogen positions instead of electron-cloud")
	return cmd
}
