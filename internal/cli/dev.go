package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sdezurik/MolProbity/internal/db"
)

// DevCmd returns the dev command group for development utilities.
func DevCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:    "dev",
		Short:  "Development utilities",
		Hidden: true,
		Long: `Development utilities for working with a scratch database.

These commands require MOLPROBITY_DB_PATH to name the database to use, so
they cannot touch the database of a real data directory by accident.`,
	}

	cmd.AddCommand(devResetCmd())
	return cmd
}

func devResetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset the dev database with fresh fixtures",
		Long: `Delete the dev database and recreate it with fixture data.

This command:
1. Deletes the existing dev database file
2. Creates a fresh database with the current schema
3. Seeds fixture models, outliers and a finished job`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath := os.Getenv("MOLPROBITY_DB_PATH")
			if dbPath == "" {
				return fmt.Errorf("MOLPROBITY_DB_PATH not set\n\nThis safety check prevents accidental reset of a real database")
			}

			if !force {
				fmt.Printf("This will delete and recreate: %s\n", dbPath)
				fmt.Print("Continue? [y/N] ")
				var response string
				fmt.Scanln(&response)
				if response != "y" && response != "Y" {
					fmt.Println("Aborted.")
					return nil
				}
			}

			db.SetPath(dbPath)
			if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("failed to delete database: %w", err)
			}
			fmt.Printf("✓ Deleted %s\n", dbPath)

			database, err := db.GetDB()
			if err != nil {
				return fmt.Errorf("failed to create database: %w", err)
			}
			fmt.Println("✓ Created fresh database with schema")

			if err := db.SeedFixtures(database); err != nil {
				return fmt.Errorf("failed to seed fixtures: %w", err)
			}
			fmt.Println("✓ Seeded fixture data")

			fmt.Println("\nSeeded entities:")
			fmt.Println("  - 2 models")
			fmt.Println("  - 5 outliers, 3 artifacts, 2 chart rows")
			fmt.Println("  - 1 job")

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")
	return cmd
}
