package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/sdezurik/MolProbity/internal/wire"
)

// ModelsCmd returns the models command
func ModelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "Inspect analyzed models",
	}
	cmd.AddCommand(modelsListCmd())
	cmd.AddCommand(modelsShowCmd())
	cmd.AddCommand(modelsRmCmd())
	return cmd
}

func modelsListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List models, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.ModelAdapter().List(context.Background(), limit)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most this many models")
	return cmd
}

func modelsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [model-id]",
		Short: "Show a model with its outliers and output files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.ModelAdapter().Show(context.Background(), args[0])
		},
	}
}

func modelsRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm [model-id]",
		Short: "Delete a model and its directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.ModelAdapter().Delete(context.Background(), args[0])
		},
	}
}
