package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/sdezurik/MolProbity/internal/wire"
)

// JobsCmd returns the jobs command
func JobsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Manage background analyses",
		Long: `Background analyses started with 'analyze --background' run in detached
tmux sessions. A job is finished once its session has exited.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List background jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.JobAdapter().List(context.Background())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "kill [job-id]",
		Short: "Stop a running job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.JobAdapter().Kill(context.Background(), args[0])
		},
	})
	return cmd
}
