package main

import (
	"github.com/spf13/cobra"

	"github.com/ferdiebergado/accountkit/internal/app"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all up migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			return app.Migrate(cmd.Context(), cfg, false, 0)
		},
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations, all of them unless --steps is given",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			return app.Migrate(cmd.Context(), cfg, true, steps)
		},
	}
	down.Flags().IntVar(&steps, "steps", 0, "number of migrations to roll back")

	cmd.AddCommand(up, down)
	return cmd
}
