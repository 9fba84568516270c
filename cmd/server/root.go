package main

import (
	"github.com/spf13/cobra"

	"github.com/ferdiebergado/accountkit/internal/app"
	"github.com/ferdiebergado/accountkit/internal/config"
)

type rootOptions struct {
	cfgFile string
	envFile string
}

func (o *rootOptions) load() (*config.Config, error) {
	return app.Setup(o.cfgFile, o.envFile)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "accountkit",
		Short:         "User accounts with email confirmation and password reset",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "config.json", "path to the JSON config file")
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded outside production")

	cmd.AddCommand(
		newServeCmd(opts),
		newMigrateCmd(opts),
		newWorkerCmd(opts),
	)

	return cmd
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			return app.Serve(cmd.Context(), cfg)
		},
	}
}

func newWorkerCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Mail notifications queued by the API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			return app.Work(cmd.Context(), cfg)
		},
	}
}
