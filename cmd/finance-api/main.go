package main

import (
	"os"

	"github.com/spf13/cobra"

	"shared-finance-go/internal/app"
	"shared-finance-go/pkg/logger"
)

func main() {
	log := logger.NewFromEnv()

	if err := newRootCmd(log).Execute(); err != nil {
		log.Critical("app: command failed", "err", err)
		os.Exit(1)
	}
}

func newRootCmd(log logger.Logger) *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:           "finance-api",
		Short:         "Shared finance API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), log, configFile)
		},
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "path to a config file (yaml, json or toml)")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), log, configFile)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(_ *cobra.Command, _ []string) error {
			log.Info("app: migrating")
			if err := app.Migrate(log, configFile); err != nil {
				return err
			}
			log.Info("app: migrations applied")
			return nil
		},
	})

	return root
}
