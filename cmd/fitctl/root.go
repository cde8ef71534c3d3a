package main

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/teamfit-api/pkg/config"
	"github.com/noah-isme/teamfit-api/pkg/database"
	"github.com/noah-isme/teamfit-api/pkg/logger"
)

var (
	cfg  *config.Config
	logr *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "fitctl",
	Short: "Operational tooling for the TeamFit API",
	Long: `fitctl runs maintenance tasks against a TeamFit deployment.

  fitctl migrate --dry-run            # list pending migrations
  fitctl seed-formulas                # load the built-in formula catalog
  fitctl week 12 --offset 1           # print next week's plan for athlete 12
  fitctl compare --candidate URL      # diff responses of two deployments

Configuration is read from the environment and .env, like the API server.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "compare" {
			return nil
		}
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logr, err = logger.New(cfg)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logr != nil {
			_ = logr.Sync()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd, seedCmd, weekCmd, compareCmd)
}

func openDB() (*sqlx.DB, error) {
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	return db, nil
}
