package main

import (
	"os"

	"github.com/spf13/cobra"

	"hirehub/internal/config"
	"hirehub/internal/database"
	"hirehub/pkg/logger"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE:  migrateCommand,
	}
}

func migrateCommand(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	log := logger.New(logger.LogLevel(cfg.LogLevel), cfg.AppEnv, os.Stdout)

	db, dialect, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	return database.NewMigrationService(db, dialect, log).RunMigrations(ctx)
}
