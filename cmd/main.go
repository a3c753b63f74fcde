package main

import (
	"fmt"
	"os"

	"medical-data-app/cmd/bootstrap"
	"medical-data-app/config"
	"medical-data-app/internal/infrastructure/database"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "medical-data-app",
		Short:         "Clinical records service for patients, doctors, appointments and medications",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd(), newMigrateCmd())
	return root
}

// loadConfig reads the configuration and sets up logging from it.
func loadConfig() (*config.Config, *logrus.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, bootstrap.SetupLogger(cfg.App.LogLevel), nil
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				logrus.Error(err)
				return err
			}

			// Initialize application with all dependencies
			app, err := bootstrap.New(cfg, log)
			if err != nil {
				log.Errorf("Failed to initialize application: %v", err)
				return err
			}

			if err := app.Run(); err != nil {
				log.Error(err)
				return err
			}
			return nil
		},
	}
}

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(
		migrateSubcommand("up", "Apply all pending migrations", func(m *database.Migrator, log *logrus.Logger) error {
			return m.Up()
		}),
		migrateSubcommand("down", "Roll back the latest migration", func(m *database.Migrator, log *logrus.Logger) error {
			return m.Down()
		}),
		migrateSubcommand("version", "Print the current schema version", func(m *database.Migrator, log *logrus.Logger) error {
			version, dirty, err := m.Version()
			if err != nil {
				return err
			}
			log.WithFields(logrus.Fields{"version": version, "dirty": dirty}).Info("Schema version")
			return nil
		}),
	)

	return cmd
}

func migrateSubcommand(use, short string, fn func(*database.Migrator, *logrus.Logger) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				logrus.Error(err)
				return err
			}

			err = bootstrap.Migrate(cfg, log, func(m *database.Migrator) error {
				return fn(m, log)
			})
			if err != nil {
				log.Errorf("Migration failed: %v", err)
			}
			return err
		},
	}
}
