package cmd

import (
	"context"
	"fmt"

	"github.com/frahmantamala/inventory-tracker/internal"
	"github.com/frahmantamala/inventory-tracker/internal/storage"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
)

var (
	migrateCmd = &cobra.Command{
		RunE:  runMigration,
		Use:   "migrate",
		Short: "apply the embedded sql migrations to the configured postgres database",
	}
	migrateRollback bool
)

func init() {
	migrateCmd.Flags().BoolVarP(&migrateRollback, "rollback", "r", false, "to rollback the latest version of sql migration")
}

func runMigration(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	if cfg.Storage.Driver != internal.StorageDriverPostgres {
		fmt.Fprintf(cmd.OutOrStdout(), "%s storage is migrated when the server starts; nothing to do\n", cfg.Storage.Driver)
		return nil
	}

	db, err := goose.OpenDBWithDriver(storage.SQLDriverName(cfg.Storage.Driver), cfg.Storage.Source)
	if err != nil {
		return fmt.Errorf("goose: failed to open DB: %w", err)
	}
	defer db.Close()

	command := "up"
	if migrateRollback {
		command = "down"
	}
	return storage.RunGoose(ctx, db, cfg.Storage.MigrationsTable, command)
}
