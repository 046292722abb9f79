package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/frahmantamala/inventory-tracker/internal/seed"
	"github.com/frahmantamala/inventory-tracker/internal/storage"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Reset the database to the seed data",
	Long:  `Replace every user, item and category with the built-in seed set. The server does this on every start; the command is for inspecting a postgres database without starting it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		cfg, err := loadConfig(configPath)
		if err != nil {
			return err
		}

		db, err := storage.Open(cfg.Storage)
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}

		if err := storage.Migrate(ctx, db, cfg.Storage); err != nil {
			return err
		}

		now := time.Now()
		if err := seed.Reset(ctx, db, now); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Seeded %d users\n", len(seed.Users(now)))
		fmt.Fprintf(out, "Seeded %d inventory items\n", len(seed.Items(now)))
		return nil
	},
}
