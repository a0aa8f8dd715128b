package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dietlog/dietlog-go/internal/migrations"
	"github.com/dietlog/dietlog-go/internal/repository"
)

func newMigrateCommand(ctx *commandContext) *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	migrateCmd.AddCommand(
		newMigrateStepCommand(ctx, "up", "Apply all pending migrations", migrations.Up),
		newMigrateStepCommand(ctx, "down", "Roll back the latest migration", migrations.Down),
		newMigrateStepCommand(ctx, "status", "Show migration status", migrations.Status),
	)

	return migrateCmd
}

type migrateFunc func(ctx context.Context, db *sql.DB, driver string) error

func newMigrateStepCommand(ctx *commandContext, use, short string, step migrateFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.cfg

			db, err := repository.NewDB(cmd.Context(), cfg.DatabaseDriver, cfg.DatabaseDSN)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := step(cmd.Context(), db.DB, cfg.DatabaseDriver); err != nil {
				return err
			}

			version, err := migrations.Version(cmd.Context(), db.DB, cfg.DatabaseDriver)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema version: %d\n", version)
			return nil
		},
	}
}
