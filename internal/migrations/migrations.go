// Package migrations embeds the per-dialect schema and applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed mysql/*.sql postgres/*.sql sqlite/*.sql
var FS embed.FS

// gooseDialects maps DATABASE_DRIVER values to goose dialect names and the
// embedded directory holding that dialect's migrations.
var gooseDialects = map[string]string{
	"mysql":    "mysql",
	"postgres": "postgres",
	"sqlite":   "sqlite3",
}

func prepare(driver string) error {
	dialect, ok := gooseDialects[driver]
	if !ok {
		return fmt.Errorf("no migrations for driver %q", driver)
	}

	goose.SetBaseFS(FS)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return nil
}

// Up applies all pending migrations for driver.
func Up(ctx context.Context, db *sql.DB, driver string) error {
	if err := prepare(driver); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, db, driver); err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// Down rolls back the most recent migration for driver.
func Down(ctx context.Context, db *sql.DB, driver string) error {
	if err := prepare(driver); err != nil {
		return err
	}
	if err := goose.DownContext(ctx, db, driver); err != nil {
		return fmt.Errorf("migrate down: %w", err)
	}
	return nil
}

// Status logs the applied state of every migration for driver.
func Status(ctx context.Context, db *sql.DB, driver string) error {
	if err := prepare(driver); err != nil {
		return err
	}
	if err := goose.StatusContext(ctx, db, driver); err != nil {
		return fmt.Errorf("migrate status: %w", err)
	}
	return nil
}

// Version returns the current schema version for driver.
func Version(ctx context.Context, db *sql.DB, driver string) (int64, error) {
	if err := prepare(driver); err != nil {
		return 0, err
	}
	return goose.GetDBVersionContext(ctx, db)
}
