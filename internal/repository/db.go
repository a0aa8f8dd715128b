package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// sqlDriverNames maps DATABASE_DRIVER values to registered database/sql drivers.
var sqlDriverNames = map[string]string{
	"mysql":    "mysql",
	"postgres": "pgx",
	"sqlite":   "sqlite",
}

func init() {
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// NewDB opens a connection pool for the given driver and DSN and verifies it
// with a ping.
func NewDB(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	name, ok := sqlDriverNames[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sqlx.Open(name, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	if driver == "sqlite" {
		// A single long-lived connection keeps in-memory databases and
		// per-connection pragmas alive.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)

		for _, pragma := range []string{
			"PRAGMA foreign_keys = ON",
			"PRAGMA busy_timeout = 5000",
		} {
			if _, err := db.ExecContext(ctx, pragma); err != nil {
				_ = db.Close()
				return nil, fmt.Errorf("apply pragma %q: %w", pragma, err)
			}
		}
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	slog.Debug("database connected", "driver", driver)
	return db, nil
}

// isDuplicateKeyError reports whether err is a unique constraint violation on
// any of the supported backends.
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT &&
			strings.Contains(liteErr.Error(), "UNIQUE")
	}

	return false
}
