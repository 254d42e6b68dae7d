package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	sqlitemigrations "github.com/unbox-app/unbox/internal/server/migrations/sqlite"
)

// OpenSQLite opens (or creates) a SQLite database at dsn and runs the
// embedded migrations.
func OpenSQLite(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	if err := MigrateSQLite(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// MigrateSQLite applies the embedded SQLite migrations to db.
func MigrateSQLite(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(sqlitemigrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("error setting goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("error running migrations: %w", err)
	}
	return nil
}

// Open dispatches on driver ("pgx" or "sqlite") and returns a migrated
// connection.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	switch driver {
	case "pgx", "postgres":
		return OpenPostgres(ctx, dsn)
	case "sqlite", "sqlite3":
		return OpenSQLite(ctx, dsn)
	default:
		return nil, fmt.Errorf("unknown database driver: %q", driver)
	}
}
