// Package storage opens the relational store and applies schema migrations.
package storage

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// Open connects to the store and verifies the connection.
func Open(driver, dsn string) (*sql.DB, error) {
	if driver != DriverPostgres && driver != DriverSQLite {
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}
	if driver == DriverSQLite {
		// A :memory: database lives in a single connection.
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// Migrate brings the schema up to date. It must run once at startup before
// the store is used.
func Migrate(db *sql.DB, driver, dsn string) error {
	d, err := iofs.New(migrationsFS, "migrations/"+driver)
	if err != nil {
		return fmt.Errorf("create iofs source: %w", err)
	}

	var target database.Driver
	switch driver {
	case DriverSQLite:
		// Migrate through the caller's handle: a separate connection would
		// not see an in-memory database.
		target, err = sqlite.WithInstance(db, &sqlite.Config{})
		if err != nil {
			return fmt.Errorf("create sqlite driver: %w", err)
		}
	case DriverPostgres:
		migrateDB, err := sql.Open(DriverPostgres, dsn)
		if err != nil {
			return fmt.Errorf("open migration database: %w", err)
		}
		target, err = postgres.WithInstance(migrateDB, &postgres.Config{})
		if err != nil {
			migrateDB.Close()
			return fmt.Errorf("create postgres driver: %w", err)
		}
	default:
		return fmt.Errorf("unsupported driver %q", driver)
	}

	m, err := migrate.NewWithInstance("iofs", d, driver, target)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	if driver == DriverPostgres {
		// Closing the sqlite driver would close the shared handle.
		defer m.Close()
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}
