// Package database provides database migration tooling.
package database

import (
	"embed"
	"errors"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5" // pgx5 migration driver
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var fs embed.FS

// migrationsFromSource returns a migration source driver from the embedded migrations.
func migrationsFromSource() source.Driver {
	d, err := iofs.New(fs, "migrations")
	if err != nil {
		panic(err)
	}
	return d
}

// Migrator is the interface for the migration tooling.
type Migrator interface {
	Up() error
	Down() error
	Steps(int) error
	Version() (uint, bool, error)
}

// NewFromConnectionString returns a new migration instance from the given
// connection string. Standard postgres:// URLs are rewritten to the pgx5
// scheme so migrations run over the same driver as the application pool.
func NewFromConnectionString(connString string) (Migrator, error) {
	if strings.HasPrefix(connString, "postgres://") {
		connString = "pgx5://" + strings.TrimPrefix(connString, "postgres://")
	}
	d := migrationsFromSource()
	return migrate.NewWithSourceInstance("iofs", d, connString)
}

// GetVersion reports the current schema version and dirty state, mapping the
// nil-version case to zero.
func GetVersion(m Migrator) (uint, bool, error) {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}
