package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	applog "myexpense/internal/log"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ErrDirtySchema means a previous migration stopped halfway and the schema
// needs manual repair.
var ErrDirtySchema = errors.New("schema is dirty")

// SchemaVersion is the migration state of a database file.
type SchemaVersion struct {
	Version uint // 0 when no migration has run
	Dirty   bool
}

// RunMigrations brings the database at dbPath up to the latest embedded
// schema and returns the resulting version.
func RunMigrations(dbPath string) (SchemaVersion, error) {
	m, closeFn, err := newMigrator(dbPath)
	if err != nil {
		return SchemaVersion{}, err
	}
	defer closeFn()

	before, err := schemaVersion(m)
	if err != nil {
		return SchemaVersion{}, err
	}
	if before.Dirty {
		return before, fmt.Errorf("migrate from version %d: %w", before.Version, ErrDirtySchema)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return SchemaVersion{}, fmt.Errorf("apply migrations: %w", err)
	}

	after, err := schemaVersion(m)
	if err != nil {
		return SchemaVersion{}, err
	}
	if after.Version != before.Version {
		applog.FromContext(context.Background()).WithComponent(applog.ComponentStorage).
			Info("Schema migrated",
				"from_version", before.Version,
				"to_version", after.Version)
	}
	return after, nil
}

// newMigrator opens its own connection, since closing the migrator closes
// the database it was given.
func newMigrator(dbPath string) (*migrate.Migrate, func(), error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open migration database: %w", err)
	}

	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("create sqlite driver: %w", err)
	}

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("create migrate instance: %w", err)
	}
	return m, func() { m.Close() }, nil
}

func schemaVersion(m *migrate.Migrate) (SchemaVersion, error) {
	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return SchemaVersion{}, nil
	}
	if err != nil {
		return SchemaVersion{}, fmt.Errorf("read schema version: %w", err)
	}
	return SchemaVersion{Version: v, Dirty: dirty}, nil
}
