// Package migration applies and authors the SQL migrations of the sale schema.
package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

// Source is where migration files are read from
type Source struct {
	name string
	fsys fs.FS
}

// FromDir reads migrations from a directory on disk
func FromDir(dir string) Source {
	return Source{name: "file://" + dir, fsys: os.DirFS(dir)}
}

// FromFS reads migrations from fsys, usually the files compiled into the binary
func FromFS(fsys fs.FS) Source {
	return Source{name: "embedded", fsys: fsys}
}

// String names the source in logs
func (s Source) String() string { return s.name }

// Status is the schema version recorded in the database.
// Version 0 means no migration was ever applied.
type Status struct {
	Version uint
	Dirty   bool
}

// Migrator runs golang-migrate against a PostgreSQL connection
type Migrator struct {
	m   *migrate.Migrate
	log *zap.Logger
}

// Open prepares a migrator over db. Closing the migrator closes db.
func Open(db *sql.DB, src Source, logger *zap.Logger) (*Migrator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	files, err := iofs.New(src.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("open migrations %s: %w", src, err)
	}
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		_ = files.Close()
		return nil, fmt.Errorf("postgres migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", files, "postgres", driver)
	if err != nil {
		_ = files.Close()
		return nil, fmt.Errorf("migrate instance: %w", err)
	}

	log := logger.With(zap.Stringer("migrations_source", src))
	m.Log = migrateLog{log}
	return &Migrator{m: m, log: log}, nil
}

// apply runs op and logs the resulting version. Having nothing to do is not an error.
func (mg *Migrator) apply(what string, op func() error) error {
	mg.log.Info("Running migrations", zap.String("operation", what))
	err := op()
	if errors.Is(err, migrate.ErrNoChange) {
		mg.log.Info("Schema already up to date", zap.String("operation", what))
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration %s: %w", what, err)
	}
	st, err := mg.Status()
	if err != nil {
		return err
	}
	mg.log.Info("Migrations applied",
		zap.String("operation", what),
		zap.Uint("version", st.Version),
		zap.Bool("dirty", st.Dirty))
	return nil
}

// Up applies every pending migration
func (mg *Migrator) Up() error { return mg.apply("up", mg.m.Up) }

// Down rolls every migration back
func (mg *Migrator) Down() error { return mg.apply("down", mg.m.Down) }

// Steps moves n migrations forward, or back when n is negative
func (mg *Migrator) Steps(n int) error {
	return mg.apply(fmt.Sprintf("steps(%d)", n), func() error { return mg.m.Steps(n) })
}

// GoTo migrates up or down to version
func (mg *Migrator) GoTo(version uint) error {
	return mg.apply(fmt.Sprintf("goto(%d)", version), func() error { return mg.m.Migrate(version) })
}

// Status reads the recorded schema version
func (mg *Migrator) Status() (Status, error) {
	v, dirty, err := mg.m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		return Status{}, nil
	case err != nil:
		return Status{}, fmt.Errorf("read migration version: %w", err)
	}
	return Status{Version: v, Dirty: dirty}, nil
}

// Force records version without running anything, clearing a dirty flag
// left by a failed migration.
func (mg *Migrator) Force(version int) error {
	mg.log.Warn("Forcing migration version", zap.Int("version", version))
	if err := mg.m.Force(version); err != nil {
		return fmt.Errorf("force version %d: %w", version, err)
	}
	return nil
}

// Drop removes every object of the database, recorded sales included
func (mg *Migrator) Drop() error {
	mg.log.Warn("Dropping every table of the sale schema")
	if err := mg.m.Drop(); err != nil {
		return fmt.Errorf("drop schema: %w", err)
	}
	return nil
}

// Close releases the source and the database connection
func (mg *Migrator) Close() error {
	srcErr, dbErr := mg.m.Close()
	return errors.Join(srcErr, dbErr)
}

// migrateLog sends golang-migrate output to zap at debug level
type migrateLog struct{ l *zap.Logger }

func (g migrateLog) Printf(format string, v ...any) {
	g.l.Debug(fmt.Sprintf(format, v...))
}

func (g migrateLog) Verbose() bool {
	return g.l.Core().Enabled(zap.DebugLevel)
}
