package database

import (
	"cmp"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"expense-manager/internal/config"
)

const (
	defaultMigrationsPath = "db/migrations"
	defaultSeedsPath      = "db/seeds"
)

var (
	maxRetries    = 30
	retryInterval = 2 * time.Second
)

var errNoMigrations = errors.New("migrations directory not found")

// MigrationRunner applies the SQL migrations under migrationsPath and,
// when seeding is on, the *.sql scripts under seedsPath.
type MigrationRunner struct {
	db             *sql.DB
	migrationsPath string
	seedsPath      string
	seed           bool
}

// NewMigrationRunner builds a runner; empty paths fall back to db/migrations and db/seeds.
func NewMigrationRunner(db *sql.DB, migrationsPath, seedsPath string, seed bool) *MigrationRunner {
	return &MigrationRunner{
		db:             db,
		migrationsPath: cmp.Or(migrationsPath, defaultMigrationsPath),
		seedsPath:      cmp.Or(seedsPath, defaultSeedsPath),
		seed:           seed,
	}
}

// WaitForDatabase pings until the database answers, maxRetries times at most.
func (mr *MigrationRunner) WaitForDatabase(ctx context.Context) error {
	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if lastErr = mr.db.PingContext(ctx); lastErr == nil {
			return nil
		}
		slog.Info("database not ready", "attempt", attempt, "max_attempts", maxRetries, "error", lastErr)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryInterval):
		}
	}
	return fmt.Errorf("database not ready after %d attempts: %w", maxRetries, lastErr)
}

func (mr *MigrationRunner) open() (*migrate.Migrate, error) {
	if _, err := os.Stat(mr.migrationsPath); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", errNoMigrations, mr.migrationsPath)
	}

	dir, err := filepath.Abs(mr.migrationsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve migrations path: %w", err)
	}

	driver, err := postgres.WithInstance(mr.db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+dir, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration instance: %w", err)
	}
	return m, nil
}

// RunMigrations applies every pending up migration. A missing migrations
// directory is skipped. A dirty version is forced before migrating.
func (mr *MigrationRunner) RunMigrations() error {
	m, err := mr.open()
	if errors.Is(err, errNoMigrations) {
		slog.Warn("skipping migrations", "path", mr.migrationsPath)
		return nil
	}
	if err != nil {
		return err
	}

	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
	case err != nil:
		return fmt.Errorf("failed to read migration version: %w", err)
	case dirty:
		slog.Warn("database schema is dirty, forcing version", "version", version)
		if err := m.Force(int(version)); err != nil {
			return fmt.Errorf("failed to force version %d: %w", version, err)
		}
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}

	current, _, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to read migration version: %w", err)
	}
	slog.Info("migrations applied", "from_version", version, "to_version", current)
	return nil
}

// LoadSeeds executes every *.sql file in the seeds directory in name order.
// A script that fails is logged and the rest still run.
func (mr *MigrationRunner) LoadSeeds(ctx context.Context) error {
	if !mr.seed {
		return nil
	}

	files, err := filepath.Glob(filepath.Join(mr.seedsPath, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to list seed files: %w", err)
	}
	if len(files) == 0 {
		slog.Info("no seed files found", "path", mr.seedsPath)
		return nil
	}

	for _, file := range files {
		script, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read seed file %s: %w", file, err)
		}

		if _, err := mr.db.ExecContext(ctx, string(script)); err != nil {
			slog.Warn("seed file failed", "file", filepath.Base(file), "error", err)
			continue
		}
		slog.Info("seed file applied", "file", filepath.Base(file))
	}
	return nil
}

// Status reports the applied migration version.
func (mr *MigrationRunner) Status() (version uint, dirty bool, err error) {
	m, err := mr.open()
	if err != nil {
		return 0, false, err
	}
	return m.Version()
}

// Migrate waits for the database, applies migrations and loads seeds.
func (mr *MigrationRunner) Migrate(ctx context.Context) error {
	if err := mr.WaitForDatabase(ctx); err != nil {
		return fmt.Errorf("database readiness check failed: %w", err)
	}
	if err := mr.RunMigrations(); err != nil {
		return err
	}
	return mr.LoadSeeds(ctx)
}

// RunMigrationsIfEnabled runs the migration runner when AUTO_MIGRATE is on.
func RunMigrationsIfEnabled(ctx context.Context, db *sql.DB, cfg *config.DatabaseConfig) error {
	if !cfg.AutoMigrate {
		return nil
	}
	return NewMigrationRunner(db, cfg.MigrationsPath, cfg.SeedsPath, cfg.Seed).Migrate(ctx)
}
