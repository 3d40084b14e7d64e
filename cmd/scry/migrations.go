package main

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"slices"
	"strings"

	"github.com/phrazzld/scry-cards/internal/config"
	"github.com/phrazzld/scry-cards/internal/platform/migrate"
	"github.com/phrazzld/scry-cards/internal/platform/postgres"
	"github.com/phrazzld/scry-cards/internal/platform/sqlite"
)

// runMigrate executes one migration command against the configured store.
func runMigrate(ctx context.Context, env *cliEnv, args []string) error {
	fs := newFlagSet("migrate", env)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 || !slices.Contains(migrate.Commands, fs.Arg(0)) {
		fmt.Fprintf(env.stderr, "error: expected one migration command: %s\n", strings.Join(migrate.Commands, ", "))
		return errUsage
	}
	command := fs.Arg(0)

	cfg, log, err := loadConfig(env)
	if err != nil {
		return err
	}

	db, dialect, migrations, err := openMigrationDB(ctx, cfg.Store, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("error closing database", slog.String("error", err.Error()))
		}
	}()

	log.Info("executing migrations", slog.String("command", command), slog.String("dialect", dialect))
	if err := migrate.Run(ctx, db, dialect, migrations, command, log); err != nil {
		return err
	}

	version, err := migrate.CurrentVersion(ctx, db, dialect)
	if err != nil {
		return err
	}
	fmt.Fprintf(env.stdout, "schema version: %d\n", version)
	return nil
}

// openMigrationDB opens the configured database without migrating it and
// returns it with its goose dialect and migration files.
func openMigrationDB(ctx context.Context, cfg config.StoreConfig, log *slog.Logger) (*sql.DB, string, fs.FS, error) {
	if cfg.Driver == "postgres" {
		db, err := postgres.OpenDB(ctx, cfg.DatabaseURL, log)
		if err != nil {
			return nil, "", nil, err
		}
		return db, migrate.DialectPostgres, postgres.Migrations, nil
	}

	path, err := cfg.ResolveSQLitePath()
	if err != nil {
		return nil, "", nil, fmt.Errorf("failed to resolve card database path: %w", err)
	}
	db, err := sqlite.OpenDB(ctx, path)
	if err != nil {
		return nil, "", nil, err
	}
	return db, migrate.DialectSQLite, sqlite.Migrations, nil
}
