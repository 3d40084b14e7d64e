package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	"github.com/phrazzld/scry-cards/internal/platform/migrate"
	"github.com/phrazzld/scry-cards/internal/redact"
)

// DriverName is the database/sql driver registered by pgx.
const DriverName = "pgx"

// Migrations holds the schema migrations for the PostgreSQL backend.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// OpenDB opens a connection pool to databaseURL and verifies it is reachable.
func OpenDB(ctx context.Context, databaseURL string, logger *slog.Logger) (*sql.DB, error) {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Debug("connecting to database", slog.String("url", redact.DatabaseURL(databaseURL)))

	db, err := sql.Open(DriverName, databaseURL)
	if err != nil {
		// Parse errors can quote the connection string.
		msg := redact.Error(err)
		logger.Error("failed to open database connection", slog.String("error", msg))
		return nil, fmt.Errorf("failed to open database connection: %s", msg)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		logger.Error("failed to ping database", slog.String("error", redact.Error(err)))
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("database connection established")
	return db, nil
}

// Open connects to databaseURL, applies pending migrations and returns a
// store that owns the connection pool.
func Open(ctx context.Context, databaseURL string, logger *slog.Logger) (*PostgresCardStore, error) {
	db, err := OpenDB(ctx, databaseURL, logger)
	if err != nil {
		return nil, err
	}

	if err := migrate.Up(ctx, db, migrate.DialectPostgres, Migrations, logger); err != nil {
		_ = db.Close()
		return nil, err
	}

	return NewPostgresCardStore(db, logger), nil
}
