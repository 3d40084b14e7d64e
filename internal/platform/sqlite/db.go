package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/phrazzld/scry-cards/internal/platform/migrate"
)

// DriverName is the database/sql driver registered by go-sqlite3.
const DriverName = "sqlite3"

// Migrations holds the schema migrations for the SQLite backend.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// DSN builds the connection string for the database file at path.
func DSN(path string) string {
	params := url.Values{}
	params.Set("_foreign_keys", "on")
	params.Set("_journal_mode", "WAL")
	params.Set("_busy_timeout", "5000")
	return "file:" + path + "?" + params.Encode()
}

// OpenDB opens the database file at path, creating its parent directory when
// needed, and verifies the connection.
func OpenDB(ctx context.Context, path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open(DriverName, DSN(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}

// Open opens the card database at path, applies pending migrations and
// returns a store that owns the connection.
func Open(ctx context.Context, path string, logger *slog.Logger) (*SQLiteCardStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := OpenDB(ctx, path)
	if err != nil {
		return nil, err
	}

	if err := migrate.Up(ctx, db, migrate.DialectSQLite, Migrations, logger); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Debug("card database ready", slog.String("path", path))
	return NewSQLiteCardStore(db, logger), nil
}
