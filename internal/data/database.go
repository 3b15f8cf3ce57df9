package data

import (
	"fmt"
	"path/filepath"
	"time"
	"unstablenet/internal/config"

	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
)

// NewDB opens the MySQL pool backing the content store. The connection is
// pinged before being handed out, so a bad DSN fails here rather than on the
// first query.
func NewDB(cfg config.DBConfig) (*sqlx.DB, error) {
	db, err := sqlx.Connect("mysql", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open content database: %w", err)
	}

	// Modest pool limits; the site is read-heavy and a single node.
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)
	return db, nil
}

// ApplyMigrations brings the content schema up to date from the SQL files
// under migrationsPath. Running with an already-current schema is a no-op.
func ApplyMigrations(cfg config.DBConfig, migrationsPath string) error {
	// golang-migrate wants both sides as URLs.
	absPath, err := filepath.Abs(migrationsPath)
	if err != nil {
		return fmt.Errorf("failed to resolve migrations directory: %w", err)
	}
	sourceURL := fmt.Sprintf("file://%s", absPath)
	databaseURL := fmt.Sprintf("mysql://%s", cfg.DSN)

	m, err := migrate.New(sourceURL, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to open migration source: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to migrate content schema: %w", err)
	}
	return nil
}
