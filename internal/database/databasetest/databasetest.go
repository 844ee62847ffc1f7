// Package databasetest provides a migrated SQLite database for tests.
package databasetest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"hirehub/internal/config"
	"hirehub/internal/database"
	"hirehub/pkg/logger"
)

// New opens a fresh SQLite file under t.TempDir and runs all migrations.
func New(t testing.TB) *sql.DB {
	t.Helper()

	ctx := context.Background()
	cfg := config.DatabaseConfig{
		Driver: config.DriverSQLite,
		URL:    filepath.Join(t.TempDir(), "hirehub_test.db"),
	}

	db, dialect, err := database.Open(ctx, cfg)
	if err != nil {
		t.Fatalf("test veritabanı açılamadı: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.NewMigrationService(db, dialect, logger.Nop()).RunMigrations(ctx); err != nil {
		t.Fatalf("test migrationları uygulanamadı: %v", err)
	}

	return db
}
