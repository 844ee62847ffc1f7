package database

import (
	"context"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"

	"hirehub/internal/config"
	"hirehub/pkg/logger"
)

func TestRunMigrationsIsIdempotent(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()

	db, dialect, err := Open(ctx, config.DatabaseConfig{
		Driver: config.DriverSQLite,
		URL:    filepath.Join(t.TempDir(), "migrate.db"),
	})
	c.Assert(err, qt.IsNil)
	defer db.Close()

	c.Assert(dialect, qt.Equals, SQLite)

	svc := NewMigrationService(db, dialect, logger.Nop())
	c.Assert(svc.RunMigrations(ctx), qt.IsNil)
	c.Assert(svc.RunMigrations(ctx), qt.IsNil)

	var count int
	err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM migrations").Scan(&count)
	c.Assert(err, qt.IsNil)
	c.Assert(count, qt.Equals, len(Migrations()))

	for _, table := range []string{"users", "jobs", "applications", "interviews", "audit_logs"} {
		var name string
		err := db.QueryRowContext(ctx, "SELECT name FROM sqlite_master WHERE type = 'table' AND name = $1", table).Scan(&name)
		c.Assert(err, qt.IsNil, qt.Commentf("table %s", table))
	}
}

func TestDialectDDL(t *testing.T) {
	c := qt.New(t)

	c.Assert(Postgres.PrimaryKey(), qt.Equals, "BIGSERIAL PRIMARY KEY")
	c.Assert(SQLite.PrimaryKey(), qt.Equals, "INTEGER PRIMARY KEY AUTOINCREMENT")
	c.Assert(Postgres.Timestamp(), qt.Equals, "TIMESTAMPTZ")
	c.Assert(SQLite.Float(), qt.Equals, "REAL")
}
