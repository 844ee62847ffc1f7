package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"hirehub/internal/config"
)

// Dialect captures the DDL differences between the supported drivers.
type Dialect string

const (
	Postgres Dialect = config.DriverPostgres
	SQLite   Dialect = config.DriverSQLite
)

func (d Dialect) PrimaryKey() string {
	if d == SQLite {
		return "INTEGER PRIMARY KEY AUTOINCREMENT"
	}
	return "BIGSERIAL PRIMARY KEY"
}

func (d Dialect) Timestamp() string {
	if d == SQLite {
		return "TIMESTAMP"
	}
	return "TIMESTAMPTZ"
}

func (d Dialect) Float() string {
	if d == SQLite {
		return "REAL"
	}
	return "DOUBLE PRECISION"
}

// Open connects to the configured database and verifies the connection.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, Dialect, error) {
	dialect := Dialect(cfg.Driver)

	db, err := sql.Open(cfg.Driver, cfg.DSN())
	if err != nil {
		return nil, "", fmt.Errorf("veritabanı bağlantısı kurulamadı: %w", err)
	}

	if dialect == SQLite {
		// a single writer avoids "database is locked" under concurrent requests
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, "", fmt.Errorf("veritabanı bağlantısı test edilemedi: %w", err)
	}

	return db, dialect, nil
}
